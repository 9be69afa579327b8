package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewYadiskCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// useAPI points the commands at srv and sends logs to a temporary file.
func useAPI(t *testing.T, srv *httptest.Server) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("YADISK_TOKEN", "cli-token")
	t.Setenv("YADISK_BASE_URL", srv.URL)
	t.Setenv("YADISK_POLL_INTERVAL", "10ms")
	t.Setenv("YADISK_POLL_MAX_ATTEMPTS", "")
	t.Setenv("YADISK_POLL_TIMEOUT", "")
	t.Setenv("YADISK_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_OUTPUTS", filepath.Join(dir, "info.log"))
	t.Setenv("LOG_ERROR_OUTPUTS", filepath.Join(dir, "error.log"))
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what
// fn wrote to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	original := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = original })

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	fn()

	os.Stdout = original
	require.NoError(t, w.Close())
	return string(<-done)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestTokenPrintsAuthorizeURL(t *testing.T) {
	out, err := execute(t, "token", "--client-id", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://oauth.yandex.com/authorize?client_id=abc123&response_type=token\n", out)
}

func TestTokenOpensBrowser(t *testing.T) {
	t.Setenv("YADISK_CLIENT_ID", "from-env")

	var opened string
	original := openURL
	openURL = func(url string) error {
		opened = url
		return nil
	}
	t.Cleanup(func() { openURL = original })

	out, err := execute(t, "token", "--open")
	require.NoError(t, err)
	assert.Contains(t, out, "client_id=from-env")
	assert.Equal(t, "https://oauth.yandex.com/authorize?client_id=from-env&response_type=token", opened)
}

func TestTokenRequiresClientID(t *testing.T) {
	t.Setenv("YADISK_CLIENT_ID", "")

	_, err := execute(t, "token")
	assert.ErrorContains(t, err, "YADISK_CLIENT_ID")
}

func TestCommandsRequireToken(t *testing.T) {
	t.Setenv("YADISK_TOKEN", "")
	t.Setenv("LOG_OUTPUTS", filepath.Join(t.TempDir(), "info.log"))

	_, err := execute(t, "info")
	assert.ErrorContains(t, err, "YADISK_TOKEN is required")
}

func TestInfoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/disk", r.URL.Path)
		assert.Equal(t, "OAuth cli-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"total_space": 100, "used_space": 10})
	}))
	defer srv.Close()
	useAPI(t, srv)

	out, err := execute(t, "info", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.EqualValues(t, 100, got["total_space"])
	assert.EqualValues(t, 10, got["used_space"])
}

func TestInfoTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"total_space": 10 << 30,
			"used_space":  3 << 30,
			"user":        map[string]any{"login": "alice", "uid": "1"},
		})
	}))
	defer srv.Close()
	useAPI(t, srv)

	out, err := execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "10.0 GiB")
	assert.Contains(t, out, "7.0 GiB")
}

func TestCopyWaitsForOperation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/disk/resources/copy":
			assert.Equal(t, "true", r.URL.Query().Get("overwrite"))
			writeJSON(w, http.StatusAccepted, map[string]any{
				"href":   "http://" + r.Host + "/v1/disk/operations/42",
				"method": "GET",
			})
		case "/v1/disk/operations/42":
			writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	}))
	defer srv.Close()
	useAPI(t, srv)

	out, err := execute(t, "cp", "disk:/a", "disk:/b", "--overwrite")
	require.NoError(t, err)
	assert.Equal(t, "cp disk:/a -> disk:/b: operation success\n", out)
}

func TestRemoveReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":       "DiskNotFoundError",
			"description": "Resource not found.",
		})
	}))
	defer srv.Close()
	useAPI(t, srv)

	_, err := execute(t, "rm", "disk:/missing")
	assert.ErrorContains(t, err, "DiskNotFoundError")
}

func TestUploadAndDownload(t *testing.T) {
	var stored []byte
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			stored, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			_, _ = w.Write(stored)
		}
	}))
	defer storage.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/disk/resources/upload":
			writeJSON(w, http.StatusOK, map[string]any{"href": storage.URL + "/put", "method": "PUT"})
		case "/v1/disk/resources/download":
			writeJSON(w, http.StatusOK, map[string]any{"href": storage.URL + "/get", "method": "GET"})
		}
	}))
	defer srv.Close()
	useAPI(t, srv)

	local := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(local, []byte("remember the milk"), 0o600))

	out, err := execute(t, "upload", local, "disk:/notes.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Uploaded")
	assert.Equal(t, "remember the milk", string(stored))

	out, err = execute(t, "download", "disk:/notes.txt", "-")
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", out)
}

func TestDownloadToStdoutWithDefaultLogging(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("raw file bytes"))
	}))
	defer storage.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"href": storage.URL + "/get", "method": "GET"})
	}))
	defer srv.Close()
	useAPI(t, srv)

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_OUTPUTS", "")
	t.Setenv("LOG_ERROR_OUTPUTS", "")
	t.Chdir(t.TempDir())

	var err error
	out := captureStdout(t, func() {
		cmd := NewYadiskCommand()
		cmd.SetArgs([]string{"download", "disk:/notes.txt", "-"})
		err = cmd.ExecuteContext(context.Background())
	})
	require.NoError(t, err)
	assert.Equal(t, "raw file bytes", out)

	logged, readErr := os.ReadFile("info.log")
	require.NoError(t, readErr)
	assert.Contains(t, string(logged), "Making HTTP request")
}

func TestMetaPrintsResourceJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/disk/resources", r.URL.Path)
		assert.Equal(t, "disk:/photos", r.URL.Query().Get("path"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, map[string]any{
			"path": "disk:/photos",
			"name": "photos",
			"type": "dir",
			"_embedded": map[string]any{
				"path":  "disk:/photos",
				"limit": 5,
				"total": 1,
				"items": []map[string]any{{"path": "disk:/photos/cat.jpg", "name": "cat.jpg", "type": "file", "size": 2048}},
			},
		})
	}))
	defer srv.Close()
	useAPI(t, srv)

	out, err := execute(t, "meta", "disk:/photos", "--limit", "5")
	require.NoError(t, err)

	var got struct {
		Path     string `json:"path"`
		Embedded struct {
			Items []struct {
				Path string `json:"path"`
			} `json:"items"`
		} `json:"_embedded"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "disk:/photos", got.Path)
	require.Len(t, got.Embedded.Items, 1)
	assert.Equal(t, "disk:/photos/cat.jpg", got.Embedded.Items[0].Path)
}

func TestFilesPrintsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/disk/resources/files", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "image", r.URL.Query().Get("media_type"))
		writeJSON(w, http.StatusOK, map[string]any{
			"limit": 20,
			"items": []map[string]any{
				{"path": "disk:/cat.jpg", "name": "cat.jpg", "type": "file", "size": 2048, "modified": "2024-03-01T10:00:00+00:00"},
			},
		})
	}))
	defer srv.Close()
	useAPI(t, srv)

	out, err := execute(t, "files", "--media-type", "image")
	require.NoError(t, err)
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "disk:/cat.jpg")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "2024-03-01 10:00")
}

func TestPublicListPrintsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/disk/resources/public", r.URL.Path)
		assert.Equal(t, "dir", r.URL.Query().Get("type"))
		writeJSON(w, http.StatusOK, map[string]any{
			"limit": 20,
			"items": []map[string]any{
				{"path": "disk:/shared", "name": "shared", "type": "dir", "public_url": "https://yadi.sk/d/abc"},
			},
		})
	}))
	defer srv.Close()
	useAPI(t, srv)

	out, err := execute(t, "public", "ls", "--type", "dir")
	require.NoError(t, err)
	assert.Contains(t, out, "disk:/shared")
	assert.Contains(t, out, "dir")
}

func TestIndexRejectsBadDatabasePort(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	useAPI(t, srv)
	t.Setenv("DB_PORT", "not-a-port")

	_, err := execute(t, "index")
	assert.ErrorContains(t, err, "DB_PORT")
}

func TestIndexReportsUnreachableDatabase(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	useAPI(t, srv)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", strconv.Itoa(port))
	t.Setenv("DB_SSLMODE", "disable")

	_, err = execute(t, "index", "--root", "disk:/photos")
	assert.ErrorContains(t, err, "failed to connect to database")
}

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		0:             "0 B",
		1023:          "1023 B",
		1024:          "1.0 KiB",
		1536:          "1.5 KiB",
		5 << 20:       "5.0 MiB",
		(3 << 40) / 2: "1.5 TiB",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatSize(in), in)
	}
}
