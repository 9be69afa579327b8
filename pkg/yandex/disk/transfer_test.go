package yadisk

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFile(t *testing.T) {
	var stored []byte
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/upload-target/42", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		stored = data
		w.WriteHeader(http.StatusCreated)
	}))
	defer storage.Close()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/disk/resources/upload", r.URL.Path)
		assert.Equal(t, "disk:/notes.txt", r.URL.Query().Get("path"))
		assert.Equal(t, "true", r.URL.Query().Get("overwrite"))
		writeJSON(t, w, http.StatusOK, Link{Href: storage.URL + "/upload-target/42", Method: "PUT"})
	}))

	err := client.UploadFile(context.Background(), "disk:/notes.txt", strings.NewReader("hello"), true)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(stored))
}

func TestGetUploadLinkSendsOverwriteFalse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("overwrite"))
		writeJSON(t, w, http.StatusOK, Link{Href: "https://uploader.example/x", Method: "PUT"})
	}))

	link, err := client.GetUploadLink(context.Background(), "disk:/a", false, nil)
	require.NoError(t, err)
	assert.Equal(t, "PUT", link.Method)
}

func TestUploadFileStorageFailure(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInsufficientStorage)
	}))
	defer storage.Close()

	client, logs := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, Link{Href: storage.URL + "/upload", Method: "PUT"})
	}))

	err := client.UploadFile(context.Background(), "disk:/big.bin", strings.NewReader("x"), false)
	assert.ErrorIs(t, err, ErrNoResult)
	assert.Equal(t, 1, logs.FilterMessage("Error while making request").Len())
}

func TestUploadFromURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/disk/resources/upload":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "https://example.com/file.zip", r.URL.Query().Get("url"))
			assert.Equal(t, "disk:/file.zip", r.URL.Query().Get("path"))
			writeJSON(t, w, http.StatusAccepted, Link{Href: operationHref(r, "up"), Method: "GET"})
		case "/v1/disk/operations/up":
			writeJSON(t, w, http.StatusOK, Operation{Status: OperationSuccess})
		}
	}))

	result, err := client.UploadFromURL(context.Background(), "https://example.com/file.zip", "disk:/file.zip", false)
	require.NoError(t, err)
	assert.True(t, result.Async())
}

func TestDownloadFile(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer storage.Close()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/disk/resources/download", r.URL.Path)
		assert.Equal(t, "disk:/cat.png", r.URL.Query().Get("path"))
		writeJSON(t, w, http.StatusOK, Link{Href: storage.URL + "/disk/cat.png?hash=1", Method: "GET"})
	}))

	data, err := client.DownloadFile(context.Background(), "disk:/cat.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
}

func TestDownloadFileMissing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, ErrorResponse{Error: "DiskNotFoundError"})
	}))

	data, err := client.DownloadFile(context.Background(), "disk:/missing")
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrNoResult)
}
