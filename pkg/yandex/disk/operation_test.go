package yadisk

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusServer answers operation polls with statuses in order, repeating the
// last one, and records when each poll arrived.
type statusServer struct {
	mu       sync.Mutex
	statuses []int
	bodies   []string
	polls    []time.Time
}

func (s *statusServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	i := len(s.polls)
	s.polls = append(s.polls, time.Now())
	if i >= len(s.bodies) {
		i = len(s.bodies) - 1
	}
	status, body := s.statuses[i], s.bodies[i]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (s *statusServer) pollTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.polls...)
}

func newStatusServer(responses ...func() (int, string)) *statusServer {
	s := &statusServer{}
	for _, resp := range responses {
		status, body := resp()
		s.statuses = append(s.statuses, status)
		s.bodies = append(s.bodies, body)
	}
	return s
}

func pending() (int, string)   { return http.StatusOK, `{"status":"in-progress"}` }
func succeeded() (int, string) { return http.StatusOK, `{"status":"success"}` }
func failed() (int, string)    { return http.StatusOK, `{"status":"failed"}` }
func unavailable() (int, string) {
	return http.StatusServiceUnavailable, `{"error":"DiskUnavailableError"}`
}

func TestWaitForOperationPollsUntilSuccess(t *testing.T) {
	srv := newStatusServer(pending, succeeded)
	client, _ := newTestClient(t, srv, func(cfg *Config) {
		cfg.Poll.Interval = DefaultPollInterval
	})

	op, err := client.WaitForOperation(context.Background(), client.BaseURL()+"/v1/disk/operations/123")
	require.NoError(t, err)
	assert.Equal(t, OperationSuccess, op.Status)

	polls := srv.pollTimes()
	require.Len(t, polls, 2)
	assert.GreaterOrEqual(t, polls[1].Sub(polls[0]), DefaultPollInterval)
}

func TestWaitForOperationStopsAfterMaxAttempts(t *testing.T) {
	srv := newStatusServer(pending)
	client, _ := newTestClient(t, srv, func(cfg *Config) {
		cfg.Poll.MaxAttempts = 3
	})

	_, err := client.WaitForOperation(context.Background(), client.BaseURL()+"/v1/disk/operations/1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperationTimeout)
	assert.Len(t, srv.pollTimes(), 3)
}

func TestWaitForOperationStopsAfterTimeout(t *testing.T) {
	srv := newStatusServer(pending)
	client, _ := newTestClient(t, srv, func(cfg *Config) {
		cfg.Poll.Timeout = 60 * time.Millisecond
	})

	start := time.Now()
	_, err := client.WaitForOperation(context.Background(), client.BaseURL()+"/v1/disk/operations/1")
	assert.ErrorIs(t, err, ErrOperationTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.GreaterOrEqual(t, len(srv.pollTimes()), 2)
}

func TestWaitForOperationTreatsFailedAsPendingByDefault(t *testing.T) {
	srv := newStatusServer(failed)
	client, _ := newTestClient(t, srv, func(cfg *Config) {
		cfg.Poll.MaxAttempts = 2
	})

	_, err := client.WaitForOperation(context.Background(), client.BaseURL()+"/v1/disk/operations/1")
	assert.ErrorIs(t, err, ErrOperationTimeout)
	assert.NotErrorIs(t, err, ErrOperationFailed)
	assert.Len(t, srv.pollTimes(), 2)
}

func TestWaitForOperationFailOnFailed(t *testing.T) {
	srv := newStatusServer(failed)
	client, _ := newTestClient(t, srv, func(cfg *Config) {
		cfg.Poll.FailOnFailed = true
	})

	_, err := client.WaitForOperation(context.Background(), client.BaseURL()+"/v1/disk/operations/1")
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.Len(t, srv.pollTimes(), 1)
}

func TestWaitForOperationRetriesServerErrors(t *testing.T) {
	srv := newStatusServer(unavailable, pending, succeeded)
	client, _ := newTestClient(t, srv)

	op, err := client.WaitForOperation(context.Background(), client.BaseURL()+"/v1/disk/operations/1")
	require.NoError(t, err)
	assert.Equal(t, OperationSuccess, op.Status)
	assert.Len(t, srv.pollTimes(), 3)
}

func TestWaitForOperationStopsOnClientError(t *testing.T) {
	srv := newStatusServer(func() (int, string) {
		return http.StatusNotFound, `{"error":"OperationNotFoundError"}`
	})
	client, _ := newTestClient(t, srv)

	_, err := client.WaitForOperation(context.Background(), client.BaseURL()+"/v1/disk/operations/1")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.NotErrorIs(t, err, ErrOperationTimeout)
	assert.Len(t, srv.pollTimes(), 1)
}

func TestWaitForOperationStopsOnUnbuildableHref(t *testing.T) {
	srv := newStatusServer(succeeded)
	client, logs := newTestClient(t, srv, func(cfg *Config) {
		cfg.Poll.Interval = time.Second
		cfg.Poll.MaxAttempts = 5
	})

	start := time.Now()
	_, err := client.WaitForOperation(context.Background(), "cloud-api.yandex.net/v1/disk/operations/1")
	require.Error(t, err)

	var reqErr *RequestError
	assert.True(t, errors.As(err, &reqErr))
	assert.ErrorIs(t, err, ErrNoResult)
	assert.NotErrorIs(t, err, ErrOperationTimeout)
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, srv.pollTimes())
	assert.Equal(t, 1, logs.FilterMessage("Failed to build request URL").Len())
}

func TestWaitForOperationHonorsContext(t *testing.T) {
	srv := newStatusServer(pending)
	client, _ := newTestClient(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	_, err := client.WaitForOperation(ctx, client.BaseURL()+"/v1/disk/operations/1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitForOperationRequiresHref(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())

	_, err := client.WaitForOperation(context.Background(), "")
	assert.Error(t, err)
}

func TestLinkIsOperation(t *testing.T) {
	cases := map[string]bool{
		"https://cloud-api.yandex.net/v1/disk/operations/123":                  true,
		"https://cloud-api.yandex.net/v1/disk/operation/123":                   true,
		"https://cloud-api.yandex.net/v1/disk/resources?path=disk%3A%2Fb":      false,
		"https://cloud-api.yandex.net/v1/disk/resources?path=disk:/operations": false,
		"": false,
	}
	for href, want := range cases {
		link := &Link{Href: href}
		assert.Equal(t, want, link.IsOperation(), href)
	}

	var nilLink *Link
	assert.False(t, nilLink.IsOperation())
}
