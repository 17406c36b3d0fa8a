package loki

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type MockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "http://localhost:3100/loki/api/v1/push"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	assert.NoError(t, err)
	defer pusher.Stop()

	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 500, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, 1024, pusher.config.BufferSize)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_Stop_FlushesPendingEntries(t *testing.T) {
	assert := assert.New(t)

	var mu sync.Mutex
	var received lokiPushRequest
	var headers http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		headers = r.Header.Clone()
		_ = json.NewDecoder(gz).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	logger := &MockLogger{}
	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxWait: time.Hour,
		Labels:       map[string]string{"app": "namaste-jobs"},
		Username:     "user",
		Password:     "secret",
	}, logger)
	assert.NoError(err)

	assert.NoError(pusher.Push(LogEntry{Level: "error", Message: "backend down", ErrorType: "backend_api"}))
	pusher.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(logger.errors)
	assert.Len(received.Streams, 1)
	assert.Equal("namaste-jobs", received.Streams[0].Stream["app"])
	assert.Len(received.Streams[0].Values, 1)
	assert.Contains(received.Streams[0].Values[0][1], "backend down")
	assert.Equal("gzip", headers.Get("Content-Encoding"))
	assert.NotEmpty(headers.Get("Authorization"))
}

func Test_Push_WhenStopped_ShouldReturnError(t *testing.T) {
	pusher, err := New(context.Background(), Config{Url: "http://localhost:3100/push"}, &MockLogger{})
	assert.NoError(t, err)

	pusher.Stop()
	pusher.Stop()

	assert.ErrorIs(t, pusher.Push(LogEntry{Message: "late"}), ErrStopped)
}
