package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/profilsaya/backend/config"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{ServerHost: "localhost", ServerPort: "8080"}
	srv := New(cfg, http.NotFoundHandler(), zaptest.NewLogger(t))

	require.NotNil(t, srv)
	assert.Equal(t, "localhost:8080", srv.http.Addr)
	assert.NotZero(t, srv.http.ReadHeaderTimeout)
}

func TestStartShutdown(t *testing.T) {
	cfg := &config.Config{ServerHost: "127.0.0.1", ServerPort: "0"}
	srv := New(cfg, http.NotFoundHandler(), zaptest.NewLogger(t))

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start() }()

	// give ListenAndServe a moment to bind
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
