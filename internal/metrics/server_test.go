package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServerExposesCollector(t *testing.T) {
	reg := NewRegistry()
	c := NewCollector(reg)
	c.RecordSweep(time.Millisecond, 4)

	ts := httptest.NewServer(NewServer(":0", reg).Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `levcalc_sweeps_total{outcome="found"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer("127.0.0.1:0", NewRegistry())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, zap.NewNop()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
