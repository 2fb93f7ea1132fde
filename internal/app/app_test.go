package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHandlerRoutes(t *testing.T) {
	a := New(quietLogger(), config.Default())
	handler, err := a.Handler()
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	defer server.Close()

	res, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "<title>Minesweeper with Timer</title>")

	res, err = http.Get(server.URL + "/status")
	require.NoError(t, err)
	body, err = io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, string(body))

	res, err = http.Get(server.URL + "/play?mines=100")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestStartStops(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.ShutdownTimeout = config.Duration{Duration: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(quietLogger(), cfg).Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSetupLoggingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = "development"
	cfg.Log.File = filepath.Join(t.TempDir(), "mines.log")

	log := logrus.New()
	require.NoError(t, SetupLogging(log, cfg))
	log.SetOutput(io.Discard)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("rows", 8).Info("hello")

	b, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	line := strings.TrimSpace(string(b))
	assert.Contains(t, line, `"msg":"hello"`)
	assert.Contains(t, line, `"rows":8`)
}
