package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage("Sweep completed",
		zap.Int("best_capital", 10),
		zap.Int("best_leverage", 100),
		zap.Int("rows", 4821))

	assert.Contains(t, msg, "$10 at x100")
	assert.Contains(t, msg, "4821 combinations")

	assert.Contains(t, FormatMessage("No optimal combination found"), "No combination fits")
	assert.Contains(t, FormatMessage("Results exported", zap.String("file", "out/a.csv")), "out/a.csv")
	assert.Equal(t, "something else", FormatMessage("something else"))
}

func TestPrettyLoggerDropsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := newPrettyLogger(false, zapcore.AddSync(&buf))

	log.With(zap.String("correlation_id", "abc")).Info("Sweep completed",
		zap.Int("best_capital", 3),
		zap.Int("best_leverage", 7),
		zap.Int("rows", 12))
	log.Debug("hidden at info level")

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "$3 at x7")
	assert.NotContains(t, out, "correlation_id")
	assert.NotContains(t, out, "hidden")
}

func TestPrettyLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newPrettyLogger(true, zapcore.AddSync(&buf))

	log.Debug("visible")
	assert.Contains(t, buf.String(), "[DEBUG]")
}

func TestFileLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "calc.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false

	log, closeLog := NewFileLogger(cfg)
	log.Info("Sweep completed", zap.Int("rows", 5))
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Sweep completed"`)
	assert.Contains(t, string(data), `"rows":5`)
	assert.Contains(t, string(data), `"level":"INFO"`)
}
