// internal/logger/file.go
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig controls the rotating log file.
type FileConfig struct {
	LogFile    string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Compress   bool
	Debug      bool
}

// DefaultFileConfig returns rotation settings for path.
func DefaultFileConfig(path string) *FileConfig {
	return &FileConfig{
		LogFile:    path,
		MaxSize:    10,
		MaxAge:     7,
		MaxBackups: 3,
		Compress:   true,
	}
}

// NewFileLogger creates a JSON logger that writes only to a rotating file.
// The terminal UI owns stdout, so nothing is written to the console.
func NewFileLogger(cfg *FileConfig) (*zap.Logger, func() error) {
	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	closer := func() error {
		_ = logger.Sync()
		return rotator.Close()
	}
	return logger, closer
}
