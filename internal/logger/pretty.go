// internal/logger/pretty.go
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

func prettyEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		CallerKey:      "",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// customLevelEncoder formats log levels with colors
func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(fmt.Sprintf("%s[DEBUG]%s", ColorCyan, ColorReset))
	case zapcore.InfoLevel:
		enc.AppendString(fmt.Sprintf("%s[INFO]%s", ColorGreen, ColorReset))
	case zapcore.WarnLevel:
		enc.AppendString(fmt.Sprintf("%s[WARN]%s", ColorYellow, ColorReset))
	case zapcore.ErrorLevel:
		enc.AppendString(fmt.Sprintf("%s[ERROR]%s", ColorRed, ColorReset))
	case zapcore.FatalLevel:
		enc.AppendString(fmt.Sprintf("%s[FATAL]%s", ColorRed+ColorBold, ColorReset))
	default:
		enc.AppendString(fmt.Sprintf("[%s]", level.CapitalString()))
	}
}

// customTimeEncoder formats time in a readable way
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

// CreatePrettyLogger creates a logger with user-friendly output on stderr,
// leaving stdout to the command's own output.
func CreatePrettyLogger(debug bool) (*zap.Logger, error) {
	return newPrettyLogger(debug, zapcore.Lock(os.Stderr)), nil
}

func newPrettyLogger(debug bool, out zapcore.WriteSyncer) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(prettyEncoderConfig()),
		zapcore.AddSync(out),
		level,
	)
	return zap.New(&FieldFilterCore{core: core})
}

// FormatMessage creates user-friendly log messages
func FormatMessage(msg string, fields ...zapcore.Field) string {
	switch {
	case strings.Contains(msg, "Sweep completed"):
		capital := extractField(fields, "best_capital")
		leverage := extractField(fields, "best_leverage")
		rows := extractField(fields, "rows")
		return fmt.Sprintf("%s✓ Best: $%s at x%s (%s combinations fit the budget)%s",
			ColorGreen, capital, leverage, rows, ColorReset)

	case strings.Contains(msg, "No optimal combination found"):
		return fmt.Sprintf("%s⚠ No combination fits the risk budget%s", ColorYellow, ColorReset)

	case strings.Contains(msg, "Input rejected"):
		return fmt.Sprintf("%s✗ Invalid input: %s%s", ColorRed, extractField(fields, "fields"), ColorReset)

	case strings.Contains(msg, "Results exported"):
		return fmt.Sprintf("%s💾 Exported to %s%s", ColorBlue, extractField(fields, "file"), ColorReset)

	default:
		return msg
	}
}

// Helper functions
func extractField(fields []zapcore.Field, key string) string {
	for _, field := range fields {
		if field.Key != key {
			continue
		}
		switch field.Type {
		case zapcore.Int64Type, zapcore.Int32Type:
			return fmt.Sprintf("%d", field.Integer)
		case zapcore.StringType:
			return field.String
		default:
			return fmt.Sprintf("%v", field.Interface)
		}
	}
	return ""
}

// FieldFilterCore wraps a zapcore.Core, replacing structured fields with a
// formatted message.
type FieldFilterCore struct {
	core   zapcore.Core
	fields []zapcore.Field
}

func (c *FieldFilterCore) Enabled(level zapcore.Level) bool {
	return c.core.Enabled(level)
}

func (c *FieldFilterCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &FieldFilterCore{core: c.core, fields: merged}
}

func (c *FieldFilterCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *FieldFilterCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := append(append([]zapcore.Field{}, c.fields...), fields...)

	cleanEntry := entry
	cleanEntry.Message = FormatMessage(entry.Message, all...)

	return c.core.Write(cleanEntry, nil)
}

func (c *FieldFilterCore) Sync() error {
	return c.core.Sync()
}
