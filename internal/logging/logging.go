// Package logging writes structured invocation logs as JSON lines.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"llamachat/internal/invoke"
)

// Logger wraps a zap logger and the file it appends to.
type Logger struct {
	*zap.Logger
	file *os.File
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Open appends JSON lines to path, creating parent directories as needed.
// An empty path yields Nop.
func Open(path string) (*Logger, error) {
	if strings.TrimSpace(path) == "" {
		return Nop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), zapcore.DebugLevel)

	return &Logger{Logger: zap.New(core), file: file}, nil
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	_ = l.Logger.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// InvocationStarted records the command about to run. The prompt itself is
// not logged, only its length.
func (l *Logger) InvocationStarted(id, preset string, argv []string, promptBytes int) {
	binary := ""
	if len(argv) > 0 {
		binary = argv[0]
	}
	l.Info("invocation started",
		zap.String("id", id),
		zap.String("preset", preset),
		zap.String("binary", binary),
		zap.Int("argc", len(argv)),
		zap.Int("prompt_bytes", promptBytes),
	)
}

// InvocationFinished records the classified outcome of an invocation.
func (l *Logger) InvocationFinished(result invoke.Result) {
	fields := []zap.Field{
		zap.String("id", result.ID),
		zap.String("kind", result.Kind.String()),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration),
		zap.Int("stdout_bytes", len(result.Stdout)),
	}
	if !result.Kind.Failed() {
		l.Info("invocation finished", fields...)
		return
	}
	if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
		fields = append(fields, zap.String("stderr", stderr))
	}
	if result.Err != nil {
		fields = append(fields, zap.Error(result.Err))
	}
	l.Error("invocation failed", fields...)
}
