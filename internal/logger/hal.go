package logger

import (
	"bytes"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"regis3d/hal"
)

// lineSink hands each encoded entry to a hal.Logger as one line.
type lineSink struct {
	l hal.Logger
}

func (s lineSink) Write(p []byte) (int, error) {
	s.l.WriteLineBytes(bytes.TrimRight(p, "\r\n"))
	return len(p), nil
}

func (s lineSink) Sync() error { return nil }

// InitHAL routes the global logger through a platform line logger, such as the UART
// on a board. Entries carry no timestamp since boards have no wall clock.
func InitHAL(l hal.Logger, level string) {
	cfg := encoderConfig(nil, zapcore.CapitalLevelEncoder)
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), lineSink{l: l}, ParseLevel(level))
	Log = zap.New(core)
}
