package cmd

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger logs warnings to stderr, or everything with verbose. While the
// live view owns the terminal, logs only go to logFile.
func newLogger(stderr io.Writer, logFile string, verbose, live bool) (*zap.Logger, func(), error) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var sink zapcore.WriteSyncer
	closeFn := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		sink = zapcore.Lock(f)
		closeFn = func() { _ = f.Close() }
	case live:
		return zap.NewNop(), closeFn, nil
	default:
		sink = zapcore.Lock(zapcore.AddSync(stderr))
	}

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	logger := zap.New(zapcore.NewCore(encoder, sink, level))
	return logger, func() {
		_ = logger.Sync()
		closeFn()
	}, nil
}
