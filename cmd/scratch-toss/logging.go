package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir        = "logs"
	logFileName   = "scratch-toss.log"
	maxLogSize    = 10 * 1024 * 1024 // bytes
	maxLogBackups = 3
)

// setupLogging builds the process logger
// The terminal owns stdout and stderr while the game runs, so debug logs go to a rotated file
// and everything is discarded otherwise. The returned func flushes and closes the file.
func setupLogging(debug bool) (*zap.Logger, func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return zap.NewNop(), func() {}, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    maxLogSize / (1024 * 1024), // megabytes
		MaxBackups: maxLogBackups,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	logger := zap.New(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), zap.DebugLevel),
		zap.AddCaller(),
	)

	// Audio backends report through the standard logger
	restore := zap.RedirectStdLog(logger.Named("stdlog"))

	return logger, func() {
		_ = logger.Sync()
		restore()
		log.SetOutput(io.Discard)
		_ = sink.Close()
	}, nil
}
