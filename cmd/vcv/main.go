// Package main is the entry point for vcv. It prints the environment that
// activates a Visual Studio C/C++ toolchain in the calling shell.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vcv-app/vcv/internal/cli"
	"github.com/vcv-app/vcv/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.Options{
		Version:   version,
		Embedded:  embeddedConfig,
		NewLogger: initLogger,
	}, os.Args[1:])
	cancel()
	os.Exit(code)
}

// initLogger creates a zap logger based on the configuration.
// Console output goes to stderr so stdout carries only the activation
// script; a JSON log file is added when configured.
func initLogger(cfg *config.Config, stderr io.Writer) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	consoleLevel := level
	if cfg.Quiet && consoleLevel < zapcore.WarnLevel {
		consoleLevel = zapcore.WarnLevel
	}

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.TimeKey = ""
	consoleConfig.CallerKey = ""
	consoleConfig.NameKey = ""
	consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	// Console output (human-readable)
	cores := []zapcore.Core{zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleConfig),
		zapcore.AddSync(stderr),
		consoleLevel,
	)}

	// File output (structured JSON, if configured)
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		fileConfig := zap.NewProductionEncoderConfig()
		fileConfig.TimeKey = "time"
		fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileConfig),
			zapcore.AddSync(file),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
