package main

import (
	"io"
	"log"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// newLogger builds the process logger, and makes it the default for both
// log/slog and the standard log package.
//
// Text records go to the console; if logFile is set, JSON records are also
// appended to it. The closer restores the previous defaults before closing
// the log file.
func newLogger(console io.Writer, verbose bool, logFile string) (logger *slog.Logger, closer func() error, err error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, opts),
	}

	var file *os.File
	if logFile != "" {
		file, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	previous := slog.Default()
	output, flags := log.Writer(), log.Flags()

	// Verbose tracing in the libraries uses the standard log package.
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	previousLevel := slog.SetLogLoggerLevel(logLevel)

	logger = slog.New(slogmulti.Fanout(handlers...))
	slog.SetDefault(logger)

	closer = func() (err error) {
		slog.SetDefault(previous)
		log.SetOutput(output)
		log.SetFlags(flags)
		slog.SetLogLoggerLevel(previousLevel)

		if file != nil {
			err = file.Close()
		}
		return
	}

	return
}
