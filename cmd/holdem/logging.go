package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger builds the command's logger. An empty level means info.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info", "":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	return logger, nil
}
