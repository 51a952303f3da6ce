// Package log wires slog to the command line.
package log

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

const (
	levelFlag  = "loglevel"
	formatFlag = "logformat"
)

// RegisterLoggingFlags adds --loglevel and --logformat to cmd and its children.
func RegisterLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(levelFlag, "warn", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String(formatFlag, "text", "set the log format (text, json)")
}

// GetBaseLogger builds the logger selected by the flags. Logs go to stderr so
// that stdout carries only command output.
func GetBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := GetLoggerLevel(cmd)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format := flagValue(cmd, formatFlag, "text"); format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return slog.New(handler), nil
}

// GetLoggerLevel parses --loglevel.
func GetLoggerLevel(cmd *cobra.Command) (slog.Level, error) {
	switch logLevel := flagValue(cmd, levelFlag, "warn"); logLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", logLevel)
	}
}

func flagValue(cmd *cobra.Command, name, def string) string {
	f := cmd.Flag(name)
	if f == nil {
		return def
	}
	return strings.ToLower(f.Value.String())
}
