package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level %q is invalid (must be debug, info, warn or error)", s)
	}
}

// NewLogger builds a tint logger on stderr. Colour is only used on a terminal.
func NewLogger(level string) (*slog.Logger, error) {
	var w io.Writer = os.Stderr
	noColor := !isatty.IsTerminal(os.Stderr.Fd())
	if !noColor {
		w = colorable.NewColorable(os.Stderr)
	}
	return newLogger(w, level, noColor)
}

func newLogger(w io.Writer, level string, noColor bool) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	ll := &slog.LevelVar{}
	ll.Set(lvl)
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	})), nil
}
