// Package logger builds the slog loggers beatpath commands share: colorized
// output for people at a terminal and JSON records for log collectors.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/papercomputeco/beatpath/pkg/utils"
)

// ServiceName tags every JSON record.
const ServiceName = "beatpath"

type config struct {
	level     slog.Level
	pretty    bool
	json      bool
	component string
	writer    io.Writer
}

// New builds a *slog.Logger. Text output is the default, WithJSON switches to
// service records tagged with the service name and build version, and
// WithPretty to colorized CLI output.
func New(opts ...Option) *slog.Logger {
	c := &config{
		level:  slog.LevelInfo,
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}

	var l *slog.Logger
	switch {
	case c.json:
		l = slog.New(slog.NewJSONHandler(c.writer, &slog.HandlerOptions{Level: c.level})).
			With("service", ServiceName, "version", utils.Version)

	case c.pretty:
		// The component is shown as the line prefix rather than a key.
		return slog.New(charmlog.NewWithOptions(c.writer, charmlog.Options{
			Level:           charmlog.Level(c.level),
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          c.component,
		}))

	default:
		l = slog.New(slog.NewTextHandler(c.writer, &slog.HandlerOptions{Level: c.level}))
	}

	if c.component != "" {
		l = l.With("component", c.component)
	}
	return l
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }
