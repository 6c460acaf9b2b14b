// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin structured-logging facade over log/slog.
// Packages grab a contextual logger once at init:
//
//	var logger = log.WithContext("pkg", "txpool")
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level aliases for handler configuration.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var root atomic.Pointer[slog.Logger]

func init() {
	root.Store(slog.New(DiscardHandler()))
}

// SetDefault sets the handler backing all loggers made by WithContext.
// Loggers created before SetDefault keep the old handler; call it once
// at process startup.
func SetDefault(h slog.Handler) {
	root.Store(slog.New(h))
}

// NewTerminalHandler returns a text handler writing to stderr at the
// given minimum level.
func NewTerminalHandler(lvl slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return discardHandler{}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

// Logger a leveled key-value logger.
type Logger struct {
	ctx []any
}

// WithContext creates a logger carrying the given key-value context.
func WithContext(ctx ...any) *Logger {
	return &Logger{ctx: ctx}
}

func (l *Logger) log(lvl slog.Level, msg string, ctx []any) {
	lg := root.Load()
	if !lg.Enabled(context.Background(), lvl) {
		return
	}
	args := make([]any, 0, len(l.ctx)+len(ctx))
	args = append(args, l.ctx...)
	args = append(args, ctx...)
	lg.Log(context.Background(), lvl, msg, args...)
}

// Trace logs at trace level.
func (l *Logger) Trace(msg string, ctx ...any) { l.log(LevelTrace, msg, ctx) }

// Debug logs at debug level.
func (l *Logger) Debug(msg string, ctx ...any) { l.log(LevelDebug, msg, ctx) }

// Info logs at info level.
func (l *Logger) Info(msg string, ctx ...any) { l.log(LevelInfo, msg, ctx) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, ctx ...any) { l.log(LevelWarn, msg, ctx) }

// Error logs at error level.
func (l *Logger) Error(msg string, ctx ...any) { l.log(LevelError, msg, ctx) }
