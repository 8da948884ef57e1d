// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	actionWidth = 10 // Width for the action column
)

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Path      string // File path relative to the root
	Action    string // Operation performed (write/delete/skip)
	Detail    string // Free-form detail shown after the action
	IsNew     bool   // Whether the file did not exist before
	IsRemoved bool   // Whether the file or directory was removed
	IsSkipped bool   // Whether the operation was refused
	Err       error  // Failure, if any
}

// 🎯 Logger handles structured logging with console output.
//
// Structured records go to every configured sink (each with its own minimum
// level). User-facing lines are echoed to the console as well.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	debug   bool
	closers []io.Closer
	mu      sync.Mutex
}

// 🏭 New creates a new logger writing records to the given sinks
func New(console io.Writer, debug bool, sinks ...Sink) *Logger {
	writers := make([]io.Writer, 0, len(sinks))
	var closers []io.Closer
	for _, s := range sinks {
		writers = append(writers, levelFilter{w: s.Writer, min: s.Level})
		if c, ok := s.Writer.(io.Closer); ok {
			closers = append(closers, c)
		}
	}
	if console == nil {
		console = io.Discard
	}

	zlog := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()

	return &Logger{
		zlog:    zlog,
		console: console,
		debug:   debug,
		closers: closers,
	}
}

// 🔇 Nop returns a logger that drops everything
func Nop() *Logger {
	return New(io.Discard, false)
}

// Zerolog exposes the underlying structured logger
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// WithContext stores the structured logger in ctx so zerolog.Ctx finds it
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.zlog.WithContext(ctx)
}

// Close flushes and closes the file sinks
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Err != nil:
		symbol = '!'
		symbolColor = color.FgRed
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.IsRemoved:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '⟳'
		symbolColor = color.FgBlue
	}

	detail := op.Detail
	if op.Err != nil {
		detail = op.Err.Error()
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", actionWidth, op.Action)),
		detail)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	var ev *zerolog.Event
	switch {
	case op.Err != nil:
		ev = l.zlog.Error().Err(op.Err)
	case op.IsSkipped:
		ev = l.zlog.Warn()
	default:
		ev = l.zlog.Info()
	}
	ev.Str("file", op.Path).
		Str("action", op.Action).
		Str("detail", op.Detail).
		Bool("is_new", op.IsNew).
		Bool("is_removed", op.IsRemoved).
		Bool("is_skipped", op.IsSkipped).
		Msg("file operation")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("autocode")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 💀 Critical logs an unrecoverable failure without exiting
func (l *Logger) Critical(err error, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "💀 %s\n", color.New(color.FgRed, color.Bold).Sprint(msg))
	if err != nil {
		fmt.Fprintf(l.console, "   %s\n", color.New(color.FgRed).Sprint(err.Error()))
	}
	l.zlog.WithLevel(zerolog.FatalLevel).Err(err).Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 🔍 Debug records fine-grained detail; echoed to the console only in debug mode
func (l *Logger) Debug(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.debug {
		fmt.Fprintf(l.console, "%s\n", color.New(color.Faint).Sprint(msg))
	}
	l.zlog.Debug().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 🔍 Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}
