// Copyright 2025 The Rivaas Authors
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

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
	colorWhite  = "\033[97m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

var consoleBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// consoleHandler implements [slog.Handler] for human-readable colored
// console output during development. The logger name, when present, is
// printed in brackets before the message instead of as an attribute.
//
// Thread-safe: writes are serialized through a mutex shared by all handlers
// derived from the same root.
type consoleHandler struct {
	opts   *slog.HandlerOptions
	output io.Writer
	mu     *sync.Mutex
	name   string
	attrs  []slog.Attr
	prefix string
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &consoleHandler{
		opts:   opts,
		output: w,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes a log record.
func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	b := consoleBuilderPool.Get().(*strings.Builder)
	b.Reset()
	defer consoleBuilderPool.Put(b)

	b.WriteString(colorDim)
	b.WriteString(r.Time.Format("15:04:05.000"))
	b.WriteString(colorReset)
	b.WriteString(" ")

	b.WriteString(h.levelColor(r.Level))
	b.WriteString(colorBold)
	fmt.Fprintf(b, "%-5s", r.Level.String())
	b.WriteString(colorReset)
	b.WriteString(" ")

	name := h.name
	var recordAttrs []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		if h.prefix == "" && a.Key == LoggerKey {
			name = a.Value.String()
			return true
		}
		recordAttrs = append(recordAttrs, a)
		return true
	})

	if name != "" {
		b.WriteString(colorCyan)
		b.WriteString("[" + name + "] ")
		b.WriteString(colorReset)
	}

	b.WriteString(colorWhite)
	b.WriteString(r.Message)
	b.WriteString(colorReset)

	for _, a := range h.attrs {
		h.appendAttr(b, "", a)
	}
	for _, a := range recordAttrs {
		h.appendAttr(b, h.prefix, a)
	}

	if h.opts.AddSource && r.PC != 0 {
		if src := handlerRecordSource(r.PC); src != "" {
			b.WriteString(" ")
			b.WriteString(colorGray)
			b.WriteString("(" + src + ")")
			b.WriteString(colorReset)
		}
	}

	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.output, b.String())
	return err
}

// WithAttrs implements [slog.Handler.WithAttrs].
// Group prefixes are resolved here so Handle only sees flat keys.
func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(nh.attrs, h.attrs)
	for _, a := range attrs {
		if h.prefix == "" && a.Key == LoggerKey {
			nh.name = a.Value.String()
			continue
		}
		nh.attrs = append(nh.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &nh
}

// WithGroup implements [slog.Handler.WithGroup].
func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	return &nh
}

func (h *consoleHandler) levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

// appendAttr writes " key=value", expanding groups into dotted keys.
func (h *consoleHandler) appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(nil, a)
	}
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, groupPrefix, ga)
		}
		return
	}

	b.WriteString(" ")
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteString("=")

	switch v := a.Value.Any().(type) {
	case string:
		b.WriteString(v)
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case uint64:
		b.WriteString(strconv.FormatUint(v, 10))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case time.Duration:
		b.WriteString(v.String())
	case time.Time:
		b.WriteString(v.Format(time.RFC3339))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', 2, 64))
	case error:
		b.WriteString(v.Error())
	default:
		b.WriteString(fmt.Sprint(v))
	}
}

// handlerRecordSource returns "file:line" for a pc if available.
func handlerRecordSource(pc uintptr) string {
	fs := runtime.CallersFrames([]uintptr{pc})
	f, _ := fs.Next()
	if f.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}
