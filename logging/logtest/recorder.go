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

package logtest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"relay.dev/relay/logging"
)

// store is shared by a root Recorder and every handler derived from it.
type store struct {
	mu      sync.Mutex
	records []Record
	start   time.Time
}

// groupOrAttrs is one step recorded by WithGroup or WithAttrs.
type groupOrAttrs struct {
	group string
	attrs []slog.Attr
}

// Recorder is a [slog.Handler] that keeps every record it handles.
//
// Handlers returned by WithAttrs and WithGroup write into the same storage
// as the Recorder they were derived from. Safe for concurrent use.
type Recorder struct {
	store *store
	level slog.Leveler
	goas  []groupOrAttrs
}

// RecorderOption configures a [Recorder].
type RecorderOption func(*Recorder)

// WithRecorderLevel sets the minimum level captured. Defaults to
// [logging.LevelDebug].
func WithRecorderLevel(level slog.Leveler) RecorderOption {
	return func(r *Recorder) { r.level = level }
}

// NewRecorder creates an empty Recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store: &store{start: time.Now()},
		level: logging.LevelDebug,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestLogger returns a [logging.Logger] writing into a fresh Recorder.
// The logger is shut down when the test finishes.
func NewTestLogger(t testing.TB, opts ...logging.Option) (*logging.Logger, *Recorder) {
	t.Helper()

	rec := NewRecorder()
	opts = append([]logging.Option{logging.WithHandler(rec)}, opts...)
	logger := logging.MustNew(opts...)
	t.Cleanup(func() { _ = logger.Shutdown(context.Background()) })

	return logger, rec
}

// Enabled implements [slog.Handler.Enabled].
func (r *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level.Level()
}

// Handle implements [slog.Handler.Handle].
func (r *Recorder) Handle(_ context.Context, sr slog.Record) error {
	rec := Record{
		Time:        sr.Time,
		Level:       sr.Level,
		Message:     sr.Message,
		Process:     os.Getpid(),
		ProcessName: filepath.Base(os.Args[0]),
		Attrs:       make(map[string]any),
	}
	if !sr.Time.IsZero() {
		rec.Relative = sr.Time.Sub(r.store.start)
	}
	if sr.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{sr.PC}).Next()
		rec.Source = &slog.Source{Function: frame.Function, File: frame.File, Line: frame.Line}
	}

	// Walk the recorded groups, descending one map per group. A group is
	// only materialized once something is stored in it.
	target := rec.Attrs
	var pending []string
	depth := 0
	for _, goa := range r.goas {
		if goa.group != "" {
			pending = append(pending, goa.group)
			continue
		}
		for _, a := range goa.attrs {
			if depth == 0 && len(pending) == 0 && isLoggerName(a) {
				rec.Name = a.Value.Resolve().String()
				continue
			}
			if isEmptyAttr(a) {
				continue
			}
			target, depth, pending = descend(target, depth, pending)
			storeAttr(target, a)
		}
	}

	sr.Attrs(func(a slog.Attr) bool {
		if depth == 0 && len(pending) == 0 && isLoggerName(a) {
			rec.Name = a.Value.Resolve().String()
			return true
		}
		if isEmptyAttr(a) {
			return true
		}
		target, depth, pending = descend(target, depth, pending)
		storeAttr(target, a)
		return true
	})

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = append(r.store.records, rec)

	return nil
}

func isLoggerName(a slog.Attr) bool {
	return a.Key == logging.LoggerKey && a.Value.Resolve().Kind() == slog.KindString
}

// isEmptyAttr reports whether slog would drop a: an empty attribute or a
// group holding nothing but empty attributes.
func isEmptyAttr(a slog.Attr) bool {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return true
	}
	if a.Value.Kind() != slog.KindGroup {
		return false
	}
	for _, ga := range a.Value.Group() {
		if !isEmptyAttr(ga) {
			return false
		}
	}
	return true
}

// descend creates the pending groups below target and returns the innermost.
func descend(target map[string]any, depth int, pending []string) (map[string]any, int, []string) {
	for _, g := range pending {
		child, ok := target[g].(map[string]any)
		if !ok {
			child = make(map[string]any)
			target[g] = child
		}
		target = child
		depth++
	}
	return target, depth, pending[:0]
}

// storeAttr adds a to m following slog's rules: empty attributes are
// dropped and groups with an empty key are inlined.
func storeAttr(m map[string]any, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if isEmptyAttr(a) {
		return
	}

	if a.Value.Kind() != slog.KindGroup {
		m[a.Key] = a.Value.Any()
		return
	}

	group := a.Value.Group()
	if a.Key == "" {
		for _, ga := range group {
			storeAttr(m, ga)
		}
		return
	}

	child, ok := m[a.Key].(map[string]any)
	if !ok {
		child = make(map[string]any, len(group))
		m[a.Key] = child
	}
	for _, ga := range group {
		storeAttr(child, ga)
	}
}

// WithAttrs implements [slog.Handler.WithAttrs].
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return r
	}
	return r.with(groupOrAttrs{attrs: attrs})
}

// WithGroup implements [slog.Handler.WithGroup].
func (r *Recorder) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}
	return r.with(groupOrAttrs{group: name})
}

func (r *Recorder) with(goa groupOrAttrs) *Recorder {
	goas := make([]groupOrAttrs, len(r.goas), len(r.goas)+1)
	copy(goas, r.goas)
	return &Recorder{
		store: r.store,
		level: r.level,
		goas:  append(goas, goa),
	}
}

// Records returns a copy of all captured records in capture order.
func (r *Recorder) Records() []Record {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return append([]Record(nil), r.store.records...)
}

// Named returns the captured records written by the logger with the given name.
func (r *Recorder) Named(name string) Records {
	return Records(r.Records()).Named(name)
}

// Len returns the number of captured records.
func (r *Recorder) Len() int {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return len(r.store.records)
}

// Reset discards all captured records.
func (r *Recorder) Reset() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.records = nil
}
