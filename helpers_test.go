// seehuhn.de/go/pdfview - a viewport manager for paginated documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfview

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/document"
	"seehuhn.de/go/pdfview/event"
	"seehuhn.de/go/pdfview/page"
)

// testBox is a 300x400 page, shown as 400x533.33 pixels at scale 1.
var testBox = rect.Rect{URx: 300, URy: 400}

// autoScale is the page-fit scale of testBox in a 840x600 container.
const autoScale = (600 - 5) / (400 * 4 / 3.0)

// logCapture is a slog.Handler which records all log records.
type logCapture struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *logCapture) Enabled(context.Context, slog.Level) bool { return true }

func (h *logCapture) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *logCapture) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *logCapture) WithGroup(string) slog.Handler      { return h }

func (h *logCapture) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

// recorder collects the events sent over a bus.
type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func record(bus *event.Bus) *recorder {
	r := &recorder{}
	names := []event.Name{
		event.NamePagesInit,
		event.NamePagesLoaded,
		event.NamePageChanging,
		event.NameScaleChanging,
		event.NameUpdateViewArea,
		event.NamePageRendered,
	}
	for _, name := range names {
		bus.On(name, func(e event.Event) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, e)
		})
	}
	return r
}

func (r *recorder) byName(name event.Name) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []event.Event
	for _, e := range r.events {
		if e.EventName() == name {
			res = append(res, e)
		}
	}
	return res
}

type fixture struct {
	v    *Viewer
	doc  *document.Memory
	rec  *recorder
	logs *logCapture
}

// newFixture creates a viewer with a 840x600 container and binds a
// document with n pages of size testBox.  The options in opt, if any,
// are modified.
func newFixture(t *testing.T, n int, opt *Options) *fixture {
	t.Helper()
	return newFixtureDoc(t, document.NewMemory(n, testBox), opt)
}

// newFixtureDoc is like newFixture, but binds the given document.
func newFixtureDoc(t *testing.T, doc *document.Memory, opt *Options) *fixture {
	t.Helper()

	if opt == nil {
		opt = &Options{}
	}
	f := &fixture{
		doc:  doc,
		logs: &logCapture{},
	}
	opt.Width = 840
	opt.Height = 600
	opt.Logger = slog.New(f.logs)
	opt.Bus = &event.Bus{}
	f.rec = record(opt.Bus)
	f.v = New(opt)
	t.Cleanup(func() { f.v.Close() })

	err := f.v.SetDocument(context.Background(), f.doc)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// waitFor polls cond until it returns true.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timeout")
		}
		time.Sleep(time.Millisecond)
	}
}

func waitChan(t *testing.T, c <-chan struct{}) {
	t.Helper()
	select {
	case <-c:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout")
	}
}

// blockingPainter never finishes painting before its context is cancelled.
var blockingPainter = page.PainterFunc(func(ctx context.Context, _ *page.Job) (page.Surface, error) {
	<-ctx.Done()
	return nil, ctx.Err()
})
