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

// Package renderqueue decides which page of a document viewer is rendered
// next.
//
// Visible pages are rendered first, in the order given by the visibility
// computation.  Once all visible pages are finished, the page following
// the visible pages in scroll direction is pre-rendered.  When there is
// nothing left to do, the queue waits for an idle timeout and then calls
// the OnIdle hook, which normally discards unfinished renderings.
package renderqueue

import (
	"context"
	"sync/atomic"
	"time"

	"seehuhn.de/go/pdfview/page"
	"seehuhn.de/go/pdfview/visibility"
)

// DefaultIdleTimeout is the default delay before OnIdle is called.
const DefaultIdleTimeout = 30 * time.Second

// Renderer selects and renders the next page.
type Renderer interface {
	// ForceRendering starts rendering the highest priority page and
	// reports whether there was a page to render.  If visible is nil,
	// the renderer computes the visible pages itself.
	ForceRendering(visible *visibility.Result) bool
}

// Options configures a [Queue].
type Options struct {
	// Post runs f under the lock of the owner of the queue.  It is used
	// for timer callbacks.
	Post func(f func())

	// OnIdle is called when there has been nothing to render for
	// IdleTimeout.
	OnIdle func()

	// IdleTimeout defaults to DefaultIdleTimeout.
	IdleTimeout time.Duration
}

// Queue is a rendering scheduler.
//
// Apart from [Queue.IsHighestPriority], the methods of a Queue must be
// called under the lock of its owner.
type Queue struct {
	renderer Renderer
	opt      Options

	highest atomic.Pointer[page.View]

	idleTimer *time.Timer
	idleGen   int
}

// New creates a new rendering queue for the given renderer.
func New(r Renderer, opt *Options) *Queue {
	q := &Queue{renderer: r}
	if opt != nil {
		q.opt = *opt
	}
	if q.opt.Post == nil {
		q.opt.Post = func(f func()) { f() }
	}
	if q.opt.IdleTimeout <= 0 {
		q.opt.IdleTimeout = DefaultIdleTimeout
	}
	return q
}

// IsHighestPriority reports whether v is the page which is currently
// rendered with the highest priority.  This method is safe for concurrent
// use.
func (q *Queue) IsHighestPriority(v *page.View) bool {
	return q.highest.Load() == v
}

// RenderHighestPriority renders the most important page which still needs
// rendering.  If there is none, the idle timer is started.
func (q *Queue) RenderHighestPriority(visible *visibility.Result) {
	q.stopIdle()

	if q.renderer.ForceRendering(visible) {
		return
	}

	if q.opt.OnIdle == nil {
		return
	}
	gen := q.idleGen
	q.idleTimer = time.AfterFunc(q.opt.IdleTimeout, func() {
		q.opt.Post(func() {
			if q.idleGen != gen {
				return
			}
			q.idleTimer = nil
			q.opt.OnIdle()
		})
	})
}

// HighestPriority returns the view which should be rendered next, or nil
// if there is nothing to do.  The views slice is indexed by page number
// minus one.
func (q *Queue) HighestPriority(visible *visibility.Result, views []*page.View, scrolledDown bool) *page.View {
	if visible.Empty() {
		return nil
	}

	for _, p := range visible.Pages {
		v := views[p.ID-1]
		if !isFinished(v) {
			return v
		}
	}

	// All visible pages are rendered, try pre-rendering the next page.
	var next int
	if scrolledDown {
		next = visible.Last.ID // index of the page after the last one
	} else {
		next = visible.First.ID - 2 // index of the page before the first one
	}
	if next >= 0 && next < len(views) && !isFinished(views[next]) {
		return views[next]
	}
	return nil
}

// RenderView starts or resumes rendering of v and reports whether work
// was scheduled.  When rendering finishes, the next page is rendered
// automatically.
func (q *Queue) RenderView(ctx context.Context, v *page.View) bool {
	switch v.State() {
	case page.Finished:
		return false
	case page.Paused:
		q.highest.Store(v)
		v.Resume()
	case page.Running:
		q.highest.Store(v)
	case page.Unrendered:
		q.highest.Store(v)
		err := v.Draw(ctx, func() {
			q.RenderHighestPriority(nil)
		})
		if err != nil {
			q.RenderHighestPriority(nil)
		}
	}
	return true
}

// Stop cancels the idle timer.
func (q *Queue) Stop() {
	q.stopIdle()
	q.highest.Store(nil)
}

func (q *Queue) stopIdle() {
	q.idleGen++
	if q.idleTimer != nil {
		q.idleTimer.Stop()
		q.idleTimer = nil
	}
}

func isFinished(v *page.View) bool {
	return v.State() == page.Finished
}
