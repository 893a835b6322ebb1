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

package page

import (
	"context"
	"errors"
	"fmt"

	"seehuhn.de/go/pdfview/document"
)

// State is the rendering state of a page view.
type State int

// These are the possible rendering states of a page view.
const (
	Unrendered State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Unrendered:
		return "unrendered"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrPaused can be returned by a [Painter] which gives up the
	// rendering of a page because a more important page is waiting.  The
	// view is then marked as paused and painting restarts when the view
	// is resumed.
	ErrPaused = errors.New("rendering paused")

	// ErrNotLoaded is returned by [View.Draw] if the page content has
	// not been set.
	ErrNotLoaded = errors.New("page content not loaded")

	errNotUnrendered = errors.New("page view must be unrendered before drawing")
)

// Surface is the result of painting a page.
type Surface interface {
	// Release frees the resources held by the surface.
	Release()
}

// Painter paints pages.
//
// Paint is called in a separate goroutine.  Long-running painters should
// call [Job.Continue] from time to time, which blocks while the page is
// paused and returns an error once the rendering has been cancelled.
type Painter interface {
	Paint(ctx context.Context, job *Job) (Surface, error)
}

// PainterFunc adapts an ordinary function to the [Painter] interface.
type PainterFunc func(ctx context.Context, job *Job) (Surface, error)

// Paint implements the [Painter] interface.
func (f PainterFunc) Paint(ctx context.Context, job *Job) (Surface, error) {
	return f(ctx, job)
}

// Job describes one painting operation.
type Job struct {
	PageNumber int
	Page       document.Page
	Viewport   Viewport

	view *View
	task *task
}

// Continue reports whether painting should go on.  If a page with higher
// priority is waiting, the view is paused and Continue blocks until the
// view is resumed.  A non-nil error means that the rendering has been
// cancelled.
func (j *Job) Continue(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v := j.view
	if v.opt.IsHighestPriority == nil || v.opt.IsHighestPriority(v) {
		return nil
	}

	wake := make(chan struct{})
	v.opt.Post(func() {
		v.pause(j.task, wake)
	})
	select {
	case <-wake:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Options configures the hooks of a [View].
type Options struct {
	Painter Painter

	// Post runs f under the lock of the owner of the view.  Post must be
	// safe to call from any goroutine.
	Post func(f func())

	// IsHighestPriority, if set, is used by painters to check whether they
	// should continue.  It is called from the painter goroutine.
	IsHighestPriority func(v *View) bool

	// OnBeforeDraw is called when painting starts.
	OnBeforeDraw func(v *View)

	// OnAfterDraw is called when painting has finished, with the error
	// returned by the painter.
	OnAfterDraw func(v *View, err error)
}

type task struct {
	cancel context.CancelFunc
}

// View is the state of a single page of a document viewer.
//
// View is not safe for concurrent use.  All methods must be called under
// the lock which serializes the functions passed to Options.Post.
type View struct {
	id  int
	opt *Options

	scale        float64
	rotation     int
	pageRotation int
	viewport     Viewport
	page         document.Page
	state        State
	label        string
	transparent  bool
	surface      Surface
	err          error
	resume       func()
	task         *task
}

// NewView creates a view for page number id.  Until the page content is
// set, the view uses the default viewport, which normally is the viewport
// of the first page of the document.
func NewView(id int, scale float64, defaultViewport Viewport, opt *Options) *View {
	if opt == nil {
		opt = &Options{}
	}
	if opt.Post == nil {
		opt.Post = func(f func()) { f() }
	}
	return &View{
		id:           id,
		opt:          opt,
		scale:        scale,
		pageRotation: defaultViewport.Rotation,
		viewport:     defaultViewport,
	}
}

// ID returns the 1-based page number of the view.
func (v *View) ID() int {
	return v.id
}

// Scale returns the current scale of the view, without the CSS unit
// conversion.
func (v *View) Scale() float64 {
	return v.scale
}

// Rotation returns the user rotation of the view.  The intrinsic rotation
// of the page is not included.
func (v *View) Rotation() int {
	return v.rotation
}

// TotalRotation returns the user rotation plus the intrinsic rotation of
// the page.
func (v *View) TotalRotation() int {
	return NormalizeRotation(v.rotation + v.pageRotation)
}

// Viewport returns the current viewport of the view.
func (v *View) Viewport() Viewport {
	return v.viewport
}

// Width returns the width of the view in CSS pixels.
func (v *View) Width() float64 {
	return v.viewport.Width
}

// Height returns the height of the view in CSS pixels.
func (v *View) Height() float64 {
	return v.viewport.Height
}

// PageSize returns the size of the unrotated page in PDF units.
func (v *View) PageSize() (width, height float64) {
	w, h := v.viewport.Width, v.viewport.Height
	if v.TotalRotation()%180 != 0 {
		w, h = h, w
	}
	s := v.scale * CSSUnits
	return w / s, h / s
}

// Page returns the page content, or nil if it has not been loaded yet.
func (v *View) Page() document.Page {
	return v.page
}

// State returns the rendering state of the view.
func (v *View) State() State {
	return v.state
}

// Err returns the error of the last completed painting operation.
func (v *View) Err() error {
	return v.err
}

// Surface returns the painted surface, or nil.
func (v *View) Surface() Surface {
	return v.surface
}

// Loading reports whether the view does not yet show a finished rendering.
func (v *View) Loading() bool {
	return v.state != Finished
}

// Label returns the page label, or the empty string if no label is set.
func (v *View) Label() string {
	return v.label
}

// SetLabel sets the page label.
func (v *View) SetLabel(label string) {
	v.label = label
}

// Transparent reports whether the view is dimmed.
func (v *View) Transparent() bool {
	return v.transparent
}

// SetTransparent sets whether the view is dimmed.  This is used in
// presentation mode for pages other than the current one.
func (v *View) SetTransparent(transparent bool) {
	v.transparent = transparent
}

// PagePoint converts a point in viewport space to page space.
func (v *View) PagePoint(x, y float64) (float64, float64) {
	p := v.viewport.ToPage(x, y)
	return p.X, p.Y
}

// ViewportPoint converts a point in page space to viewport space.
func (v *View) ViewportPoint(x, y float64) (float64, float64) {
	p := v.viewport.ToViewport(x, y)
	return p.X, p.Y
}

// SetPage sets the page content and resets the view.
func (v *View) SetPage(p document.Page) {
	v.page = p
	v.pageRotation = NormalizeRotation(p.Rotation())
	v.viewport = NewViewport(p.ViewBox(), v.scale*CSSUnits, v.TotalRotation())
	v.Reset()
}

// Update changes the scale and the user rotation of the view.
// Any existing rendering is discarded.
func (v *View) Update(scale float64, rotation int) {
	if scale > 0 {
		v.scale = scale
	}
	v.rotation = NormalizeRotation(rotation)
	v.viewport = v.viewport.WithScale(v.scale*CSSUnits, v.TotalRotation())
	v.Reset()
}

// Reset cancels rendering and discards the rendered surface.
func (v *View) Reset() {
	v.CancelRendering()
	v.state = Unrendered
	v.err = nil
	if v.surface != nil {
		v.surface.Release()
		v.surface = nil
	}
}

// Destroy releases all rendering resources of the view.
// Destroying a view which holds no resources is a no-op.
func (v *View) Destroy() {
	v.Reset()
}

// CancelRendering stops a running or paused painting operation.
// Cancelling a view which is not rendering is a no-op.
func (v *View) CancelRendering() {
	if v.task == nil {
		return
	}
	v.task.cancel()
	v.task = nil
	v.resume = nil
	v.state = Unrendered
}

// Resume continues painting of a paused view.
func (v *View) Resume() {
	if v.state != Paused || v.resume == nil {
		return
	}
	resume := v.resume
	v.resume = nil
	resume()
}

// Draw starts painting the page in a background goroutine.  When painting
// has finished, done is called through Options.Post.
//
// If the page content has not been set, the view is marked as finished and
// [ErrNotLoaded] is returned.
func (v *View) Draw(ctx context.Context, done func()) error {
	if v.state != Unrendered {
		return errNotUnrendered
	}
	if v.page == nil {
		v.state = Finished
		v.err = ErrNotLoaded
		return ErrNotLoaded
	}

	v.state = Running
	if v.opt.OnBeforeDraw != nil {
		v.opt.OnBeforeDraw(v)
	}
	if v.state != Running {
		// the view was evicted by the before-draw hook
		return nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	t := &task{cancel: cancel}
	v.task = t
	job := &Job{
		PageNumber: v.id,
		Page:       v.page,
		Viewport:   v.viewport,
		view:       v,
		task:       t,
	}

	painter := v.opt.Painter
	go func() {
		var surface Surface
		var err error
		if painter != nil {
			surface, err = painter.Paint(ctx, job)
		}
		v.opt.Post(func() {
			v.finish(parent, t, surface, err, done)
		})
	}()
	return nil
}

func (v *View) finish(ctx context.Context, t *task, surface Surface, err error, done func()) {
	if v.task != t {
		// cancelled
		if surface != nil {
			surface.Release()
		}
		return
	}
	v.task = nil
	t.cancel()

	if errors.Is(err, ErrPaused) {
		if surface != nil {
			surface.Release()
		}
		v.state = Paused
		v.resume = func() {
			v.state = Unrendered
			_ = v.Draw(ctx, done)
		}
		return
	}

	v.state = Finished
	v.err = err
	if surface != nil {
		if v.surface != nil {
			v.surface.Release()
		}
		v.surface = surface
	}
	if v.opt.OnAfterDraw != nil {
		v.opt.OnAfterDraw(v, err)
	}
	if done != nil {
		done()
	}
}

func (v *View) pause(t *task, wake chan struct{}) {
	if v.task != t {
		close(wake)
		return
	}
	v.state = Paused
	v.resume = func() {
		v.state = Running
		close(wake)
	}
}
