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
	"fmt"
	"log/slog"
	"sync"

	"seehuhn.de/go/pdfview/buffer"
	"seehuhn.de/go/pdfview/document"
	"seehuhn.de/go/pdfview/event"
	"seehuhn.de/go/pdfview/layout"
	"seehuhn.de/go/pdfview/location"
	"seehuhn.de/go/pdfview/page"
	"seehuhn.de/go/pdfview/renderqueue"
	"seehuhn.de/go/pdfview/visibility"
	"seehuhn.de/go/pdfview/zoom"
)

// State is the life cycle state of a [Viewer].
type State int

// These are the possible states of a [Viewer].
const (
	// NoDocument means that no document is bound.
	NoDocument State = iota

	// Binding means that a document is set, but the first page has not
	// been fetched yet.
	Binding

	// Ready means that the page views of the document exist.
	Ready
)

func (s State) String() string {
	switch s {
	case NoDocument:
		return "no document"
	case Binding:
		return "binding"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PresentationModeState describes whether the host shows the document in
// full screen presentation mode.
type PresentationModeState int

// These are the possible values of [PresentationModeState].
const (
	PresentationUnknown PresentationModeState = iota
	PresentationNormal
	PresentationChanging
	PresentationFullscreen
)

// Viewer manages the viewport of a paginated document.
type Viewer struct {
	mu sync.Mutex

	opt   *Options
	log   *slog.Logger
	bus   *event.Bus
	queue *renderqueue.Queue

	cacheSize         int
	verticalTolerance float64
	adjacentPages     float64
	predraw           predrawState

	// container geometry, in CSS pixels
	width, height         float64
	scrollLeft, scrollTop float64
	scrollDown            bool
	scrollPending         bool
	presentation          PresentationModeState

	doc        document.Document
	sess       *session
	views      []*page.View
	boxes      []layout.Box
	extent     layout.Size
	buffer     *buffer.Buffer
	mode       layout.Mode
	current    int
	scale      float64
	scaleValue zoom.Value
	rotation   int
	labels     []string
	loc        *location.Location
	requests   map[int]*pageRequest
	pagesReady bool

	pending []event.Event
}

// session holds the state belonging to one bound document.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc

	firstRendered    chan struct{}
	hasFirstRendered bool
	pagesLoaded      chan struct{}
}

// pageRequest is an outstanding page fetch.
type pageRequest struct {
	callbacks []func(document.Page, error)
}

// New creates a new viewer.  opt can be nil, in which case
// [DesktopOptions] are used.
func New(opt *Options) *Viewer {
	opt = mergeOptions(opt, &DesktopOptions)

	v := &Viewer{
		opt:               opt,
		log:               opt.Logger,
		bus:               opt.Bus,
		cacheSize:         opt.DefaultCacheSize,
		verticalTolerance: opt.DefaultVerticalTolerance,
		adjacentPages:     opt.DefaultAdjacentPagesToDraw,
		width:             opt.Width,
		height:            opt.Height,
		scrollDown:        true,
	}
	if v.log == nil {
		v.log = newNopLogger()
	}
	if v.bus == nil {
		v.bus = &event.Bus{}
	}
	v.queue = renderqueue.New(renderer{v}, &renderqueue.Options{
		Post:        v.run,
		OnIdle:      v.cleanup,
		IdleTimeout: opt.CleanupTimeout,
	})
	v.resetView()
	return v
}

// renderer connects the rendering queue to a viewer whose lock is held.
type renderer struct {
	v *Viewer
}

func (r renderer) ForceRendering(visible *visibility.Result) bool {
	return r.v.forceRendering(visible)
}

// lock acquires the viewer mutex.
func (v *Viewer) lock() {
	v.mu.Lock()
}

// unlock processes a pending scroll notification, releases the viewer
// mutex and then dispatches all queued events.
func (v *Viewer) unlock() {
	if v.scrollPending {
		v.scrollPending = false
		v.scrollUpdate()
	}
	events := v.pending
	v.pending = nil
	v.mu.Unlock()

	for _, e := range events {
		v.bus.Dispatch(e)
	}
}

// run executes f under the viewer lock.
func (v *Viewer) run(f func()) {
	v.lock()
	defer v.unlock()
	f()
}

// emit queues an event for dispatch when the lock is released.
func (v *Viewer) emit(e event.Event) {
	v.pending = append(v.pending, e)
}

// Bus returns the event bus of the viewer.
func (v *Viewer) Bus() *event.Bus {
	return v.bus
}

// State returns the life cycle state of the viewer.
func (v *Viewer) State() State {
	v.lock()
	defer v.unlock()
	return v.state()
}

func (v *Viewer) state() State {
	switch {
	case v.doc == nil:
		return NoDocument
	case len(v.views) == 0:
		return Binding
	default:
		return Ready
	}
}

// SetDocument binds a document to the viewer.
//
// A previously bound document is released first.  If doc is nil, the
// viewer returns to the initial state.  Otherwise, SetDocument fetches the
// first page, creates one page view per page and emits a
// [event.PagesInit] event.  The remaining pages are fetched in the
// background once the first page has been rendered.
//
// The context only bounds the fetch of the first page.
func (v *Viewer) SetDocument(ctx context.Context, doc document.Document) error {
	v.lock()
	if v.doc != nil {
		v.cancelRendering()
		v.resetView()
	}
	v.doc = doc
	if doc == nil {
		v.unlock()
		return nil
	}

	sessCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &session{
		ctx:           sessCtx,
		cancel:        cancel,
		firstRendered: make(chan struct{}),
		pagesLoaded:   make(chan struct{}),
	}
	v.sess = s
	v.unlock()

	fetchCtx, stopFetch := context.WithCancel(s.ctx)
	stop := context.AfterFunc(ctx, stopFetch)
	first, err := doc.Page(fetchCtx, 1)
	stop()
	stopFetch()

	v.lock()
	defer v.unlock()
	if v.sess != s {
		return ErrDocumentClosed
	}
	if err != nil {
		v.log.Error("cannot fetch first page", "error", err)
		v.resetView()
		v.doc = nil
		return fmt.Errorf("fetch first page: %w", err)
	}
	v.bind(s, doc, first)
	return nil
}

// bind creates the page views for a document whose first page is known.
func (v *Viewer) bind(s *session, doc document.Document, first document.Page) {
	n := doc.NumPages()
	scale := v.currentScale()
	viewport := page.NewViewport(first.ViewBox(), scale*page.CSSUnits,
		page.NormalizeRotation(first.Rotation()))

	viewOpt := &page.Options{
		Painter:           v.opt.Painter,
		Post:              v.run,
		IsHighestPriority: v.queue.IsHighestPriority,
		OnBeforeDraw: func(pv *page.View) {
			if v.sess != s {
				return
			}
			v.buffer.Touch(pv)
		},
		OnAfterDraw: func(pv *page.View, err error) {
			if v.sess != s {
				return
			}
			v.afterDraw(s, pv, err)
		},
	}
	v.views = make([]*page.View, n)
	for i := range v.views {
		v.views[i] = page.NewView(i+1, scale, viewport, viewOpt)
	}
	v.views[0].SetPage(first)
	if v.opt.LinkService != nil {
		v.opt.LinkService.CachePageRef(1, first.Ref())
	}
	for i, label := range v.labels {
		v.views[i].SetLabel(label)
	}

	v.emit(event.PagesInit{PagesCount: n})

	v.current = v.mode.Anchor(v.current, n)

	value := v.scaleValue
	if value == "" {
		value = zoom.DefaultValue
	}
	if err := v.setScale(value, false); err != nil {
		v.setScale(zoom.DefaultValue, false)
	}
	v.update()

	go v.prefetch(s, n)
}

func (v *Viewer) afterDraw(s *session, pv *page.View, err error) {
	if !s.hasFirstRendered {
		s.hasFirstRendered = true
		close(s.firstRendered)
	}
	if err != nil {
		v.log.Error("rendering failed", "page", pv.ID(), "error", err)
	}
	v.emit(event.PageRendered{PageNumber: pv.ID(), Err: err})
}

// prefetch fetches all pages of the document in the background, once the
// first page has been rendered.
func (v *Viewer) prefetch(s *session, n int) {
	select {
	case <-s.firstRendered:
	case <-s.ctx.Done():
		return
	}

	if !v.opt.DisableAutoFetch {
		sem := make(chan struct{}, v.opt.PrefetchConcurrency)
		results := make(chan struct{}, n)
		for pageNumber := 1; pageNumber <= n; pageNumber++ {
			select {
			case sem <- struct{}{}:
			case <-s.ctx.Done():
				return
			}
			v.run(func() {
				if v.sess != s {
					return
				}
				v.ensurePageLoaded(s, pageNumber, func(document.Page, error) {
					<-sem
					results <- struct{}{}
				})
			})
		}
		for range n {
			select {
			case <-results:
			case <-s.ctx.Done():
				return
			}
		}
	}

	v.run(func() {
		if v.sess != s || v.pagesReady {
			return
		}
		v.pagesReady = true
		close(s.pagesLoaded)
		v.emit(event.PagesLoaded{PagesCount: n})
	})
}

// ensurePageLoaded calls cb once the content of the given page is
// available.  Concurrent requests for the same page share one fetch.
// cb is called with the lock held.
func (v *Viewer) ensurePageLoaded(s *session, pageNumber int, cb func(document.Page, error)) {
	view := v.views[pageNumber-1]
	if p := view.Page(); p != nil {
		cb(p, nil)
		return
	}
	if req := v.requests[pageNumber]; req != nil {
		req.callbacks = append(req.callbacks, cb)
		return
	}

	req := &pageRequest{callbacks: []func(document.Page, error){cb}}
	v.requests[pageNumber] = req
	doc := v.doc
	go func() {
		p, err := doc.Page(s.ctx, pageNumber)
		v.run(func() {
			if v.sess != s {
				return
			}
			delete(v.requests, pageNumber)
			if err != nil {
				v.log.Error("cannot fetch page", "page", pageNumber, "error", err)
			} else {
				if view.Page() == nil {
					view.SetPage(p)
				}
				if v.opt.LinkService != nil {
					v.opt.LinkService.CachePageRef(pageNumber, p.Ref())
				}
			}
			for _, cb := range req.callbacks {
				cb(p, err)
			}
		})
	}()
}

// FirstPageRendered returns a channel which is closed when the first page
// of the current document has been rendered.  If no document is bound, the
// result is nil.
func (v *Viewer) FirstPageRendered() <-chan struct{} {
	v.lock()
	defer v.unlock()
	if v.sess == nil {
		return nil
	}
	return v.sess.firstRendered
}

// PagesLoaded returns a channel which is closed when all pages of the
// current document have been fetched.  If no document is bound, the
// result is nil.
func (v *Viewer) PagesLoaded() <-chan struct{} {
	v.lock()
	defer v.unlock()
	if v.sess == nil {
		return nil
	}
	return v.sess.pagesLoaded
}

// Close releases the current document and stops all timers.
func (v *Viewer) Close() error {
	err := v.SetDocument(context.Background(), nil)
	v.lock()
	defer v.unlock()
	v.stopPredraw()
	return err
}

// cancelRendering cancels all renderings in progress.
func (v *Viewer) cancelRendering() {
	for _, view := range v.views {
		view.CancelRendering()
	}
}

// resetView returns the viewer to the state without document.
func (v *Viewer) resetView() {
	if v.sess != nil {
		v.sess.cancel()
		v.sess = nil
	}
	v.queue.Stop()
	for _, view := range v.views {
		view.Destroy()
	}
	v.views = nil
	v.boxes = nil
	v.extent = layout.Size{}
	v.buffer = buffer.New(v.cacheSize)
	v.mode = layout.Mode{}
	v.current = 1
	v.scale = zoom.UnknownScale
	v.scaleValue = ""
	v.rotation = 0
	v.labels = nil
	v.loc = nil
	v.requests = make(map[int]*pageRequest)
	v.pagesReady = false
	v.scrollLeft = 0
	v.scrollTop = 0
	v.scrollDown = true
	v.scrollPending = false
}

// ForceRendering starts rendering the most important page which is not
// yet rendered, and reports whether such a page was found.
func (v *Viewer) ForceRendering() bool {
	v.lock()
	defer v.unlock()
	return v.forceRendering(nil)
}

func (v *Viewer) forceRendering(visible *visibility.Result) bool {
	if v.sess == nil || len(v.views) == 0 {
		return false
	}
	if visible == nil {
		visible = v.visiblePages()
	}
	view := v.queue.HighestPriority(visible, v.views, v.scrollDown)
	if view == nil {
		return false
	}

	s := v.sess
	v.ensurePageLoaded(s, view.ID(), func(document.Page, error) {
		// A view without content is marked as finished by the queue,
		// which then moves on to the next page.
		v.queue.RenderView(s.ctx, view)
	})
	return true
}

// Update recomputes the visible pages and schedules rendering.
func (v *Viewer) Update() {
	v.lock()
	defer v.unlock()
	v.update()
}

// update is the central visibility pass.
func (v *Viewer) update() {
	n := len(v.views)
	if n == 0 {
		return
	}
	visible := v.visiblePages()
	if visible.Empty() {
		return
	}

	v.buffer.Resize(max(v.cacheSize, 2*len(visible.Pages)+1))
	v.queue.RenderHighestPriority(visible)

	currentID := v.mode.Anchor(visible.Pages[0].ID, n)
	v.setCurrentPageNumber(currentID, false)

	presentation := v.isInPresentationMode()
	for _, p := range visible.Pages {
		view := v.views[p.ID-1]
		view.SetTransparent(presentation && v.mode.Anchor(p.ID, n) != currentID)
	}

	v.updateLocation(visible.Pages[0])
	v.emit(event.UpdateViewArea{Location: *v.loc})
}

// visiblePages runs the visibility computation on the current layout.
func (v *Viewer) visiblePages() *visibility.Result {
	v.layoutPages()

	policy := visibility.Policy{
		VerticalTolerance: v.verticalTolerance,
		AdjacentPages:     v.adjacentPages,
	}
	var w, h float64
	if cur := v.currentPageView(); cur != nil {
		w, h = cur.Width(), cur.Height()
	}
	vp := visibility.Viewport{
		Left:   v.scrollLeft,
		Top:    v.scrollTop,
		Width:  v.width,
		Height: v.height,
	}
	return visibility.Compute(vp, v.boxes, policy.Tolerances(w, h), true)
}

func (v *Viewer) updateLocation(first visibility.Page) {
	view := v.views[first.ID-1]
	loc := location.Compute(first.ID, view, first.X, first.Y,
		v.scrollLeft, v.scrollTop, v.scale, v.scaleValue)
	v.loc = &loc
}

// Location returns the location of the top-left corner of the visible
// area.  The second return value is false before the first visibility
// pass.
func (v *Viewer) Location() (location.Location, bool) {
	v.lock()
	defer v.unlock()
	if v.loc == nil {
		return location.Location{}, false
	}
	return *v.loc, true
}

// Cleanup discards all renderings which have not finished.
func (v *Viewer) Cleanup() {
	v.lock()
	defer v.unlock()
	v.cleanup()
}

func (v *Viewer) cleanup() {
	for _, view := range v.views {
		if view.State() != page.Finished {
			view.Reset()
		}
	}
}

// NumPages returns the number of pages of the bound document.
func (v *Viewer) NumPages() int {
	v.lock()
	defer v.unlock()
	return len(v.views)
}

// CurrentPageNumber returns the anchor page of the current spread.
func (v *Viewer) CurrentPageNumber() int {
	v.lock()
	defer v.unlock()
	return v.currentPageNumber()
}

func (v *Viewer) currentPageNumber() int {
	if len(v.views) == 0 {
		return v.current
	}
	return v.mode.Anchor(v.current, len(v.views))
}

// SetCurrentPageNumber makes the given page the current page and scrolls
// it into view.  Page numbers outside the document are clamped.
func (v *Viewer) SetCurrentPageNumber(pageNumber int) error {
	v.lock()
	defer v.unlock()
	if v.doc == nil || len(v.views) == 0 {
		v.current = pageNumber
		return nil
	}
	v.setCurrentPageNumber(pageNumber, true)
	return nil
}

// setCurrentPageNumber sets the current page and emits a
// [event.PageChanging] event if the page changed or if reset is true.
// If reset is true, the page is scrolled into view.
func (v *Viewer) setCurrentPageNumber(pageNumber int, reset bool) {
	pageNumber = v.mode.Anchor(pageNumber, len(v.views))
	prev := v.current
	v.current = pageNumber
	if pageNumber != prev || reset {
		v.emit(event.PageChanging{
			PageNumber:         pageNumber,
			PreviousPageNumber: prev,
			PageLabel:          v.pageLabel(pageNumber),
		})
	}
	if reset {
		v.resetCurrentPageView()
	}
}

func (v *Viewer) resetCurrentPageView() {
	if v.isInPresentationMode() {
		v.setScale(v.scaleValue, true)
	}
	if view := v.currentLargerHeightPageView(); view != nil {
		v.scrollIntoView(view, nil)
	}
}

// currentPageView returns the view of the current page, or nil.
func (v *Viewer) currentPageView() *page.View {
	i := v.current - 1
	if i < 0 || i >= len(v.views) {
		return nil
	}
	return v.views[i]
}

// PresentationModeState returns the presentation mode state set by the
// host.
func (v *Viewer) PresentationModeState() PresentationModeState {
	v.lock()
	defer v.unlock()
	return v.presentation
}

// SetPresentationModeState informs the viewer about full screen mode.
func (v *Viewer) SetPresentationModeState(state PresentationModeState) {
	v.lock()
	defer v.unlock()
	v.presentation = state
	v.update()
}

func (v *Viewer) isInPresentationMode() bool {
	return v.presentation == PresentationFullscreen
}

// PageInfo is a snapshot of the state of one page view.
type PageInfo struct {
	PageNumber  int
	Box         layout.Box
	Scale       float64
	Rotation    int
	State       page.State
	Loaded      bool
	Label       string
	Transparent bool

	// Surface is the rendered page, or nil.
	Surface page.Surface
}

// PageView returns a snapshot of the view of the given page.
// The second return value is false if the page does not exist.
func (v *Viewer) PageView(pageNumber int) (PageInfo, bool) {
	v.lock()
	defer v.unlock()
	if pageNumber < 1 || pageNumber > len(v.views) {
		return PageInfo{}, false
	}
	v.layoutPages()
	return v.pageInfo(v.views[pageNumber-1]), true
}

func (v *Viewer) pageInfo(view *page.View) PageInfo {
	return PageInfo{
		PageNumber:  view.ID(),
		Box:         v.boxes[view.ID()-1],
		Scale:       view.Scale(),
		Rotation:    view.TotalRotation(),
		State:       view.State(),
		Loaded:      view.Page() != nil,
		Label:       view.Label(),
		Transparent: view.Transparent(),
		Surface:     view.Surface(),
	}
}
