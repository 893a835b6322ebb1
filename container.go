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
	"seehuhn.de/go/pdfview/layout"
	"seehuhn.de/go/pdfview/page"
	"seehuhn.de/go/pdfview/zoom"
)

// Geometry is a snapshot of the container and the page layout.
type Geometry struct {
	// Width and Height give the client size of the container.
	Width, Height float64

	// ScrollLeft and ScrollTop give the scroll offset of the container.
	ScrollLeft, ScrollTop float64

	// Extent is the size of the scrollable content.
	Extent layout.Size

	// Pages contains one entry per page.
	Pages []PageInfo
}

// Geometry returns a snapshot of the container and of all page views.
func (v *Viewer) Geometry() Geometry {
	v.lock()
	defer v.unlock()

	v.layoutPages()
	g := Geometry{
		Width:      v.width,
		Height:     v.height,
		ScrollLeft: v.scrollLeft,
		ScrollTop:  v.scrollTop,
		Extent:     v.extent,
	}
	for _, view := range v.views {
		g.Pages = append(g.Pages, v.pageInfo(view))
	}
	return g
}

// Resize informs the viewer about a new client size of the container.
// Preset scales which depend on the container size are re-resolved.
func (v *Viewer) Resize(width, height float64) {
	v.lock()
	defer v.unlock()

	v.width = max(width, 0)
	v.height = max(height, 0)
	if len(v.views) == 0 {
		return
	}

	switch v.scaleValue {
	case zoom.Auto, zoom.PageFit, zoom.PageWidth:
		v.setScale(v.scaleValue, false)
	case "":
		v.setScale(zoom.DefaultValue, false)
	}
	v.setScroll(v.scrollLeft, v.scrollTop)
	v.update()
}

// ScrollTo scrolls the container to the given offset.  The offset is
// clamped to the scrollable area.
func (v *Viewer) ScrollTo(left, top float64) {
	v.lock()
	defer v.unlock()
	v.setScroll(left, top)
}

// Scroll scrolls the container by the given amount.
func (v *Viewer) Scroll(dx, dy float64) {
	v.lock()
	defer v.unlock()
	v.setScroll(v.scrollLeft+dx, v.scrollTop+dy)
}

// setScroll moves the container and records the scroll direction.
// The visibility pass runs when the lock is released.
func (v *Viewer) setScroll(left, top float64) {
	v.layoutPages()

	maxLeft := max(v.extent.Width-v.width, 0)
	maxTop := max(v.extent.Height-v.height, 0)
	left = min(max(left, 0), maxLeft)
	top = min(max(top, 0), maxTop)

	if top != v.scrollTop {
		v.scrollDown = top > v.scrollTop
	}
	if left != v.scrollLeft || top != v.scrollTop {
		v.scrollPending = true
	}
	v.scrollLeft = left
	v.scrollTop = top
}

// scrollUpdate reacts to a change of the scroll position.
func (v *Viewer) scrollUpdate() {
	if len(v.views) == 0 {
		return
	}
	v.update()
}

// spot is an offset within a page view, in CSS pixels.
type spot struct {
	left, top float64
}

// scrollIntoView scrolls the container so that the top of the given page,
// or the given spot within the page, is at the top-left of the container.
// Without spot, the horizontal position is kept.
func (v *Viewer) scrollIntoView(view *page.View, sp *spot) {
	box := v.pageBox(view.ID())
	if sp == nil {
		v.setScroll(v.scrollLeft, box.Y)
		return
	}
	v.setScroll(box.X+sp.left, box.Y+sp.top)
}

// layoutPages recomputes the position of all page views.
func (v *Viewer) layoutPages() {
	sizes := make([]layout.Size, len(v.views))
	for i, view := range v.views {
		sizes[i] = layout.Size{Width: view.Width(), Height: view.Height()}
	}
	v.boxes, v.extent = layout.Arrange(sizes, v.mode, v.width, v.opt.Spacing)
}

// pageBox returns the position of the given page.
func (v *Viewer) pageBox(pageNumber int) layout.Box {
	v.layoutPages()
	return v.boxes[pageNumber-1]
}
