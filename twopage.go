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

import "seehuhn.de/go/pdfview/page"

// TwoPageMode reports whether pages are shown side by side.
func (v *Viewer) TwoPageMode() bool {
	v.lock()
	defer v.unlock()
	return v.mode.TwoPage()
}

// SetTwoPageMode switches between single page and two page layout.
// The page which is looked at stays current.
func (v *Viewer) SetTwoPageMode(on bool) {
	v.lock()
	defer v.unlock()
	v.setTwoPageMode(on)
}

func (v *Viewer) setTwoPageMode(on bool) {
	current := v.current
	if v.isLookingAtRightSidePage() {
		current++
	}
	v.mode.SetTwoPage(on)
	v.applyMode(current)
}

// CoverOffset reports whether the first page is shown on its own in two
// page mode.
func (v *Viewer) CoverOffset() bool {
	v.lock()
	defer v.unlock()
	return v.mode.CoverOffset()
}

// SetCoverOffset sets whether the first page is shown on its own.  This
// switches to two page mode.
func (v *Viewer) SetCoverOffset(on bool) {
	v.lock()
	defer v.unlock()

	if v.mode.TwoPage() {
		v.setTwoPageMode(false)
	}
	current := v.current
	v.mode.SetCoverOffset(on)
	v.applyMode(current)
}

// applyMode makes the given page current after the layout mode has
// changed.
func (v *Viewer) applyMode(current int) {
	if len(v.views) == 0 {
		v.current = current
		return
	}

	v.setCurrentPageNumber(current, true)
	if v.mode.TwoPage() && v.currentPageNumber() != current {
		// the page to keep is the right page of the new spread
		rightLeft := v.pageBox(current).X - v.scrollLeft
		v.setScroll(v.scrollLeft+rightLeft, v.scrollTop)
	}
	v.update()
}

// PageSwitchUnit returns the number of pages to advance for "next page".
func (v *Viewer) PageSwitchUnit() int {
	v.lock()
	defer v.unlock()
	return v.mode.Unit()
}

// currentRightSidePageView returns the right page of the current spread,
// or nil.
func (v *Viewer) currentRightSidePageView() *page.View {
	right := v.mode.RightPage(v.current, len(v.views))
	if right == 0 {
		return nil
	}
	return v.views[right-1]
}

// currentLargerHeightPageView returns the taller page of the current
// spread.
func (v *Viewer) currentLargerHeightPageView() *page.View {
	cur := v.currentPageView()
	right := v.currentRightSidePageView()
	if cur != nil && right != nil && right.Height() > cur.Height() {
		return right
	}
	return cur
}

// rightPageOffset returns the position of the left edge of the right page
// relative to the centre of the container, together with the page width.
func (v *Viewer) rightPageOffset(right *page.View) (offset, width float64) {
	box := v.pageBox(right.ID())
	return box.X - v.scrollLeft - v.width/2, box.W
}

// IsLookingAtRightSidePage reports whether the right page of the current
// spread is centred in the container.
func (v *Viewer) IsLookingAtRightSidePage() bool {
	v.lock()
	defer v.unlock()
	return v.isLookingAtRightSidePage()
}

func (v *Viewer) isLookingAtRightSidePage() bool {
	right := v.currentRightSidePageView()
	if right == nil {
		return false
	}
	offset, width := v.rightPageOffset(right)
	return offset < -width/8
}

// IsLookingAtLeftSidePage reports whether the left page of the current
// spread is centred in the container.
func (v *Viewer) IsLookingAtLeftSidePage() bool {
	v.lock()
	defer v.unlock()
	return v.isLookingAtLeftSidePage()
}

func (v *Viewer) isLookingAtLeftSidePage() bool {
	right := v.currentRightSidePageView()
	if right == nil {
		return v.currentPageView() != nil
	}
	offset, width := v.rightPageOffset(right)
	return offset > width/8
}

// IsCurrentPageRendering reports whether the page, or the pages, looked
// at are still being rendered.
func (v *Viewer) IsCurrentPageRendering() bool {
	v.lock()
	defer v.unlock()

	isRendering := func(view *page.View) bool {
		return view != nil && view.Loading()
	}
	cur := v.currentPageView()
	right := v.currentRightSidePageView()
	switch {
	case v.isLookingAtLeftSidePage():
		return isRendering(cur)
	case v.isLookingAtRightSidePage():
		return isRendering(right)
	default:
		return isRendering(cur) || isRendering(right)
	}
}
