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

// Package visibility determines which pages of a scrolled document are
// visible in a container.
package visibility

import (
	"slices"

	"seehuhn.de/go/pdfview/layout"
)

// Viewport is the visible part of the scrolled content, in CSS pixels.
type Viewport struct {
	Left, Top     float64 // scroll position
	Width, Height float64 // client size of the container
}

// Tolerance extends the viewport in each direction.  Pages in the extended
// area count as visible, but contribute no visible percentage.
type Tolerance struct {
	Left, Top, Right, Bottom float64
}

// Page is a visible page.
type Page struct {
	ID      int     // 1-based page number
	X, Y    float64 // position of the page in the content
	Percent int     // visible part of the page, 0-100
}

// Result is the outcome of a visibility computation.
type Result struct {
	// First and Last are the first and last visible pages in page order.
	First, Last Page

	// Pages lists the visible pages.  If sorting was requested, the pages
	// are ordered by decreasing visible percentage, ties broken by page
	// number.
	Pages []Page
}

// Empty reports whether no page is visible.
func (r *Result) Empty() bool {
	return r == nil || len(r.Pages) == 0
}

// Compute returns the pages whose boxes intersect the viewport extended by
// the given tolerance.  Boxes must be given in page order, with
// non-decreasing Y coordinates.
func Compute(vp Viewport, boxes []layout.Box, tol Tolerance, sortByVisibility bool) *Result {
	top := vp.Top - tol.Top
	bottom := vp.Top + vp.Height + tol.Bottom
	left := vp.Left - tol.Left
	right := vp.Left + vp.Width + tol.Right

	res := &Result{}
	for i, box := range boxes {
		if box.Bottom() < top {
			continue
		}
		if box.Y > bottom {
			break
		}
		if box.Right() < left || box.X > right {
			continue
		}

		res.Pages = append(res.Pages, Page{
			ID:      i + 1,
			X:       box.X,
			Y:       box.Y,
			Percent: percent(vp, box),
		})
	}
	if len(res.Pages) == 0 {
		return res
	}

	res.First = res.Pages[0]
	res.Last = res.Pages[len(res.Pages)-1]

	if sortByVisibility {
		slices.SortStableFunc(res.Pages, func(a, b Page) int {
			if a.Percent != b.Percent {
				return b.Percent - a.Percent
			}
			return a.ID - b.ID
		})
	}
	return res
}

// percent gives the part of the box which is inside the viewport.
func percent(vp Viewport, box layout.Box) int {
	if box.W <= 0 || box.H <= 0 {
		return 0
	}
	hiddenH := max(0, vp.Top-box.Y) + max(0, box.Bottom()-(vp.Top+vp.Height))
	hiddenW := max(0, vp.Left-box.X) + max(0, box.Right()-(vp.Left+vp.Width))
	visH := max(0, box.H-hiddenH)
	visW := max(0, box.W-hiddenW)
	return int(visH * visW * 100 / box.H / box.W)
}

// Policy computes the tolerances used for the visibility computation.
type Policy struct {
	// VerticalTolerance is the minimal extension of the viewport below the
	// visible area, in CSS pixels.
	VerticalTolerance float64

	// AdjacentPages is the number of page heights to extend the viewport
	// by below the visible area.
	AdjacentPages float64
}

// Tolerances returns the tolerance for a current page of the given size.
// If there is no current page, width and height are zero.
//
// Below the viewport, the tolerance is AdjacentPages page heights, but at
// least VerticalTolerance.  To the left and right, it is two page widths,
// but at least 10 pixels.  No tolerance is used above the viewport.
func (p Policy) Tolerances(pageWidth, pageHeight float64) Tolerance {
	bottom := max(pageHeight*p.AdjacentPages, p.VerticalTolerance)
	horizontal := max(pageWidth*2, 10)
	return Tolerance{
		Left:   horizontal,
		Right:  horizontal,
		Bottom: bottom,
	}
}
