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

// Package layout implements the page layout modes of the viewer.
//
// In single-page mode, pages are arranged in one continuous column.  In
// two-page mode, pages are shown as spreads of two pages side by side.  With
// a cover offset, the first page is shown on its own and pairing starts at
// page 2.
//
// The left-hand page number of a spread is called the canonical anchor of
// all pages in the spread.
package layout

// Mode is the page layout mode of a document session.
// The zero value is single-page mode.
type Mode struct {
	twoPage     bool
	coverOffset bool
}

// TwoPage reports whether pages are shown as two-page spreads.
func (m Mode) TwoPage() bool {
	return m.twoPage
}

// CoverOffset reports whether the first page is shown on its own.
// This is only ever true in two-page mode.
func (m Mode) CoverOffset() bool {
	return m.coverOffset
}

// SetTwoPage switches two-page mode on or off.
// Switching two-page mode off also clears the cover offset.
func (m *Mode) SetTwoPage(on bool) {
	m.twoPage = on
	if !on {
		m.coverOffset = false
	}
}

// SetCoverOffset sets the cover offset flag.
// This always switches on two-page mode.
func (m *Mode) SetCoverOffset(on bool) {
	m.coverOffset = on
	m.twoPage = true
}

// Unit returns the number of pages per spread.
func (m Mode) Unit() int {
	if m.twoPage {
		return 2
	}
	return 1
}

// Anchor returns the canonical anchor of the spread containing page p,
// in a document with n pages.  Page numbers outside [1, n] are clamped.
//
// Anchor is idempotent: Anchor(Anchor(p, n), n) == Anchor(p, n).
func (m Mode) Anchor(p, n int) int {
	p = min(max(1, p), n)
	if !m.twoPage || p < 1 {
		return p
	}

	if !m.coverOffset {
		// spreads are (1,2), (3,4), ...
		if p%2 == 0 {
			return p - 1
		}
		return p
	}

	// spreads are (1), (2,3), (4,5), ...
	if p == 1 || p%2 == 0 {
		return p
	}
	return p - 1
}

// RightPage returns the right-hand page of the spread anchored at page
// anchor, or 0 if the spread has only one page.
func (m Mode) RightPage(anchor, n int) int {
	if !m.twoPage || (m.coverOffset && anchor == 1) {
		return 0
	}
	if anchor+1 > n {
		return 0
	}
	return anchor + 1
}

// Spreads returns the page numbers of a document with n pages, grouped
// into rows as they are displayed.
func (m Mode) Spreads(n int) [][]int {
	var rows [][]int
	for p := 1; p <= n; {
		right := m.RightPage(p, n)
		if right == 0 {
			rows = append(rows, []int{p})
			p++
			continue
		}
		rows = append(rows, []int{p, right})
		p += 2
	}
	return rows
}
