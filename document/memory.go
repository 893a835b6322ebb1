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

package document

import (
	"context"
	"sync"

	"seehuhn.de/go/geom/rect"
)

// Memory is an in-memory [Document].
//
// All pages are available immediately.  The optional Delay hook is called
// before each page is returned, which allows tests to hold back page
// fetches.  Memory is safe for concurrent use.
type Memory struct {
	Pages []*MemPage

	// Delay, if set, is called at the start of every [Memory.Page] call.
	// A non-nil return value is returned as the error of the call.
	Delay func(ctx context.Context, pageNumber int) error

	mu      sync.Mutex
	fetches map[int]int
}

var _ Document = (*Memory)(nil)

// MemPage is a page of a [Memory] document.
type MemPage struct {
	Box     rect.Rect
	Rotate  int
	PageRef Ref
}

var _ Page = (*MemPage)(nil)

// ViewBox implements the [Page] interface.
func (p *MemPage) ViewBox() rect.Rect { return p.Box }

// Rotation implements the [Page] interface.
func (p *MemPage) Rotation() int { return p.Rotate }

// Ref implements the [Page] interface.
func (p *MemPage) Ref() Ref { return p.PageRef }

// NewMemory creates a document with n pages of the given size.
// Page references are assigned as 10, 11, 12, ...
func NewMemory(n int, box rect.Rect) *Memory {
	sizes := make([]rect.Rect, n)
	for i := range sizes {
		sizes[i] = box
	}
	return NewMemorySizes(sizes...)
}

// NewMemorySizes creates a document with one page per given box.
func NewMemorySizes(boxes ...rect.Rect) *Memory {
	m := &Memory{}
	for i, box := range boxes {
		m.Pages = append(m.Pages, &MemPage{
			Box:     box,
			PageRef: Ref(10 + i),
		})
	}
	return m
}

// NumPages implements the [Document] interface.
func (m *Memory) NumPages() int {
	return len(m.Pages)
}

// Page implements the [Document] interface.
func (m *Memory) Page(ctx context.Context, pageNumber int) (Page, error) {
	m.mu.Lock()
	if m.fetches == nil {
		m.fetches = make(map[int]int)
	}
	m.fetches[pageNumber]++
	m.mu.Unlock()

	if m.Delay != nil {
		if err := m.Delay(ctx, pageNumber); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pageNumber < 1 || pageNumber > len(m.Pages) {
		return nil, &PageRangeError{PageNumber: pageNumber, NumPages: len(m.Pages)}
	}
	return m.Pages[pageNumber-1], nil
}

// Fetches returns how often the given page has been requested.
func (m *Memory) Fetches(pageNumber int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches[pageNumber]
}
