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

// Package buffer implements the render buffer of the viewer.
//
// Rendering a page is cheap to request but expensive to hold, so only a
// window of rendered pages around the viewport is kept.  The buffer is an
// ordered set of page views, kept in least-recently-used order.  When the
// set grows beyond its capacity, the least recently used view is removed and
// destroyed.
//
// The buffer holds non-owning references: destroying a view releases its
// rendered surface, but the view itself stays owned by the viewer.
package buffer

// Destroyer is implemented by buffer entries.
// Destroy must release rendered content and must be a no-op if there is
// nothing to release.
type Destroyer interface {
	Destroy()
}

// Buffer is a capacity-bounded set of entries in least-recently-used order.
// Entries are compared by identity, so they should be pointers.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	capacity    int
	entries     map[Destroyer]*entry
	first, last *entry
}

type entry struct {
	prev, next *entry
	val        Destroyer
}

// New creates a new buffer with the given capacity.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		capacity: capacity,
		entries:  make(map[Destroyer]*entry, capacity),
	}
}

// Touch marks v as the most recently used entry, inserting it if needed.
// If this makes the buffer exceed its capacity, the least recently used
// entry is removed and destroyed.
func (b *Buffer) Touch(v Destroyer) {
	if ent, ok := b.entries[v]; ok {
		b.moveToFront(ent)
		return
	}

	ent := &entry{val: v}
	b.entries[v] = ent
	b.moveToFront(ent)

	for len(b.entries) > b.capacity {
		b.evictLast()
	}
}

// Resize changes the capacity of the buffer.
// Entries are evicted immediately until the buffer fits.
func (b *Buffer) Resize(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	b.capacity = capacity
	for len(b.entries) > b.capacity {
		b.evictLast()
	}
}

// Has reports whether v is in the buffer.
// The entry is not marked as recently used.
func (b *Buffer) Has(v Destroyer) bool {
	_, ok := b.entries[v]
	return ok
}

// Len returns the number of entries in the buffer.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Cap returns the current capacity of the buffer.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Entries returns the entries, most recently used first.
func (b *Buffer) Entries() []Destroyer {
	res := make([]Destroyer, 0, len(b.entries))
	for ent := b.first; ent != nil; ent = ent.next {
		res = append(res, ent.val)
	}
	return res
}

// Reset removes all entries without destroying them.
func (b *Buffer) Reset() {
	clear(b.entries)
	b.first = nil
	b.last = nil
}

func (b *Buffer) moveToFront(ent *entry) {
	if ent == b.first {
		return
	}

	if ent.prev != nil {
		ent.prev.next = ent.next
	}
	if ent.next != nil {
		ent.next.prev = ent.prev
	}
	if ent == b.last {
		b.last = ent.prev
	}

	ent.prev = nil
	ent.next = b.first
	if b.first != nil {
		b.first.prev = ent
	}
	b.first = ent
	if b.last == nil {
		b.last = ent
	}
}

func (b *Buffer) evictLast() {
	ent := b.last
	if ent == nil {
		return
	}

	delete(b.entries, ent.val)
	b.last = ent.prev
	if b.last != nil {
		b.last.next = nil
	} else {
		b.first = nil
	}
	ent.prev = nil

	ent.val.Destroy()
}
