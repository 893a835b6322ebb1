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

// Package event implements a notification bus for viewer events.
//
// Events are delivered synchronously, in the order of subscription.
// Publishers do not wait for any acknowledgement, and subscribers may call
// back into the publisher.
package event

import (
	"sync"

	"seehuhn.de/go/pdfview/location"
	"seehuhn.de/go/pdfview/zoom"
)

// Name identifies a kind of event.
type Name string

// These are the events published by the viewer.
const (
	NamePagesInit      Name = "pagesinit"
	NamePagesLoaded    Name = "pagesloaded"
	NamePageChanging   Name = "pagechanging"
	NameScaleChanging  Name = "scalechanging"
	NameUpdateViewArea Name = "updateviewarea"
	NamePageRendered   Name = "pagerendered"
)

// Event is a notification sent over a [Bus].
type Event interface {
	EventName() Name
}

// PagesInit is sent when the page views of a new document have been
// created.
type PagesInit struct {
	PagesCount int
}

func (PagesInit) EventName() Name { return NamePagesInit }

// PagesLoaded is sent when the content of all pages has been resolved.
type PagesLoaded struct {
	PagesCount int
}

func (PagesLoaded) EventName() Name { return NamePagesLoaded }

// PageChanging is sent when the current page changes.
type PageChanging struct {
	PageNumber         int
	PreviousPageNumber int
	PageLabel          string // empty if the document has no page labels
}

func (PageChanging) EventName() Name { return NamePageChanging }

// ScaleChanging is sent when the zoom changes.
type ScaleChanging struct {
	Scale              float64
	PreviousPageNumber int
	PresetValue        zoom.Value // empty unless the change was caused by a zoom token
}

func (ScaleChanging) EventName() Name { return NameScaleChanging }

// UpdateViewArea is sent after every visibility pass.
type UpdateViewArea struct {
	Location location.Location
}

func (UpdateViewArea) EventName() Name { return NameUpdateViewArea }

// PageRendered is sent when a page has been painted.
type PageRendered struct {
	PageNumber int
	Err        error
}

func (PageRendered) EventName() Name { return NamePageRendered }

// Listener receives events.
type Listener func(e Event)

// Subscription identifies a registered listener.
type Subscription struct {
	name Name
	id   uint64
}

// Bus dispatches events to listeners.  A Bus is safe for concurrent use.
// The zero value is an empty bus, ready to use.
type Bus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[Name][]entry
}

type entry struct {
	id uint64
	fn Listener
}

// On registers a listener for the given event name.
func (b *Bus) On(name Name, fn Listener) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = make(map[Name][]entry)
	}
	b.nextID++
	b.listeners[name] = append(b.listeners[name], entry{id: b.nextID, fn: fn})
	return Subscription{name: name, id: b.nextID}
}

// Off removes a listener.  Removing a listener twice is a no-op.
func (b *Bus) Off(s Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.listeners[s.name]
	for i, e := range list {
		if e.id == s.id {
			b.listeners[s.name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Dispatch delivers e to all listeners registered for its name.
// Listeners registered or removed during dispatch take effect for the next
// event.
func (b *Bus) Dispatch(e Event) {
	b.mu.Lock()
	list := b.listeners[e.EventName()]
	b.mu.Unlock()

	for _, l := range list {
		l.fn(e)
	}
}
