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

// Package toc builds a table of contents from a document outline.
//
// Every outline item is resolved to a page number through a
// [linkservice.Resolver].  Items whose destination cannot be resolved are
// left out, together with all their children.
package toc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"seehuhn.de/go/pdfview/destination"
	"seehuhn.de/go/pdfview/linkservice"
)

// Outline represents the root of a document outline.
// Create a new outline and populate it using [Outline.AddItem].
type Outline struct {
	// Items contains the top-level outline items.
	Items []*Item
}

// Item represents an outline item, with a title and a destination.
// Items form a tree structure via the Children field.
type Item struct {
	// Title is the text displayed for this outline item.
	Title string

	// Destination specifies the view to show when the item is activated.
	Destination destination.Destination

	// Children contains the child outline items (e.g. subsections of a section).
	Children []*Item

	// Open indicates whether the item is initially expanded.
	Open bool
}

// AddItem appends a new top-level item and returns it.
func (o *Outline) AddItem(title string, dest destination.Destination) *Item {
	item := &Item{
		Title:       title,
		Destination: dest,
	}
	o.Items = append(o.Items, item)
	return item
}

// AddChild appends a new child item and returns it.
func (item *Item) AddChild(title string, dest destination.Destination) *Item {
	child := &Item{
		Title:       title,
		Destination: dest,
	}
	item.Children = append(item.Children, child)
	return child
}

// Entry is one line of a table of contents.
type Entry struct {
	Level    int    // nesting depth, 0 for top-level items
	Label    string // the item title
	Location string // destination hash, see [linkservice.Resolver]
	Page     int    // 1-based page number
}

// ErrNoDestination is reported for outline items without a destination.
var ErrNoDestination = errors.New("outline item has no destination")

// ItemError records why an outline item was left out.
type ItemError struct {
	Title string
	Err   error
}

func (err *ItemError) Error() string {
	return fmt.Sprintf("outline item %q: %v", err.Title, err.Err)
}

func (err *ItemError) Unwrap() error {
	return err.Err
}

// Build resolves all outline items and returns the table of contents in
// document order.  Items are resolved concurrently.
//
// Items which cannot be resolved are skipped, together with their
// children, and the reasons are returned as a joined error of
// [*ItemError] values.  The returned entries are valid even if the error
// is non-nil.
func Build(ctx context.Context, r linkservice.Resolver, o *Outline) ([]Entry, error) {
	if o == nil {
		return nil, nil
	}

	pages := make(map[*Item]int)
	var errs []error
	var mu sync.Mutex
	var wg sync.WaitGroup

	var resolve func(items []*Item)
	resolve = func(items []*Item) {
		for _, item := range items {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var n int
				var err error
				if item.Destination == nil {
					err = ErrNoDestination
				} else {
					_, n, err = r.Resolve(ctx, item.Destination)
				}

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, &ItemError{Title: item.Title, Err: err})
					return
				}
				pages[item] = n
			}()
			resolve(item.Children)
		}
	}
	resolve(o.Items)
	wg.Wait()

	var entries []Entry
	var collect func(items []*Item, level int)
	collect = func(items []*Item, level int) {
		for _, item := range items {
			n, ok := pages[item]
			if !ok {
				continue
			}
			entries = append(entries, Entry{
				Level:    level,
				Label:    item.Title,
				Location: r.DestinationHash(item.Destination),
				Page:     n,
			})
			collect(item.Children, level+1)
		}
	}
	collect(o.Items, 0)

	return entries, errors.Join(errs...)
}
