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

// Package linkservice resolves document destinations to page numbers.
package linkservice

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/pdfview/destination"
	"seehuhn.de/go/pdfview/document"
)

// Resolver resolves destinations for a document viewer.
type Resolver interface {
	// Resolve returns the explicit destination for d, together with its
	// 1-based page number.  Named destinations are looked up.
	Resolve(ctx context.Context, d destination.Destination) (destination.Destination, int, error)

	// DestinationHash returns a URL fragment which identifies d.
	DestinationHash(d destination.Destination) string

	// CachePageRef records the page number of a page reference.
	CachePageRef(pageNumber int, ref document.Ref)
}

var (
	// ErrUnknownName is returned when a named destination is not found.
	ErrUnknownName = errors.New("named destination not found")

	// ErrNoPage is returned when a destination has no target page.
	ErrNoPage = errors.New("destination has no target page")
)

// PageError is returned when the target page of a destination cannot be
// found in the document.
type PageError struct {
	Target destination.Target
	Err    error
}

func (err *PageError) Error() string {
	return fmt.Sprintf("invalid destination page %v: %v", err.Target, err.Err)
}

func (err *PageError) Unwrap() error {
	return err.Err
}

// Simple is a [Resolver] for a document with an in-memory table of named
// destinations.
//
// Page references which are not in the cache are located by fetching the
// pages of Doc in order.  Simple is safe for concurrent use.
type Simple struct {
	Doc   document.Document
	Named map[string]destination.Destination

	mu   sync.Mutex
	refs map[document.Ref]int
}

var _ Resolver = (*Simple)(nil)

// Lookup returns the named destination with the given name.
func (s *Simple) Lookup(name string) (destination.Destination, error) {
	if s == nil || s.Named == nil {
		return nil, ErrUnknownName
	}
	d, ok := s.Named[name]
	if !ok {
		return nil, ErrUnknownName
	}
	return d, nil
}

// All iterates over the named destinations in lexicographic order.
func (s *Simple) All() iter.Seq2[string, destination.Destination] {
	return func(yield func(string, destination.Destination) bool) {
		if s == nil || s.Named == nil {
			return
		}
		keys := maps.Keys(s.Named)
		slices.Sort(keys)
		for _, key := range keys {
			if !yield(key, s.Named[key]) {
				return
			}
		}
	}
}

// CachePageRef implements the [Resolver] interface.
func (s *Simple) CachePageRef(pageNumber int, ref document.Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == nil {
		s.refs = make(map[document.Ref]int)
	}
	s.refs[ref] = pageNumber
}

func (s *Simple) cachedPage(ref document.Ref) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.refs[ref]
	return n, ok
}

// Resolve implements the [Resolver] interface.
func (s *Simple) Resolve(ctx context.Context, d destination.Destination) (destination.Destination, int, error) {
	if named, ok := d.(*destination.Named); ok {
		var err error
		d, err = s.Lookup(named.Name)
		if err != nil {
			return nil, 0, fmt.Errorf("%q: %w", named.Name, err)
		}
		if _, ok := d.(*destination.Named); ok {
			return nil, 0, fmt.Errorf("%q: %w", named.Name, ErrUnknownName)
		}
	}
	if d == nil {
		return nil, 0, ErrNoPage
	}

	target := destination.PageOf(d)
	pageNumber, err := s.pageNumber(ctx, target)
	if err != nil {
		return nil, 0, &PageError{Target: target, Err: err}
	}
	return d, pageNumber, nil
}

func (s *Simple) pageNumber(ctx context.Context, target destination.Target) (int, error) {
	var n int
	switch target := target.(type) {
	case destination.PageNumber:
		n = int(target)
	case document.Ref:
		if cached, ok := s.cachedPage(target); ok {
			n = cached
			break
		}
		found, err := s.findRef(ctx, target)
		if err != nil {
			return 0, err
		}
		n = found
	default:
		return 0, ErrNoPage
	}

	if n < 1 || s.Doc != nil && n > s.Doc.NumPages() {
		numPages := 0
		if s.Doc != nil {
			numPages = s.Doc.NumPages()
		}
		return 0, &document.PageRangeError{PageNumber: n, NumPages: numPages}
	}
	return n, nil
}

func (s *Simple) findRef(ctx context.Context, ref document.Ref) (int, error) {
	if s.Doc == nil {
		return 0, ErrNoPage
	}
	for n := 1; n <= s.Doc.NumPages(); n++ {
		p, err := s.Doc.Page(ctx, n)
		if err != nil {
			return 0, err
		}
		s.CachePageRef(n, p.Ref())
		if p.Ref() == ref {
			return n, nil
		}
	}
	return 0, ErrNoPage
}
