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

// Package document defines the contract between the viewer and the
// source of page content.
//
// A [Document] is owned by the host application.  The viewer keeps a
// non-owning reference for the lifetime of one document session and only
// uses it to learn the page count and to fetch pages.  Parsing and decoding
// of the underlying file format happen behind this interface.
//
// [Memory] is a simple in-memory implementation, useful for tests and for
// driving the viewer without a real file.
package document

import (
	"context"
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"
)

// Document is an open, paginated document.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// Page returns the page with the given 1-based page number.
	// Page may block; implementations must honour cancellation of ctx.
	// Out of range page numbers give an error wrapping [ErrPageRange].
	Page(ctx context.Context, pageNumber int) (Page, error)
}

// Page is the content unit of a document.
type Page interface {
	// ViewBox is the visible region of the page in PDF units (1/72 inch),
	// before rotation.
	ViewBox() rect.Rect

	// Rotation is the intrinsic clockwise rotation of the page in degrees.
	// The value is a multiple of 90.
	Rotation() int

	// Ref is a stable reference to the page, used to map link targets
	// back to page numbers.
	Ref() Ref
}

// Ref identifies a page object within a document.
// The zero value means "no reference".
type Ref uint32

func (ref Ref) String() string {
	return fmt.Sprintf("%d 0 R", uint32(ref))
}

// ErrPageRange is returned by [Document.Page] when the page number is out of
// range.
var ErrPageRange = errors.New("page number out of range")

// PageRangeError records the requested page number and the page count.
type PageRangeError struct {
	PageNumber int
	NumPages   int
}

func (err *PageRangeError) Error() string {
	return fmt.Sprintf("page %d not in [1, %d]", err.PageNumber, err.NumPages)
}

// Unwrap makes [PageRangeError] match [ErrPageRange].
func (err *PageRangeError) Unwrap() error {
	return ErrPageRange
}
