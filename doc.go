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

// Package pdfview manages the viewport of a paginated document viewer.
//
// A [Viewer] keeps track of the pages of one document at a time.  Driven
// by scroll and resize notifications of the host, it decides which pages
// are visible, which page is rendered next, which rendered pages are
// discarded, which zoom is used, and how a destination inside the document
// maps to a scroll position.
//
// The Viewer does not parse documents and does not paint pages.  Page
// content is obtained from a [document.Document], pages are painted by a
// [page.Painter], and the host is informed about changes through an
// [event.Bus].
//
// # Concurrency
//
// All methods of a Viewer are safe for concurrent use.  The state of the
// viewer is protected by a single mutex; background work like page fetches,
// painting and timers re-enters through the same mutex.  Events are
// dispatched after the mutex has been released, so that listeners can call
// back into the viewer.
package pdfview
