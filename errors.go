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

import (
	"errors"
	"math"
)

var (
	// ErrInvalidPageNumber indicates a page number which is not an integer
	// or which is out of range.
	ErrInvalidPageNumber = errors.New("invalid page number")

	// ErrInvalidScale indicates a numeric scale which is not a positive,
	// finite number.
	ErrInvalidScale = errors.New("invalid numeric scale")

	// ErrInvalidRotation indicates a rotation which is not a multiple of
	// 90 degrees.
	ErrInvalidRotation = errors.New("invalid pages rotation angle")

	// ErrNoLinkService is returned when a named destination is used, but
	// no link service is configured.
	ErrNoLinkService = errors.New("no link service")

	// ErrInvalidPageLabels is returned when the number of page labels
	// does not match the number of pages.
	ErrInvalidPageLabels = errors.New("invalid page labels")

	// ErrNamedDestination is returned when a named destination is passed
	// to [Viewer.ScrollPageIntoView].  Use [Viewer.NavigateTo] instead.
	ErrNamedDestination = errors.New("named destination must be resolved first")

	// ErrNoDocument is returned by operations which need a document.
	ErrNoDocument = errors.New("no document")

	// ErrDocumentClosed is returned when the document was closed or
	// replaced while an operation was in progress.
	ErrDocumentClosed = errors.New("document closed")
)

// PageNumberFromFloat converts a page number received as a floating point
// number, for example from a JSON message.  Non-integer values give
// [ErrInvalidPageNumber].
func PageNumberFromFloat(x float64) (int, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) ||
		x > math.MaxInt32 || x < math.MinInt32 {
		return 0, ErrInvalidPageNumber
	}
	return int(x), nil
}
