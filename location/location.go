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

// Package location describes the reading position in a document, and
// converts it to and from URL fragments of the form
//
//	page=<n>&zoom=<scale>,<left>,<top>
//
// Scale is either a percentage, or a zoom token like "page-fit".  Left and
// top are given in PDF units of the page.
package location

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"seehuhn.de/go/pdfview/zoom"
)

// Location is a snapshot of the reading position.
type Location struct {
	PageNumber int
	Scale      string
	Left, Top  int
	Fragment   string
}

// Converter maps viewport coordinates of a page view to page coordinates.
type Converter interface {
	PagePoint(x, y float64) (float64, float64)
}

// Compute returns the location for the given first visible page.
//
// The page is located at (pageX, pageY) in the scrolled content, and
// (scrollLeft, scrollTop) is the scroll position of the container.  The
// zoom is reported as a percentage if value is the numeric form of scale,
// and as the zoom token otherwise.
func Compute(pageNumber int, view Converter, pageX, pageY, scrollLeft, scrollTop, scale float64, value zoom.Value) Location {
	normalized := NormalizeScale(scale, value)

	x, y := view.PagePoint(scrollLeft-pageX, scrollTop-pageY)
	left := roundJS(x)
	top := roundJS(y)

	return Location{
		PageNumber: pageNumber,
		Scale:      normalized,
		Left:       left,
		Top:        top,
		Fragment:   fmt.Sprintf("page=%d&zoom=%s,%d,%d", pageNumber, normalized, left, top),
	}
}

// NormalizeScale returns the zoom part of a location: a rounded percentage
// if value is the numeric form of scale, and the zoom token otherwise.
func NormalizeScale(scale float64, value zoom.Value) string {
	if x, ok := value.Float(); ok && x == scale {
		pct := math.Round(scale*10000) / 100
		return strconv.FormatFloat(pct, 'f', -1, 64)
	}
	return string(value)
}

// roundJS rounds half-way cases towards positive infinity.
func roundJS(x float64) int {
	return int(math.Floor(x + 0.5))
}

// ErrMalformed is returned by [ParseFragment] for fragments which cannot be
// parsed.
var ErrMalformed = errors.New("malformed location fragment")

// Target is a parsed location fragment.
type Target struct {
	PageNumber int // 0 if no page is given

	// Zoom is a zoom token (or the empty string), ZoomPercent is used for
	// numeric zoom values and is NaN otherwise.
	Zoom        zoom.Value
	ZoomPercent float64

	// Args holds the coordinates which follow the zoom value.  Missing
	// values are NaN.
	Args []float64
}

// ParseFragment parses a fragment of the form produced by [Compute].  A
// leading '#' is ignored.  Coordinates which are given as "null" or left
// empty are returned as NaN.
func ParseFragment(fragment string) (*Target, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	res := &Target{ZoomPercent: math.NaN()}

	if p := values.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: invalid page %q", ErrMalformed, p)
		}
		res.PageNumber = n
	}

	if z := values.Get("zoom"); z != "" {
		parts := strings.Split(z, ",")
		if pct, err := strconv.ParseFloat(parts[0], 64); err == nil {
			if pct <= 0 || math.IsInf(pct, 0) || math.IsNaN(pct) {
				return nil, fmt.Errorf("%w: invalid zoom %q", ErrMalformed, parts[0])
			}
			res.ZoomPercent = pct
		} else {
			res.Zoom = zoom.Value(parts[0])
		}
		for _, arg := range parts[1:] {
			res.Args = append(res.Args, parseCoord(arg))
		}
	}

	if res.PageNumber == 0 && res.Zoom == "" && math.IsNaN(res.ZoomPercent) {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, fragment)
	}
	return res, nil
}

func parseCoord(s string) float64 {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(x, 0) {
		return math.NaN()
	}
	return x
}
