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

// Package zoom implements scale values and the formulas used to resolve
// zoom presets against the size of the viewer.
//
// A scale value is either a number, stored in its string form (for example
// "1.5"), or one of the preset tokens [PageActual], [PageWidth],
// [PageHeight], [PageFit] and [Auto].  The viewer keeps the symbolic value
// next to the resolved numeric scale, so that presets can be re-resolved
// when the window size changes.
package zoom

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a scale value: either a number in string form or a preset token.
type Value string

// Preset scale values.
const (
	PageActual Value = "page-actual"
	PageWidth  Value = "page-width"
	PageHeight Value = "page-height"
	PageFit    Value = "page-fit"
	Auto       Value = "auto"
)

const (
	// UnknownScale is the numeric scale before a document is bound.
	UnknownScale = 0.0

	// DefaultScale is used as the numeric scale while it is unknown.
	DefaultScale = 1.0

	// DefaultValue is applied when a scale is needed but none is set.
	DefaultValue = Auto

	// ScrollbarPadding is the horizontal space reserved for scroll bars
	// and page borders, in CSS pixels.
	ScrollbarPadding = 40

	// VerticalPadding is the vertical space reserved for page borders,
	// in CSS pixels.
	VerticalPadding = 5

	// PageFitTolerance is the distance below which a numeric scale snaps
	// to the page-fit scale.
	PageFitTolerance = 0.005
)

// Number returns the scale value for a numeric scale.
func Number(scale float64) Value {
	return Value(strconv.FormatFloat(scale, 'f', -1, 64))
}

// Float returns the numeric scale of a numeric value.
// The second return value is false for presets and malformed values.
func (v Value) Float() (float64, bool) {
	x, err := strconv.ParseFloat(string(v), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// IsPreset reports whether v is one of the preset tokens.
func (v Value) IsPreset() bool {
	switch v {
	case PageActual, PageWidth, PageHeight, PageFit, Auto:
		return true
	}
	return false
}

// SameScale reports whether two scales differ only by floating point noise.
func SameScale(oldScale, newScale float64) bool {
	if newScale == oldScale {
		return true
	}
	return math.Abs(newScale-oldScale) < 1e-15
}

// UnknownValueError is returned when a scale value is neither a positive
// number nor a preset.
type UnknownValueError struct {
	Value Value
}

func (err *UnknownValueError) Error() string {
	return fmt.Sprintf("%q is an unknown zoom value", string(err.Value))
}

// WidthScale returns the scale at which a page of the given width,
// currently shown at pageScale, fills the container width minus padding.
func WidthScale(pageScale, pageWidth, containerWidth, padding float64) float64 {
	return pageScale * ((containerWidth - padding) / pageWidth)
}

// HeightScale is the vertical analogue of [WidthScale].
func HeightScale(pageScale, pageHeight, containerHeight, padding float64) float64 {
	return pageScale * ((containerHeight - padding) / pageHeight)
}

// Fits holds the fit scales of the current page on the current viewport.
type Fits struct {
	Width  float64
	Height float64
}

// Page returns the page-fit scale, the smaller of the two fit scales.
func (f Fits) Page() float64 {
	return min(f.Width, f.Height)
}

// Resolve converts a preset into a numeric scale.
func (f Fits) Resolve(v Value) (float64, error) {
	switch v {
	case PageActual:
		return 1, nil
	case PageWidth:
		return f.Width, nil
	case PageHeight:
		return f.Height, nil
	case Auto, PageFit:
		return f.Page(), nil
	default:
		return 0, &UnknownValueError{Value: v}
	}
}

// SnapToPageFit checks whether a numeric scale is close enough to the
// page-fit scale to be treated as page-fit.  If signed is true, any scale
// below the page-fit scale snaps as well.
func SnapToPageFit(scale, pageFit float64, signed bool) bool {
	delta := scale - pageFit
	if !signed {
		delta = math.Abs(delta)
	}
	return delta < PageFitTolerance
}
