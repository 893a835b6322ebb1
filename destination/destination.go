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

package destination

import (
	"fmt"
	"math"
)

// Destination represents a destination that specifies a particular view of
// a document.  Destinations can be explicit (specifying page and view
// parameters) or named (referencing a destination by name that must be
// looked up before use).
type Destination interface {
	DestinationType() Type
}

// Type identifies the type of destination.
type Type string

const (
	TypeXYZ   Type = "XYZ"
	TypeFit   Type = "Fit"
	TypeFitH  Type = "FitH"
	TypeFitV  Type = "FitV"
	TypeFitR  Type = "FitR"
	TypeFitB  Type = "FitB"
	TypeFitBH Type = "FitBH"
	TypeFitBV Type = "FitBV"
	TypeNamed Type = "Named"
)

// Target specifies the destination page.  This can be:
//   - document.Ref: a reference to a page object (most common case)
//   - PageNumber: a 1-based page number
//   - nil: the page is supplied separately by the caller
type Target any

// PageNumber is a 1-based page number used as a destination [Target].
type PageNumber int

// Unset is a sentinel value for coordinates that should retain their current value.
// Use math.IsNaN() to test for this value.
var Unset = math.NaN()

// XYZ displays the page with coordinates (Left, Top) positioned at the upper-left
// corner of the window and contents magnified by Zoom factor.
// Use Unset (or any NaN value) for parameters that should retain their current value.
// A Zoom of 0 has the same meaning as Unset.
type XYZ struct {
	Page            Target
	Left, Top, Zoom float64
}

func (d *XYZ) DestinationType() Type { return TypeXYZ }

// Fit displays the page with its contents magnified just enough
// to fit the entire page within the window both horizontally and vertically.
type Fit struct {
	Page Target
}

func (d *Fit) DestinationType() Type { return TypeFit }

// FitB displays the page magnified just enough to fit its bounding box
// within the window.
type FitB struct {
	Page Target
}

func (d *FitB) DestinationType() Type { return TypeFitB }

// FitH displays the page with the vertical coordinate Top positioned at the
// top edge of the window and the contents magnified just enough to fit the
// entire width of the page within the window.
// Use Unset for Top to retain the current vertical position.
type FitH struct {
	Page Target
	Top  float64
}

func (d *FitH) DestinationType() Type { return TypeFitH }

// FitBH is like FitH, but fits the width of the bounding box of the page.
type FitBH struct {
	Page Target
	Top  float64
}

func (d *FitBH) DestinationType() Type { return TypeFitBH }

// FitV displays the page with the horizontal coordinate Left positioned at
// the left edge of the window and the contents magnified just enough to fit
// the entire height of the page within the window.
type FitV struct {
	Page Target
	Left float64
}

func (d *FitV) DestinationType() Type { return TypeFitV }

// FitBV is like FitV, but fits the height of the bounding box of the page.
type FitBV struct {
	Page Target
	Left float64
}

func (d *FitBV) DestinationType() Type { return TypeFitBV }

// FitR displays the page with its contents magnified just enough to fit
// the given rectangle entirely within the window.
type FitR struct {
	Page                     Target
	Left, Bottom, Right, Top float64
}

func (d *FitR) DestinationType() Type { return TypeFitR }

// Named is a destination which is referred to by name.
type Named struct {
	Name string
}

func (d *Named) DestinationType() Type { return TypeNamed }

// PageOf returns the target page of an explicit destination.
// For named destinations, nil is returned.
func PageOf(d Destination) Target {
	switch d := d.(type) {
	case *XYZ:
		return d.Page
	case *Fit:
		return d.Page
	case *FitB:
		return d.Page
	case *FitH:
		return d.Page
	case *FitBH:
		return d.Page
	case *FitV:
		return d.Page
	case *FitBV:
		return d.Page
	case *FitR:
		return d.Page
	}
	return nil
}

// UnknownTypeError is returned when a destination has a fit-type which is
// not one of the known destination types.
type UnknownTypeError struct {
	Type Type
}

func (err *UnknownTypeError) Error() string {
	return fmt.Sprintf("%q is not a valid destination type", string(err.Type))
}
