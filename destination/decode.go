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
	"errors"
	"math"
)

var errNoName = errors.New("named destination without a name")

// Decode builds an explicit destination from a fit-type tag and the
// coordinate arguments which follow the tag in a destination array.
// Missing arguments and NaN values are treated as Unset.
//
// Malformed rectangles in FitR destinations are normalized, so that Left <=
// Right and Bottom <= Top.  An unknown tag gives an [*UnknownTypeError].
func Decode(tag Type, page Target, args ...float64) (Destination, error) {
	arg := func(i int) float64 {
		if i < len(args) && !math.IsInf(args[i], 0) {
			return args[i]
		}
		return Unset
	}

	switch tag {
	case TypeXYZ:
		zoom := arg(2)
		if zoom == 0 {
			zoom = Unset
		}
		return &XYZ{Page: page, Left: arg(0), Top: arg(1), Zoom: zoom}, nil
	case TypeFit:
		return &Fit{Page: page}, nil
	case TypeFitB:
		return &FitB{Page: page}, nil
	case TypeFitH:
		return &FitH{Page: page, Top: arg(0)}, nil
	case TypeFitBH:
		return &FitBH{Page: page, Top: arg(0)}, nil
	case TypeFitV:
		return &FitV{Page: page, Left: arg(0)}, nil
	case TypeFitBV:
		return &FitBV{Page: page, Left: arg(0)}, nil
	case TypeFitR:
		// nulls in FitR decode as 0
		coord := func(i int) float64 {
			x := arg(i)
			if math.IsNaN(x) {
				return 0
			}
			return x
		}
		left, bottom, right, top := coord(0), coord(1), coord(2), coord(3)
		return &FitR{
			Page:   page,
			Left:   min(left, right),
			Bottom: min(bottom, top),
			Right:  max(left, right),
			Top:    max(bottom, top),
		}, nil
	default:
		return nil, &UnknownTypeError{Type: tag}
	}
}

// Encode returns the fit-type tag and the coordinate arguments of an
// explicit destination.  Unset values are returned as NaN.
// Encode is the inverse of [Decode].
func Encode(d Destination) (Type, []float64, error) {
	switch d := d.(type) {
	case *XYZ:
		zoom := d.Zoom
		if zoom == 0 {
			zoom = Unset
		}
		return TypeXYZ, []float64{d.Left, d.Top, zoom}, nil
	case *Fit:
		return TypeFit, nil, nil
	case *FitB:
		return TypeFitB, nil, nil
	case *FitH:
		return TypeFitH, []float64{d.Top}, nil
	case *FitBH:
		return TypeFitBH, []float64{d.Top}, nil
	case *FitV:
		return TypeFitV, []float64{d.Left}, nil
	case *FitBV:
		return TypeFitBV, []float64{d.Left}, nil
	case *FitR:
		return TypeFitR, []float64{d.Left, d.Bottom, d.Right, d.Top}, nil
	case *Named:
		if d.Name == "" {
			return "", nil, errNoName
		}
		return TypeNamed, nil, nil
	case nil:
		return "", nil, errors.New("missing destination")
	default:
		return "", nil, &UnknownTypeError{Type: d.DestinationType()}
	}
}
