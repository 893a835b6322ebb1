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

package page

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// CSSUnits is the number of CSS pixels per PDF unit at scale 1.
const CSSUnits = 96.0 / 72.0

// Viewport describes how a page is mapped onto the screen.
//
// Page space uses PDF coordinates (origin in the lower-left corner, y
// pointing up).  Viewport space uses CSS pixels relative to the top-left
// corner of the page view, with y pointing down.
type Viewport struct {
	ViewBox  rect.Rect
	Scale    float64 // includes the CSS unit conversion
	Rotation int     // 0, 90, 180 or 270

	// Width and Height give the size of the rotated page in CSS pixels.
	Width, Height float64

	// Transform maps page space to viewport space.
	Transform matrix.Matrix
}

// NewViewport returns the viewport for the given view box, scale and
// rotation.  Scale is the total scale factor, i.e. the user scale multiplied
// by [CSSUnits].
func NewViewport(box rect.Rect, scale float64, rotation int) Viewport {
	rotation = NormalizeRotation(rotation)

	centerX := (box.URx + box.LLx) / 2
	centerY := (box.URy + box.LLy) / 2

	var a, b, c, d float64
	switch rotation {
	case 90:
		a, b, c, d = 0, 1, 1, 0
	case 180:
		a, b, c, d = -1, 0, 0, 1
	case 270:
		a, b, c, d = 0, -1, -1, 0
	default:
		a, b, c, d = 1, 0, 0, -1
	}

	boxW := math.Abs(box.URx - box.LLx)
	boxH := math.Abs(box.URy - box.LLy)

	var offsetX, offsetY, width, height float64
	if a == 0 {
		offsetX = math.Abs(centerY-box.LLy) * scale
		offsetY = math.Abs(centerX-box.LLx) * scale
		width = boxH * scale
		height = boxW * scale
	} else {
		offsetX = math.Abs(centerX-box.LLx) * scale
		offsetY = math.Abs(centerY-box.LLy) * scale
		width = boxW * scale
		height = boxH * scale
	}

	M := matrix.Matrix{
		a * scale, b * scale,
		c * scale, d * scale,
		offsetX - a*scale*centerX - c*scale*centerY,
		offsetY - b*scale*centerX - d*scale*centerY,
	}

	return Viewport{
		ViewBox:   box,
		Scale:     scale,
		Rotation:  rotation,
		Width:     width,
		Height:    height,
		Transform: M,
	}
}

// WithScale returns a copy of the viewport with a new scale and rotation,
// keeping the view box.
func (vp Viewport) WithScale(scale float64, rotation int) Viewport {
	return NewViewport(vp.ViewBox, scale, rotation)
}

// ToViewport converts a point from page space to viewport space.
func (vp Viewport) ToViewport(x, y float64) vec.Vec2 {
	px, py := vp.Transform.Apply(x, y)
	return vec.Vec2{X: px, Y: py}
}

// ToPage converts a point from viewport space to page space.
func (vp Viewport) ToPage(x, y float64) vec.Vec2 {
	M := vp.Transform
	det := M[0]*M[3] - M[1]*M[2]
	if det == 0 {
		return vec.Vec2{}
	}
	return vec.Vec2{
		X: (x*M[3] - y*M[2] + M[2]*M[5] - M[4]*M[3]) / det,
		Y: (-x*M[1] + y*M[0] + M[4]*M[1] - M[5]*M[0]) / det,
	}
}

// NormalizeRotation reduces a rotation angle to the range [0, 360).
func NormalizeRotation(rotation int) int {
	rotation %= 360
	if rotation < 0 {
		rotation += 360
	}
	return rotation
}
