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

import "seehuhn.de/go/pdfview/page"

// PageSize is the size of a page in PDF units, after intrinsic rotation.
type PageSize struct {
	Width, Height float64
	Rotation      int
}

// PagesOverview returns the size of every page at scale 1, ignoring the
// rotation set by [Viewer.SetPagesRotation].  This is used for printing.
//
// If the PrintAutoRotate option is set, pages whose orientation differs
// from the first page are rotated by 90 degrees.
func (v *Viewer) PagesOverview() []PageSize {
	v.lock()
	defer v.unlock()

	res := make([]PageSize, len(v.views))
	var firstPortrait bool
	for i, view := range v.views {
		box := view.Viewport().ViewBox
		rotation := page.NormalizeRotation(view.TotalRotation() - view.Rotation())
		if p := view.Page(); p != nil {
			box = p.ViewBox()
			rotation = page.NormalizeRotation(p.Rotation())
		}
		vp := page.NewViewport(box, 1, rotation)
		size := PageSize{Width: vp.Width, Height: vp.Height, Rotation: rotation}

		portrait := size.Width <= size.Height
		if i == 0 {
			firstPortrait = portrait
		} else if v.opt.PrintAutoRotate && portrait != firstPortrait {
			size = PageSize{
				Width:    size.Height,
				Height:   size.Width,
				Rotation: (rotation + 90) % 360,
			}
		}
		res[i] = size
	}
	return res
}
