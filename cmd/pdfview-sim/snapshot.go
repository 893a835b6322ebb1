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

package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"seehuhn.de/go/pdfview"
)

var (
	background = color.RGBA{0x40, 0x40, 0x48, 0xff}
	unrendered = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
)

// writeSnapshot writes the visible part of the container as a PNG image.
// Pages which are not rendered yet are shown in light grey.
func writeSnapshot(fname string, g pdfview.Geometry) error {
	w := max(int(g.Width), 1)
	h := max(int(g.Height), 1)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	for _, p := range g.Pages {
		dr := image.Rect(
			int(p.Box.X-g.ScrollLeft), int(p.Box.Y-g.ScrollTop),
			int(p.Box.Right()-g.ScrollLeft), int(p.Box.Bottom()-g.ScrollTop))
		if !dr.Overlaps(img.Bounds()) {
			continue
		}

		r, ok := p.Surface.(*raster)
		if !ok || r.img == nil {
			xdraw.Draw(img, dr, image.NewUniform(unrendered), image.Point{}, xdraw.Src)
			continue
		}
		xdraw.ApproxBiLinear.Scale(img, dr, r.img, r.img.Bounds(), xdraw.Src, nil)
	}

	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(out, img)
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
