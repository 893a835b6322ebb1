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
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"golang.org/x/image/vector"

	"seehuhn.de/go/pdfview/page"
)

// rasterSteps is the number of interruption points per page.
const rasterSteps = 4

// rasterPainter paints placeholder pages: a frame and some grey bars in
// place of text lines.  Painting is slowed down by delay, to simulate the
// cost of real page rendering.
type rasterPainter struct {
	delay time.Duration
}

// raster is a painted page.
type raster struct {
	img *image.RGBA
}

// Release implements the [page.Surface] interface.
func (r *raster) Release() {
	r.img = nil
}

var (
	paper = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ink   = color.RGBA{0x60, 0x60, 0x60, 0xff}
)

// Paint implements the [page.Painter] interface.
func (p *rasterPainter) Paint(ctx context.Context, job *page.Job) (page.Surface, error) {
	vp := job.Viewport
	w := int(math.Ceil(vp.Width))
	h := int(math.Ceil(vp.Height))
	if w <= 0 || h <= 0 {
		return &raster{}, nil
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	box := vp.ViewBox
	margin := 0.1 * min(box.Dx(), box.Dy())
	lineHeight := 14.0
	lines := int((box.Dy() - 2*margin) / lineHeight)

	for step := range rasterSteps {
		if err := job.Continue(ctx); err != nil {
			return nil, err
		}
		if p.delay > 0 {
			t := time.NewTimer(p.delay / rasterSteps)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			}
		}

		for i := step; i < lines; i += rasterSteps {
			top := box.URy - margin - float64(i)*lineHeight
			right := box.URx - margin
			if i%7 == 6 {
				// last line of a paragraph
				right = box.LLx + margin + 0.6*(box.Dx()-2*margin)
			}
			quad(z, vp, box.LLx+margin, top-9, right, top)
		}
	}

	z.Draw(img, img.Bounds(), image.NewUniform(ink), image.Point{})
	return &raster{img: img}, nil
}

// quad adds the page space rectangle [x0,x1]x[y0,y1] to the rasterizer.
func quad(z *vector.Rasterizer, vp page.Viewport, x0, y0, x1, y1 float64) {
	corners := [4][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	for i, c := range corners {
		q := vp.ToViewport(c[0], c[1])
		if i == 0 {
			z.MoveTo(float32(q.X), float32(q.Y))
		} else {
			z.LineTo(float32(q.X), float32(q.Y))
		}
	}
	z.ClosePath()
}
