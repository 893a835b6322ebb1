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

package layout

// Size is the size of a page on screen, in CSS pixels.
type Size struct {
	Width, Height float64
}

// Box is the position of a page within the scrollable content of the
// viewer, in CSS pixels.  The y-axis points down.
type Box struct {
	X, Y, W, H float64
}

// Right returns the x-coordinate of the right edge of the box.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge of the box.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Arrange computes the position of every page.
//
// sizes[i] is the on-screen size of page i+1.  Rows are stacked vertically
// and centred horizontally in a container of the given width, with spacing
// pixels between and around pages.  The returned extent is the size of the
// whole scrollable content.
func Arrange(sizes []Size, m Mode, containerWidth, spacing float64) ([]Box, Size) {
	boxes := make([]Box, len(sizes))
	var extent Size

	y := spacing
	for _, row := range m.Spreads(len(sizes)) {
		var rowWidth, rowHeight float64
		for i, p := range row {
			if i > 0 {
				rowWidth += spacing
			}
			sz := sizes[p-1]
			rowWidth += sz.Width
			rowHeight = max(rowHeight, sz.Height)
		}

		x := max(spacing, (containerWidth-rowWidth)/2)
		for _, p := range row {
			sz := sizes[p-1]
			boxes[p-1] = Box{X: x, Y: y, W: sz.Width, H: sz.Height}
			x += sz.Width + spacing
		}

		extent.Width = max(extent.Width, x)
		y += rowHeight + spacing
	}
	extent.Height = y

	return boxes, extent
}
