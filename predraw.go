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

import "time"

// DefaultPreDrawDelay is used by [Viewer.TemporarilyDisablePreDrawing]
// when no positive duration is given.
const DefaultPreDrawDelay = 10 * time.Second

// predrawState remembers the rendering tolerances while pre-drawing is
// disabled.
type predrawState struct {
	timer             *time.Timer
	gen               int
	verticalTolerance float64
	adjacentPages     float64
}

// TemporarilyDisablePreDrawing stops rendering of pages outside the
// visible area for the given duration.  Repeated calls extend the period;
// afterwards the tolerances in effect before the first call are restored.
func (v *Viewer) TemporarilyDisablePreDrawing(d time.Duration) {
	if d <= 0 {
		d = DefaultPreDrawDelay
	}

	v.lock()
	defer v.unlock()

	if v.predraw.timer == nil {
		v.predraw.verticalTolerance = v.verticalTolerance
		v.predraw.adjacentPages = v.adjacentPages
	} else {
		v.predraw.timer.Stop()
	}
	v.verticalTolerance = 0
	v.adjacentPages = 0

	v.predraw.gen++
	gen := v.predraw.gen
	v.predraw.timer = time.AfterFunc(d, func() {
		v.run(func() {
			if v.predraw.gen != gen {
				return
			}
			v.restorePredraw()
		})
	})
}

// PreDrawingDisabled reports whether pre-drawing is currently disabled.
func (v *Viewer) PreDrawingDisabled() bool {
	v.lock()
	defer v.unlock()
	return v.predraw.timer != nil
}

func (v *Viewer) restorePredraw() {
	v.predraw.timer = nil
	v.verticalTolerance = v.predraw.verticalTolerance
	v.adjacentPages = v.predraw.adjacentPages
}

// stopPredraw cancels a pending restore and restores the tolerances
// immediately.
func (v *Viewer) stopPredraw() {
	if v.predraw.timer == nil {
		return
	}
	v.predraw.timer.Stop()
	v.predraw.gen++
	v.restorePredraw()
}

// DefaultCacheSize returns the minimal number of rendered pages kept in
// memory.
func (v *Viewer) DefaultCacheSize() int {
	v.lock()
	defer v.unlock()
	return v.cacheSize
}

// SetDefaultCacheSize changes the minimal number of rendered pages kept in
// memory.  The new size takes effect at the next visibility pass.
func (v *Viewer) SetDefaultCacheSize(n int) {
	v.lock()
	defer v.unlock()
	v.cacheSize = max(n, minCacheSize)
}

// DefaultVerticalTolerance returns the minimal distance below the visible
// area in which pages are rendered ahead of time.
func (v *Viewer) DefaultVerticalTolerance() float64 {
	v.lock()
	defer v.unlock()
	return v.verticalTolerance
}

// SetDefaultVerticalTolerance changes the minimal distance below the
// visible area in which pages are rendered ahead of time.  While
// pre-drawing is disabled, the new value takes effect when pre-drawing
// resumes.
func (v *Viewer) SetDefaultVerticalTolerance(x float64) {
	v.lock()
	defer v.unlock()
	x = max(x, 0)
	if v.predraw.timer != nil {
		v.predraw.verticalTolerance = x
		return
	}
	v.verticalTolerance = x
}

// DefaultAdjacentPagesToDraw returns the number of page heights below the
// visible area in which pages are rendered ahead of time.
func (v *Viewer) DefaultAdjacentPagesToDraw() float64 {
	v.lock()
	defer v.unlock()
	return v.adjacentPages
}

// SetDefaultAdjacentPagesToDraw changes the number of page heights below
// the visible area in which pages are rendered ahead of time.  While
// pre-drawing is disabled, the new value takes effect when pre-drawing
// resumes.
func (v *Viewer) SetDefaultAdjacentPagesToDraw(x float64) {
	v.lock()
	defer v.unlock()
	x = max(x, 0)
	if v.predraw.timer != nil {
		v.predraw.adjacentPages = x
		return
	}
	v.adjacentPages = x
}
