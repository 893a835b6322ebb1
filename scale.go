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

import (
	"math"

	"seehuhn.de/go/pdfview/destination"
	"seehuhn.de/go/pdfview/event"
	"seehuhn.de/go/pdfview/zoom"
)

// CurrentScale returns the numeric scale of the pages.
func (v *Viewer) CurrentScale() float64 {
	v.lock()
	defer v.unlock()
	return v.currentScale()
}

func (v *Viewer) currentScale() float64 {
	if v.scale == zoom.UnknownScale {
		return zoom.DefaultScale
	}
	return v.scale
}

// SetScale sets a numeric scale.  Scales close to the page-fit scale snap
// to page-fit.
func (v *Viewer) SetScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale < 0 {
		return ErrInvalidScale
	}

	v.lock()
	defer v.unlock()

	if len(v.views) == 0 {
		v.scale = scale
		if scale != 0 {
			v.scaleValue = zoom.Number(scale)
		} else {
			v.scaleValue = ""
		}
		return nil
	}
	if scale == 0 {
		return ErrInvalidScale
	}
	return v.setScale(zoom.Number(scale), false)
}

// CurrentScaleValue returns the symbolic scale value, either a preset or a
// number in string form.
func (v *Viewer) CurrentScaleValue() zoom.Value {
	v.lock()
	defer v.unlock()
	return v.scaleValue
}

// SetScaleValue sets the scale, given as a preset or a number in string
// form.  Without document, the value is stored and applied when the next
// document is bound.
func (v *Viewer) SetScaleValue(value zoom.Value) error {
	v.lock()
	defer v.unlock()

	if len(v.views) == 0 {
		if x, ok := value.Float(); ok {
			v.scale = x
		} else {
			v.scale = zoom.UnknownScale
		}
		v.scaleValue = value
		return nil
	}
	return v.setScale(value, false)
}

// setScale resolves a scale value and applies it to all pages.
func (v *Viewer) setScale(value zoom.Value, noScroll bool) error {
	if x, ok := value.Float(); ok && x > 0 {
		pageFit := v.pageFitScale()
		if zoom.SnapToPageFit(x, pageFit, v.isInPresentationMode()) {
			x = pageFit
			value = zoom.PageFit
		}
		v.setScaleUpdatePages(x, value, noScroll, false, true)
		return nil
	}

	if v.currentPageView() == nil {
		return nil
	}
	scale, err := v.fits().Resolve(value)
	if err != nil {
		v.log.Warn("unknown zoom value", "value", string(value))
		return err
	}
	v.setScaleUpdatePages(scale, value, noScroll, true, false)
	return nil
}

func (v *Viewer) setScaleUpdatePages(newScale float64, newValue zoom.Value, noScroll, preset, respectPosition bool) {
	v.scaleValue = newValue
	prev := v.current

	if zoom.SameScale(v.scale, newScale) {
		if preset {
			v.emit(event.ScaleChanging{
				Scale:              newScale,
				PreviousPageNumber: prev,
				PresetValue:        newValue,
			})
		}
		return
	}

	for _, view := range v.views {
		view.Update(newScale, v.rotation)
	}
	v.scale = newScale

	if !noScroll {
		pageNumber := v.current
		var dest destination.Destination
		if newValue == zoom.PageFit && !respectPosition {
			dest = &destination.FitB{}
		} else if v.loc != nil && !v.opt.IgnoreCurrentPositionOnZoom {
			pageNumber = v.loc.PageNumber
			dest = &destination.XYZ{
				Left: float64(v.loc.Left),
				Top:  float64(v.loc.Top),
				Zoom: destination.Unset,
			}
		}
		v.scrollPageIntoView(ScrollParams{
			PageNumber:          pageNumber,
			Dest:                dest,
			AllowNegativeOffset: true,
		})
	}

	ev := event.ScaleChanging{
		Scale:              newScale,
		PreviousPageNumber: prev,
	}
	if preset {
		ev.PresetValue = newValue
	}
	v.emit(ev)
	v.update()
}

// fits computes the fit scales of the current spread.
func (v *Viewer) fits() zoom.Fits {
	return zoom.Fits{
		Width:  v.pageWidthScale(),
		Height: v.pageHeightScale(),
	}
}

func (v *Viewer) pagePadding() (horizontal, vertical float64) {
	if v.isInPresentationMode() || v.opt.RemovePageBorders {
		return 0, 0
	}
	return zoom.ScrollbarPadding, zoom.VerticalPadding
}

// pageWidthScale returns the scale at which the current spread fills the
// width of the container.
func (v *Viewer) pageWidthScale() float64 {
	cur := v.currentPageView()
	if cur == nil {
		return zoom.DefaultScale
	}
	hPadding, _ := v.pagePadding()
	pageScale := cur.Scale()
	pageWidth := cur.Width()
	if right := v.currentRightSidePageView(); right != nil {
		hPadding *= 2
		pageScale = min(pageScale, right.Scale())
		pageWidth += right.Width()
	}
	return zoom.WidthScale(pageScale, pageWidth, v.width, hPadding)
}

// pageHeightScale returns the scale at which the current spread fills the
// height of the container.
func (v *Viewer) pageHeightScale() float64 {
	cur := v.currentPageView()
	if cur == nil {
		return zoom.DefaultScale
	}
	_, vPadding := v.pagePadding()
	pageScale := cur.Scale()
	pageHeight := cur.Height()
	if right := v.currentRightSidePageView(); right != nil {
		vPadding *= 2
		pageScale = min(pageScale, right.Scale())
		pageHeight = max(pageHeight, right.Height())
	}
	return zoom.HeightScale(pageScale, pageHeight, v.height, vPadding)
}

func (v *Viewer) pageFitScale() float64 {
	return v.fits().Page()
}

// CurrentPageFitScale returns the scale at which the current spread fits
// into the container.
func (v *Viewer) CurrentPageFitScale() float64 {
	v.lock()
	defer v.unlock()
	return v.pageFitScale()
}

// ScaleBiggerThanPageFit reports whether the current scale is a number
// larger than the page-fit scale.
func (v *Viewer) ScaleBiggerThanPageFit() bool {
	v.lock()
	defer v.unlock()
	x, ok := v.scaleValue.Float()
	return ok && x > v.pageFitScale()+zoom.PageFitTolerance
}

// PagesRotation returns the rotation applied to all pages, in degrees.
func (v *Viewer) PagesRotation() int {
	v.lock()
	defer v.unlock()
	return v.rotation
}

// SetPagesRotation rotates all pages.  The rotation must be a multiple of
// 90 degrees.
func (v *Viewer) SetPagesRotation(rotation int) error {
	if rotation%90 != 0 {
		return ErrInvalidRotation
	}

	v.lock()
	defer v.unlock()

	v.rotation = rotation
	if len(v.views) == 0 {
		return nil
	}
	for _, view := range v.views {
		view.Update(view.Scale(), rotation)
	}
	if v.scaleValue != "" {
		v.setScale(v.scaleValue, true)
	}
	v.update()
	return nil
}
