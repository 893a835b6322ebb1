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
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/pdfview/destination"
	"seehuhn.de/go/pdfview/linkservice"
	"seehuhn.de/go/pdfview/location"
	"seehuhn.de/go/pdfview/page"
	"seehuhn.de/go/pdfview/zoom"
)

// ScrollParams describes a scroll target for [Viewer.ScrollPageIntoView].
type ScrollParams struct {
	PageNumber int

	// Dest is the position within the page.  If Dest is nil and Tag is
	// empty, the top of the page is scrolled into view.
	Dest destination.Destination

	// Tag and Args give the destination in array form.  They are used
	// only if Dest is nil.
	Tag  destination.Type
	Args []float64

	// AllowNegativeOffset allows to scroll to positions left of or above
	// the page.
	AllowNegativeOffset bool
}

// ScrollPageIntoView scrolls the given position of a page into view.
func (v *Viewer) ScrollPageIntoView(params ScrollParams) error {
	v.lock()
	defer v.unlock()
	if len(v.views) == 0 {
		return nil
	}
	return v.scrollPageIntoView(params)
}

func (v *Viewer) scrollPageIntoView(params ScrollParams) error {
	if len(v.views) == 0 {
		return nil
	}

	dest := params.Dest
	if dest == nil && params.Tag != "" {
		d, err := destination.Decode(params.Tag, nil, params.Args...)
		if err != nil {
			v.log.Warn("invalid destination", "error", err)
			return err
		}
		dest = d
	}
	if dest == nil {
		v.setCurrentPageNumber(params.PageNumber, true)
		return nil
	}

	pageNumber := params.PageNumber
	if pageNumber < 1 || pageNumber > len(v.views) {
		v.log.Warn("invalid page number", "page", pageNumber)
		return ErrInvalidPageNumber
	}
	view := v.views[pageNumber-1]
	pageWidth, pageHeight := view.PageSize()

	var x, y, width, height float64
	var scale float64
	var scaleValue zoom.Value
	switch d := dest.(type) {
	case *destination.XYZ:
		x, y = d.Left, d.Top
		if math.IsNaN(x) {
			x = 0
		}
		if math.IsNaN(y) {
			y = pageHeight
		}
		if !math.IsNaN(d.Zoom) && d.Zoom > 0 {
			scale = d.Zoom
		}
	case *destination.Fit, *destination.FitB:
		scaleValue = zoom.PageFit
	case *destination.FitH, *destination.FitBH:
		if fh, ok := d.(*destination.FitH); ok {
			y = fh.Top
		} else {
			y = d.(*destination.FitBH).Top
		}
		scaleValue = zoom.PageWidth
		if math.IsNaN(y) {
			y = 0
			if v.loc != nil {
				x = float64(v.loc.Left)
				y = float64(v.loc.Top)
			}
		}
	case *destination.FitV, *destination.FitBV:
		if fv, ok := d.(*destination.FitV); ok {
			x = fv.Left
		} else {
			x = d.(*destination.FitBV).Left
		}
		if math.IsNaN(x) {
			x = 0
		}
		width = pageWidth
		height = pageHeight
		scaleValue = zoom.PageHeight
	case *destination.FitR:
		x = d.Left
		y = d.Bottom
		width = d.Right - d.Left
		height = d.Top - d.Bottom
		var hPadding, vPadding float64
		if !v.opt.RemovePageBorders {
			hPadding, vPadding = zoom.ScrollbarPadding, zoom.VerticalPadding
		}
		widthScale := (v.width - hPadding) / width / page.CSSUnits
		heightScale := (v.height - vPadding) / height / page.CSSUnits
		scale = min(math.Abs(widthScale), math.Abs(heightScale))
		if math.IsInf(scale, 0) || math.IsNaN(scale) {
			scale = 0
		}
	case *destination.Named:
		v.log.Warn("unresolved named destination", "name", d.Name)
		return ErrNamedDestination
	default:
		err := &destination.UnknownTypeError{Type: dest.DestinationType()}
		v.log.Warn("invalid destination", "error", err)
		return err
	}

	switch {
	case scaleValue != "":
		v.setScale(scaleValue, false)
	case scale > 0 && scale != v.scale:
		v.setScale(zoom.Number(scale), false)
	case v.scale == zoom.UnknownScale:
		v.setScale(zoom.DefaultValue, false)
	}

	if scaleValue == zoom.PageFit {
		v.scrollIntoView(view, nil)
		return nil
	}

	x1, y1 := view.ViewportPoint(x, y)
	x2, y2 := view.ViewportPoint(x+width, y+height)
	left := min(x1, x2)
	top := min(y1, y2)
	if !params.AllowNegativeOffset {
		left = max(left, 0)
		top = max(top, 0)
	}
	v.scrollIntoView(view, &spot{left: left, top: top})
	return nil
}

// NavigateTo resolves a destination using the link service and scrolls
// the target into view.  NavigateTo blocks while the destination is
// resolved; the viewer remains usable in the meantime.
func (v *Viewer) NavigateTo(ctx context.Context, dest destination.Destination) error {
	v.lock()
	links := v.opt.LinkService
	s := v.sess
	v.unlock()

	if links == nil {
		v.log.Warn("cannot navigate without link service")
		return ErrNoLinkService
	}
	if s == nil {
		return ErrNoDocument
	}

	explicit, pageNumber, err := links.Resolve(ctx, dest)
	if err != nil {
		v.log.Warn("cannot resolve destination", "error", err)
		return err
	}

	v.lock()
	defer v.unlock()
	if v.sess != s {
		return ErrDocumentClosed
	}
	return v.scrollPageIntoView(ScrollParams{
		PageNumber: pageNumber,
		Dest:       explicit,
	})
}

// SetFragment navigates to a location given as a URL fragment.
//
// The fragment is either a list of parameters as produced for
// [location.Location.Fragment], a page number, or a destination hash as
// returned by the DestinationHash method of the link service.
func (v *Viewer) SetFragment(ctx context.Context, fragment string) error {
	fragment = strings.TrimPrefix(fragment, "#")

	if !strings.Contains(fragment, "=") {
		if n, err := strconv.Atoi(fragment); err == nil {
			return v.SetCurrentPageNumber(n)
		}
		dest, err := linkservice.ParseDestinationHash(fragment)
		if err != nil {
			v.log.Warn("invalid fragment", "fragment", fragment, "error", err)
			return err
		}
		return v.NavigateTo(ctx, dest)
	}

	target, err := location.ParseFragment(fragment)
	if err != nil {
		v.log.Warn("invalid fragment", "fragment", fragment, "error", err)
		return err
	}

	v.lock()
	defer v.unlock()
	if len(v.views) == 0 {
		return ErrNoDocument
	}

	if target.Zoom == "" && math.IsNaN(target.ZoomPercent) {
		v.setCurrentPageNumber(target.PageNumber, true)
		return nil
	}

	arg := func(i int) float64 {
		if i >= len(target.Args) || math.IsNaN(target.Args[i]) {
			return destination.Unset
		}
		return math.Trunc(target.Args[i])
	}

	params := ScrollParams{
		PageNumber:          target.PageNumber,
		AllowNegativeOffset: true,
	}
	if params.PageNumber == 0 {
		params.PageNumber = v.currentPageNumber()
	}

	var scaleErr error
	if strings.Contains(string(target.Zoom), "Fit") {
		tag := destination.Type(target.Zoom)
		switch tag {
		case destination.TypeFit, destination.TypeFitB:
			params.Dest, err = destination.Decode(tag, nil)
		case destination.TypeFitH, destination.TypeFitBH,
			destination.TypeFitV, destination.TypeFitBV:
			params.Dest, err = destination.Decode(tag, nil, arg(0))
		case destination.TypeFitR:
			if len(target.Args) != 4 {
				err = errFitRArgs
			} else {
				params.Dest, err = destination.Decode(tag, nil, arg(0), arg(1), arg(2), arg(3))
			}
		default:
			err = &destination.UnknownTypeError{Type: tag}
		}
		if err != nil {
			v.log.Warn("invalid fragment", "fragment", fragment, "error", err)
			return err
		}
	} else {
		zoomFactor := destination.Unset
		if !math.IsNaN(target.ZoomPercent) {
			zoomFactor = target.ZoomPercent / 100
		} else {
			scaleErr = v.setScale(target.Zoom, false)
		}
		params.Dest = &destination.XYZ{
			Left: arg(0),
			Top:  arg(1),
			Zoom: zoomFactor,
		}
	}

	if err := v.scrollPageIntoView(params); err != nil {
		return err
	}
	return scaleErr
}

var errFitRArgs = errors.New("FitR needs four coordinates")
