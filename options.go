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
	"log/slog"
	"time"

	"seehuhn.de/go/pdfview/event"
	"seehuhn.de/go/pdfview/linkservice"
	"seehuhn.de/go/pdfview/page"
)

// Options allows to customize a [Viewer].
// Fields which are set to the zero value are replaced by the
// corresponding value from [DesktopOptions].
type Options struct {
	// DefaultCacheSize is the minimal number of rendered pages which are
	// kept in memory.  Values below 10 are raised to 10.
	DefaultCacheSize int

	// DefaultVerticalTolerance is the minimal distance, in CSS pixels,
	// below the visible area in which pages are rendered ahead of time.
	DefaultVerticalTolerance float64

	// DefaultAdjacentPagesToDraw is the number of page heights below the
	// visible area in which pages are rendered ahead of time.
	DefaultAdjacentPagesToDraw float64

	// RemovePageBorders disables the padding around pages when fitting
	// pages into the container.
	RemovePageBorders bool

	// DisableAutoFetch stops the viewer from fetching all pages in the
	// background once the first page has been rendered.
	DisableAutoFetch bool

	// IgnoreCurrentPositionOnZoom makes zoom changes keep the current page
	// at the top of the container, instead of the current position.
	IgnoreCurrentPositionOnZoom bool

	// PrintAutoRotate rotates pages in [Viewer.PagesOverview] whose
	// orientation differs from the first page.
	PrintAutoRotate bool

	// PrefetchConcurrency limits the number of concurrent background page
	// fetches.
	PrefetchConcurrency int

	// CleanupTimeout is the idle time after which unfinished renderings
	// are discarded.
	CleanupTimeout time.Duration

	// Spacing is the gap between pages, in CSS pixels.
	Spacing float64

	// Width and Height give the initial client size of the container, in
	// CSS pixels.
	Width, Height float64

	// Painter paints pages.  If this is nil, pages are marked as rendered
	// without painting.
	Painter page.Painter

	// LinkService resolves destinations.  It is required for
	// [Viewer.NavigateTo].
	LinkService linkservice.Resolver

	// Bus receives the events of the viewer.  If this is nil, a new bus is
	// allocated, see [Viewer.Bus].
	Bus *event.Bus

	// Logger receives diagnostics.  If this is nil, no output is produced.
	Logger *slog.Logger
}

// DesktopOptions are the default options, suitable for machines with
// plenty of memory.
var DesktopOptions = Options{
	DefaultCacheSize:           180,
	DefaultVerticalTolerance:   500,
	DefaultAdjacentPagesToDraw: 7,
	PrefetchConcurrency:        4,
	CleanupTimeout:             30 * time.Second,
	Spacing:                    10,
	Width:                      800,
	Height:                     600,
}

// LowMemoryOptions keep fewer rendered pages in memory and render less
// ahead of time.
var LowMemoryOptions = Options{
	DefaultCacheSize:           35,
	DefaultVerticalTolerance:   500,
	DefaultAdjacentPagesToDraw: 2,
	PrefetchConcurrency:        2,
	CleanupTimeout:             30 * time.Second,
	Spacing:                    10,
	Width:                      800,
	Height:                     600,
}

const minCacheSize = 10

// mergeOptions takes an options struct and a default values struct and
// returns a new options struct with all fields set to the values from the
// options struct, except for the fields which are set to the zero value in
// the options struct.  opt can be nil in which case the default values are
// returned.
func mergeOptions(opt, defaultValues *Options) *Options {
	res := *defaultValues
	if opt == nil {
		return &res
	}

	if opt.DefaultCacheSize != 0 {
		res.DefaultCacheSize = opt.DefaultCacheSize
	}
	if opt.DefaultVerticalTolerance != 0 {
		res.DefaultVerticalTolerance = opt.DefaultVerticalTolerance
	}
	if opt.DefaultAdjacentPagesToDraw != 0 {
		res.DefaultAdjacentPagesToDraw = opt.DefaultAdjacentPagesToDraw
	}
	res.RemovePageBorders = opt.RemovePageBorders
	res.DisableAutoFetch = opt.DisableAutoFetch
	res.IgnoreCurrentPositionOnZoom = opt.IgnoreCurrentPositionOnZoom
	res.PrintAutoRotate = opt.PrintAutoRotate
	if opt.PrefetchConcurrency > 0 {
		res.PrefetchConcurrency = opt.PrefetchConcurrency
	}
	if opt.CleanupTimeout > 0 {
		res.CleanupTimeout = opt.CleanupTimeout
	}
	if opt.Spacing != 0 {
		res.Spacing = opt.Spacing
	}
	if opt.Width > 0 {
		res.Width = opt.Width
	}
	if opt.Height > 0 {
		res.Height = opt.Height
	}
	res.Painter = opt.Painter
	res.LinkService = opt.LinkService
	res.Bus = opt.Bus
	res.Logger = opt.Logger

	res.DefaultCacheSize = max(res.DefaultCacheSize, minCacheSize)
	res.DefaultVerticalTolerance = max(res.DefaultVerticalTolerance, 0)
	res.DefaultAdjacentPagesToDraw = max(res.DefaultAdjacentPagesToDraw, 0)
	res.Spacing = max(res.Spacing, 0)
	return &res
}
