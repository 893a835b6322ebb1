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
	"slices"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// SetPageLabels sets the labels shown for the pages.  If labels is nil,
// the labels are cleared.  Otherwise, there must be exactly one label per
// page.  Labels are stored in Unicode normalization form C.
func (v *Viewer) SetPageLabels(labels []string) error {
	v.lock()
	defer v.unlock()

	if len(v.views) == 0 {
		return nil
	}

	var err error
	switch {
	case labels == nil:
		v.labels = nil
	case len(labels) != len(v.views):
		v.log.Error("page labels do not match the number of pages",
			"labels", len(labels), "pages", len(v.views))
		v.labels = nil
		err = ErrInvalidPageLabels
	default:
		v.labels = make([]string, len(labels))
		for i, label := range labels {
			v.labels[i] = norm.NFC.String(label)
		}
	}

	for i, view := range v.views {
		var label string
		if v.labels != nil {
			label = v.labels[i]
		}
		view.SetLabel(label)
	}
	return err
}

// pageLabel returns the label of a page, or the empty string.
func (v *Viewer) pageLabel(pageNumber int) string {
	if pageNumber < 1 || pageNumber > len(v.labels) {
		return ""
	}
	return v.labels[pageNumber-1]
}

// CurrentPageLabel returns the label of the current page.  The second
// return value is false if no labels are set.
func (v *Viewer) CurrentPageLabel() (string, bool) {
	v.lock()
	defer v.unlock()
	if v.labels == nil {
		return "", false
	}
	return v.pageLabel(v.currentPageNumber()), true
}

// SetCurrentPageLabel makes the page with the given label current.  If no
// page has this label, the label is interpreted as a page number.
func (v *Viewer) SetCurrentPageLabel(label string) error {
	v.lock()
	defer v.unlock()

	pageNumber := 0
	if i := slices.Index(v.labels, norm.NFC.String(label)); i >= 0 {
		pageNumber = i + 1
	} else if n, err := strconv.Atoi(label); err == nil {
		pageNumber = n
	} else {
		return ErrInvalidPageNumber
	}

	if len(v.views) == 0 {
		v.current = pageNumber
		return nil
	}
	v.setCurrentPageNumber(pageNumber, true)
	return nil
}
