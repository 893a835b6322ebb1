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

package toc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfview/destination"
	"seehuhn.de/go/pdfview/document"
	"seehuhn.de/go/pdfview/linkservice"
)

func TestBuild(t *testing.T) {
	doc := document.NewMemory(10, document.A4)
	r := &linkservice.Simple{
		Doc: doc,
		Named: map[string]destination.Destination{
			"ch2": &destination.Fit{Page: document.Ref(14)},
		},
	}

	o := &Outline{}
	ch1 := o.AddItem("Chapter 1", &destination.Fit{Page: destination.PageNumber(1)})
	ch1.AddChild("Section 1.1", &destination.FitH{Page: destination.PageNumber(2), Top: 500})
	ch1.AddChild("Section 1.2", nil).AddChild("hidden", &destination.Fit{Page: destination.PageNumber(3)})
	o.AddItem("Chapter 2", &destination.Named{Name: "ch2"})
	broken := o.AddItem("Broken", &destination.Named{Name: "missing"})
	broken.AddChild("also hidden", &destination.Fit{Page: destination.PageNumber(6)})

	entries, err := Build(context.Background(), r, o)

	want := []Entry{
		{Level: 0, Label: "Chapter 1", Page: 1, Location: r.DestinationHash(ch1.Destination)},
		{Level: 1, Label: "Section 1.1", Page: 2, Location: r.DestinationHash(ch1.Children[0].Destination)},
		{Level: 0, Label: "Chapter 2", Page: 5, Location: "ch2"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}

	if !errors.Is(err, ErrNoDestination) {
		t.Errorf("missing destination not reported: %v", err)
	}
	if !errors.Is(err, linkservice.ErrUnknownName) {
		t.Errorf("unknown name not reported: %v", err)
	}
}

func TestBuildEmpty(t *testing.T) {
	entries, err := Build(context.Background(), &linkservice.Simple{}, nil)
	if entries != nil || err != nil {
		t.Errorf("got %v, %v", entries, err)
	}
}
