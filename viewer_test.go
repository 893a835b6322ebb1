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
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/buffer"
	"seehuhn.de/go/pdfview/destination"
	"seehuhn.de/go/pdfview/document"
	"seehuhn.de/go/pdfview/event"
	"seehuhn.de/go/pdfview/linkservice"
	"seehuhn.de/go/pdfview/page"
	"seehuhn.de/go/pdfview/zoom"
)

func TestBind(t *testing.T) {
	f := newFixture(t, 10, nil)
	v := f.v

	if s := v.State(); s != Ready {
		t.Errorf("state: got %s, want %s", s, Ready)
	}
	if n := v.NumPages(); n != 10 {
		t.Errorf("NumPages: got %d, want 10", n)
	}
	inits := f.rec.byName(event.NamePagesInit)
	if len(inits) != 1 || inits[0].(event.PagesInit).PagesCount != 10 {
		t.Errorf("pagesinit events: %v", inits)
	}
	if got := v.CurrentScaleValue(); got != zoom.Auto {
		t.Errorf("scale value: got %q, want %q", got, zoom.Auto)
	}
	if got := v.CurrentScale(); !near(got, autoScale) {
		t.Errorf("scale: got %g, want %g", got, autoScale)
	}
	if got := v.CurrentPageNumber(); got != 1 {
		t.Errorf("current page: got %d, want 1", got)
	}
	if _, ok := v.Location(); !ok {
		t.Error("location not set")
	}
	if len(f.rec.byName(event.NameUpdateViewArea)) == 0 {
		t.Error("no updateviewarea event")
	}
}

func TestNoDocument(t *testing.T) {
	v := New(nil)
	defer v.Close()

	if s := v.State(); s != NoDocument {
		t.Errorf("state: got %s, want %s", s, NoDocument)
	}
	if got := v.CurrentScale(); got != zoom.DefaultScale {
		t.Errorf("scale: got %g, want %g", got, zoom.DefaultScale)
	}
	if v.FirstPageRendered() != nil || v.PagesLoaded() != nil {
		t.Error("gates without document")
	}
	if err := v.SetCurrentPageNumber(7); err != nil {
		t.Fatal(err)
	}
	if got := v.CurrentPageNumber(); got != 7 {
		t.Errorf("current page: got %d, want 7", got)
	}
	if err := v.SetPageLabels([]string{"a"}); err != nil {
		t.Error(err)
	}
	if err := v.ScrollPageIntoView(ScrollParams{PageNumber: 1}); err != nil {
		t.Error(err)
	}
}

func TestFirstPageError(t *testing.T) {
	errBoom := errors.New("boom")
	doc := document.NewMemory(3, testBox)
	doc.Delay = func(_ context.Context, pageNumber int) error {
		if pageNumber == 1 {
			return errBoom
		}
		return nil
	}

	v := New(&Options{Logger: slog.New(&logCapture{})})
	defer v.Close()
	err := v.SetDocument(context.Background(), doc)
	if !errors.Is(err, errBoom) {
		t.Errorf("got error %v, want %v", err, errBoom)
	}
	if s := v.State(); s != NoDocument {
		t.Errorf("state: got %s, want %s", s, NoDocument)
	}
}

func TestPageFetchError(t *testing.T) {
	errBoom := errors.New("boom")
	doc := document.NewMemory(5, testBox)
	doc.Delay = func(_ context.Context, pageNumber int) error {
		if pageNumber == 2 {
			return errBoom
		}
		return nil
	}
	f := newFixtureDoc(t, doc, nil)

	for _, pageNumber := range []int{1, 3, 4, 5} {
		waitFor(t, func() bool {
			info, _ := f.v.PageView(pageNumber)
			return info.State == page.Finished && info.Loaded
		})
	}
	info, _ := f.v.PageView(2)
	if info.Loaded || info.State != page.Finished {
		t.Errorf("page 2: loaded %t, state %s", info.Loaded, info.State)
	}

	waitChan(t, f.v.PagesLoaded())
	if f.logs.count(slog.LevelError) == 0 {
		t.Error("fetch error was not logged")
	}
}

func TestReplaceDocument(t *testing.T) {
	f := newFixture(t, 3, nil)
	v := f.v

	if err := v.SetPagesRotation(90); err != nil {
		t.Fatal(err)
	}
	err := v.SetDocument(context.Background(), document.NewMemory(5, testBox))
	if err != nil {
		t.Fatal(err)
	}
	if n := v.NumPages(); n != 5 {
		t.Errorf("NumPages: got %d, want 5", n)
	}
	if r := v.PagesRotation(); r != 0 {
		t.Errorf("rotation not reset: %d", r)
	}
	if n := len(f.rec.byName(event.NamePagesInit)); n != 2 {
		t.Errorf("got %d pagesinit events, want 2", n)
	}

	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if s := v.State(); s != NoDocument {
		t.Errorf("state: got %s, want %s", s, NoDocument)
	}
}

func TestPagesLoaded(t *testing.T) {
	f := newFixture(t, 5, nil)

	waitChan(t, f.v.FirstPageRendered())
	waitChan(t, f.v.PagesLoaded())
	waitFor(t, func() bool {
		return len(f.rec.byName(event.NamePagesLoaded)) == 1
	})

	ev := f.rec.byName(event.NamePagesLoaded)[0].(event.PagesLoaded)
	if ev.PagesCount != 5 {
		t.Errorf("PagesCount: got %d, want 5", ev.PagesCount)
	}
	for i := 1; i <= 5; i++ {
		if n := f.doc.Fetches(i); n != 1 {
			t.Errorf("page %d fetched %d times", i, n)
		}
		info, _ := f.v.PageView(i)
		if !info.Loaded {
			t.Errorf("page %d not loaded", i)
		}
	}
}

func TestDisableAutoFetch(t *testing.T) {
	f := newFixture(t, 5, &Options{DisableAutoFetch: true})
	waitChan(t, f.v.PagesLoaded())
}

func TestPageWidthScale(t *testing.T) {
	f := newFixture(t, 3, nil)
	if err := f.v.SetScaleValue(zoom.PageWidth); err != nil {
		t.Fatal(err)
	}
	// (840 - 40) / 400
	if got := f.v.CurrentScale(); !near(got, 2) {
		t.Errorf("page-width scale: got %g, want 2", got)
	}

	f = newFixture(t, 3, &Options{RemovePageBorders: true})
	if err := f.v.SetScaleValue(zoom.PageWidth); err != nil {
		t.Fatal(err)
	}
	if got := f.v.CurrentScale(); !near(got, 2.1) {
		t.Errorf("page-width scale without borders: got %g, want 2.1", got)
	}
}

func TestScaleBeforeDocument(t *testing.T) {
	v := New(&Options{Width: 840, Height: 600})
	defer v.Close()

	if err := v.SetScaleValue(zoom.PageWidth); err != nil {
		t.Fatal(err)
	}
	if got := v.CurrentScale(); got != zoom.DefaultScale {
		t.Errorf("scale: got %g, want %g", got, zoom.DefaultScale)
	}

	err := v.SetDocument(context.Background(), document.NewMemory(3, testBox))
	if err != nil {
		t.Fatal(err)
	}
	if got := v.CurrentScale(); !near(got, 2) {
		t.Errorf("scale: got %g, want 2", got)
	}
	if got := v.CurrentScaleValue(); got != zoom.PageWidth {
		t.Errorf("scale value: got %q, want %q", got, zoom.PageWidth)
	}
}

func TestScaleBeforeDocumentPageOutOfRange(t *testing.T) {
	v := New(&Options{Width: 840, Height: 600})
	defer v.Close()

	if err := v.SetScaleValue(zoom.PageWidth); err != nil {
		t.Fatal(err)
	}
	if err := v.SetCurrentPageNumber(99); err != nil {
		t.Fatal(err)
	}

	err := v.SetDocument(context.Background(), document.NewMemory(3, testBox))
	if err != nil {
		t.Fatal(err)
	}
	if got := v.CurrentScale(); !near(got, 2) {
		t.Errorf("scale: got %g, want 2", got)
	}
	if got := v.CurrentPageNumber(); got != 3 {
		t.Errorf("current page: got %d, want 3", got)
	}
}

func TestSameScale(t *testing.T) {
	f := newFixture(t, 3, nil)
	waitChan(t, f.v.FirstPageRendered())

	before := len(f.rec.byName(event.NameScaleChanging))
	if err := f.v.SetScale(f.v.CurrentScale()); err != nil {
		t.Fatal(err)
	}
	if n := len(f.rec.byName(event.NameScaleChanging)); n != before {
		t.Errorf("numeric same scale: got %d scalechanging events, want %d", n, before)
	}
	if info, _ := f.v.PageView(1); info.State != page.Finished {
		t.Errorf("page 1 was reset, state %s", info.State)
	}

	if err := f.v.SetScaleValue(zoom.PageFit); err != nil {
		t.Fatal(err)
	}
	events := f.rec.byName(event.NameScaleChanging)
	if len(events) != before+1 {
		t.Fatalf("preset same scale: got %d scalechanging events, want %d", len(events), before+1)
	}
	ev := events[len(events)-1].(event.ScaleChanging)
	if ev.PresetValue != zoom.PageFit || !near(ev.Scale, autoScale) {
		t.Errorf("unexpected event %v", ev)
	}
	if info, _ := f.v.PageView(1); info.State != page.Finished {
		t.Errorf("page 1 was reset, state %s", info.State)
	}
}

func TestNearlySameScale(t *testing.T) {
	f := newFixture(t, 3, nil)
	if err := f.v.SetScale(1.5); err != nil {
		t.Fatal(err)
	}
	cur := f.v.CurrentPageNumber()
	waitFor(t, func() bool {
		info, _ := f.v.PageView(cur)
		return info.State == page.Finished
	})

	events := len(f.rec.byName(event.NameScaleChanging))
	scale := 1.5 + 5e-16
	if scale == 1.5 {
		t.Fatal("test scale is not distinct")
	}
	if err := f.v.SetScale(scale); err != nil {
		t.Fatal(err)
	}
	if info, _ := f.v.PageView(cur); info.State != page.Finished {
		t.Errorf("page %d was reset, state %s", cur, info.State)
	}
	if got := f.v.CurrentScale(); got != 1.5 {
		t.Errorf("scale: got %g, want 1.5", got)
	}
	if n := len(f.rec.byName(event.NameScaleChanging)); n != events {
		t.Errorf("got %d scalechanging events, want %d", n, events)
	}
}

func TestScaleErrors(t *testing.T) {
	f := newFixture(t, 3, nil)

	if err := f.v.SetScale(math.NaN()); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("NaN scale: got %v", err)
	}

	warnings := f.logs.count(slog.LevelWarn)
	err := f.v.SetScaleValue("foo")
	var valueErr *zoom.UnknownValueError
	if !errors.As(err, &valueErr) {
		t.Errorf("unknown value: got %v", err)
	}
	if n := f.logs.count(slog.LevelWarn) - warnings; n != 1 {
		t.Errorf("got %d warnings, want 1", n)
	}
	if got := f.v.CurrentScale(); !near(got, autoScale) {
		t.Errorf("scale changed to %g", got)
	}
}

func TestSnapToPageFit(t *testing.T) {
	f := newFixture(t, 3, nil)
	if err := f.v.SetScale(2); err != nil {
		t.Fatal(err)
	}
	if err := f.v.SetScale(autoScale + 0.001); err != nil {
		t.Fatal(err)
	}
	if got := f.v.CurrentScaleValue(); got != zoom.PageFit {
		t.Errorf("scale value: got %q, want %q", got, zoom.PageFit)
	}
	if !near(f.v.CurrentScale(), autoScale) {
		t.Errorf("scale: got %g, want %g", f.v.CurrentScale(), autoScale)
	}
	if f.v.ScaleBiggerThanPageFit() {
		t.Error("page-fit is bigger than page-fit")
	}

	if err := f.v.SetScale(1.5); err != nil {
		t.Fatal(err)
	}
	if !f.v.ScaleBiggerThanPageFit() {
		t.Error("1.5 is not bigger than page-fit")
	}
}

func TestResize(t *testing.T) {
	f := newFixture(t, 3, nil)

	// height fit: 1200 / 533.33
	f.v.Resize(840, 1205)
	if got := f.v.CurrentScale(); !near(got, 2) {
		t.Errorf("auto scale after resize: got %g, want 2", got)
	}

	if err := f.v.SetScale(1.3); err != nil {
		t.Fatal(err)
	}
	f.v.Resize(840, 600)
	if got := f.v.CurrentScale(); !near(got, 1.3) {
		t.Errorf("numeric scale after resize: got %g, want 1.3", got)
	}
}

func TestRotation(t *testing.T) {
	f := newFixture(t, 3, nil)

	if err := f.v.SetPagesRotation(45); !errors.Is(err, ErrInvalidRotation) {
		t.Errorf("rotation 45: got %v", err)
	}
	if err := f.v.SetPagesRotation(90); err != nil {
		t.Fatal(err)
	}
	if r := f.v.PagesRotation(); r != 90 {
		t.Errorf("rotation: got %d, want 90", r)
	}
	info, _ := f.v.PageView(2)
	if info.Rotation != 90 {
		t.Errorf("page rotation: got %d, want 90", info.Rotation)
	}

	// the rotated page is 595 wide and 446.25 high at the old scale
	if got := f.v.CurrentScale(); !near(got, 1.4875) {
		t.Errorf("scale: got %g, want 1.4875", got)
	}
}

func TestScrollXYZUnset(t *testing.T) {
	f := newFixture(t, 10, nil)

	err := f.v.ScrollPageIntoView(ScrollParams{
		PageNumber: 3,
		Dest: &destination.XYZ{
			Left: destination.Unset,
			Top:  destination.Unset,
			Zoom: destination.Unset,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	g := f.v.Geometry()
	if !near(g.ScrollTop, g.Pages[2].Box.Y) {
		t.Errorf("scroll top: got %g, want %g", g.ScrollTop, g.Pages[2].Box.Y)
	}
	if got := f.v.CurrentPageNumber(); got != 3 {
		t.Errorf("current page: got %d, want 3", got)
	}
	loc, _ := f.v.Location()
	if loc.PageNumber != 3 || loc.Top != 400 {
		t.Errorf("unexpected location %v", loc)
	}
	if got := f.v.CurrentScaleValue(); got != zoom.Auto {
		t.Errorf("scale value changed to %q", got)
	}
}

type fooDestination struct{}

func (fooDestination) DestinationType() destination.Type { return "Foo" }

func TestScrollUnknownType(t *testing.T) {
	f := newFixture(t, 10, nil)

	for _, params := range []ScrollParams{
		{PageNumber: 4, Tag: "Foo", Args: []float64{1, 2}},
		{PageNumber: 4, Dest: fooDestination{}},
	} {
		before := f.v.Geometry()
		warnings := f.logs.count(slog.LevelWarn)

		err := f.v.ScrollPageIntoView(params)
		var typeErr *destination.UnknownTypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("got error %v, want UnknownTypeError", err)
		}

		after := f.v.Geometry()
		if before.ScrollTop != after.ScrollTop || before.ScrollLeft != after.ScrollLeft {
			t.Error("unknown destination caused scrolling")
		}
		if got := f.v.CurrentPageNumber(); got != 1 {
			t.Errorf("current page changed to %d", got)
		}
		if n := f.logs.count(slog.LevelWarn) - warnings; n != 1 {
			t.Errorf("got %d warnings, want 1", n)
		}
	}
}

func TestScrollInvalidPage(t *testing.T) {
	f := newFixture(t, 3, nil)
	err := f.v.ScrollPageIntoView(ScrollParams{
		PageNumber: 7,
		Dest:       &destination.Fit{},
	})
	if !errors.Is(err, ErrInvalidPageNumber) {
		t.Errorf("got %v, want %v", err, ErrInvalidPageNumber)
	}
}

func TestScrollFitH(t *testing.T) {
	f := newFixture(t, 10, nil)

	err := f.v.ScrollPageIntoView(ScrollParams{
		PageNumber: 5,
		Dest:       &destination.FitH{Top: 400},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := f.v.CurrentScaleValue(); got != zoom.PageWidth {
		t.Errorf("scale value: got %q, want %q", got, zoom.PageWidth)
	}
	g := f.v.Geometry()
	if !near(g.ScrollTop, g.Pages[4].Box.Y) {
		t.Errorf("scroll top: got %g, want %g", g.ScrollTop, g.Pages[4].Box.Y)
	}
}

func TestPageChanging(t *testing.T) {
	f := newFixture(t, 10, nil)

	if err := f.v.SetCurrentPageNumber(5); err != nil {
		t.Fatal(err)
	}
	events := f.rec.byName(event.NamePageChanging)
	if len(events) == 0 {
		t.Fatal("no pagechanging event")
	}
	got := events[len(events)-1].(event.PageChanging)
	want := event.PageChanging{PageNumber: 5, PreviousPageNumber: 1}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected event (-want +got):\n%s", d)
	}
	if p := f.v.CurrentPageNumber(); p != 5 {
		t.Errorf("current page: got %d, want 5", p)
	}

	n := len(f.rec.byName(event.NamePageChanging))
	f.v.Update()
	if m := len(f.rec.byName(event.NamePageChanging)); m != n {
		t.Errorf("update without change sent %d pagechanging events", m-n)
	}
}

func TestPageNumberClamp(t *testing.T) {
	f := newFixture(t, 4, nil)
	if err := f.v.SetCurrentPageNumber(99); err != nil {
		t.Fatal(err)
	}
	if p := f.v.CurrentPageNumber(); p != 4 {
		t.Errorf("current page: got %d, want 4", p)
	}

	if _, err := PageNumberFromFloat(2.5); !errors.Is(err, ErrInvalidPageNumber) {
		t.Errorf("2.5: got %v", err)
	}
	if n, err := PageNumberFromFloat(3); err != nil || n != 3 {
		t.Errorf("3: got %d, %v", n, err)
	}
}

func TestTwoPageAnchor(t *testing.T) {
	f := newFixture(t, 10, nil)
	v := f.v

	v.SetTwoPageMode(true)
	if u := v.PageSwitchUnit(); u != 2 {
		t.Errorf("page switch unit: got %d, want 2", u)
	}
	if err := v.SetCurrentPageNumber(4); err != nil {
		t.Fatal(err)
	}
	if p := v.CurrentPageNumber(); p != 3 {
		t.Errorf("two page: got page %d, want 3", p)
	}

	v.SetCoverOffset(true)
	if !v.TwoPageMode() || !v.CoverOffset() {
		t.Fatal("cover offset did not enable two page mode")
	}
	if err := v.SetCurrentPageNumber(3); err != nil {
		t.Fatal(err)
	}
	if p := v.CurrentPageNumber(); p != 2 {
		t.Errorf("cover offset: got page %d, want 2", p)
	}
	if err := v.SetCurrentPageNumber(1); err != nil {
		t.Fatal(err)
	}
	if p := v.CurrentPageNumber(); p != 1 {
		t.Errorf("cover: got page %d, want 1", p)
	}

	v.SetTwoPageMode(false)
	if v.CoverOffset() {
		t.Error("cover offset kept in single page mode")
	}
	if u := v.PageSwitchUnit(); u != 1 {
		t.Errorf("page switch unit: got %d, want 1", u)
	}
}

func TestLookingAtSide(t *testing.T) {
	f := newFixture(t, 4, nil)
	v := f.v

	if !v.IsLookingAtLeftSidePage() || v.IsLookingAtRightSidePage() {
		t.Error("single page mode looks at the right page")
	}

	v.SetTwoPageMode(true)
	v.ScrollTo(0, 0)
	if v.IsLookingAtRightSidePage() {
		t.Error("looking at right page while scrolled to the left")
	}
}

func TestIsCurrentPageRendering(t *testing.T) {
	f := newFixture(t, 3, &Options{Painter: blockingPainter})
	if !f.v.IsCurrentPageRendering() {
		t.Error("page 1 is not rendering")
	}

	f.v.Cleanup()
	if info, _ := f.v.PageView(1); info.State != page.Unrendered {
		t.Errorf("state after cleanup: %s", info.State)
	}

	f = newFixture(t, 3, nil)
	waitChan(t, f.v.FirstPageRendered())
	if f.v.IsCurrentPageRendering() {
		t.Error("page 1 still rendering")
	}
}

func TestLabels(t *testing.T) {
	f := newFixture(t, 3, nil)
	v := f.v

	errors0 := f.logs.count(slog.LevelError)
	if err := v.SetPageLabels([]string{"i", "ii"}); !errors.Is(err, ErrInvalidPageLabels) {
		t.Errorf("short labels: got %v", err)
	}
	if n := f.logs.count(slog.LevelError) - errors0; n != 1 {
		t.Errorf("got %d error logs, want 1", n)
	}
	if _, ok := v.CurrentPageLabel(); ok {
		t.Error("labels set after mismatch")
	}

	if err := v.SetPageLabels([]string{"i", "ii", "e\u0301"}); err != nil {
		t.Fatal(err)
	}
	if err := v.SetCurrentPageLabel("\u00e9"); err != nil {
		t.Fatal(err)
	}
	if p := v.CurrentPageNumber(); p != 3 {
		t.Errorf("current page: got %d, want 3", p)
	}
	if label, ok := v.CurrentPageLabel(); !ok || label != "\u00e9" {
		t.Errorf("label: got %q, %t", label, ok)
	}
	if info, _ := v.PageView(2); info.Label != "ii" {
		t.Errorf("page 2 label: got %q", info.Label)
	}

	if err := v.SetCurrentPageLabel("2"); err != nil {
		t.Fatal(err)
	}
	if p := v.CurrentPageNumber(); p != 2 {
		t.Errorf("current page: got %d, want 2", p)
	}
	if err := v.SetCurrentPageLabel("xyz"); !errors.Is(err, ErrInvalidPageNumber) {
		t.Errorf("unknown label: got %v", err)
	}

	if err := v.SetPageLabels(nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := v.CurrentPageLabel(); ok {
		t.Error("labels not cleared")
	}
}

func TestSetFragment(t *testing.T) {
	f := newFixture(t, 10, nil)

	if err := f.v.SetFragment(context.Background(), "#page=4&zoom=150,0,400"); err != nil {
		t.Fatal(err)
	}
	if got := f.v.CurrentScale(); !near(got, 1.5) {
		t.Errorf("scale: got %g, want 1.5", got)
	}
	if p := f.v.CurrentPageNumber(); p != 4 {
		t.Errorf("current page: got %d, want 4", p)
	}
	loc, _ := f.v.Location()
	if loc.Scale != "150" || loc.Top != 400 {
		t.Errorf("unexpected location %v", loc)
	}

	if err := f.v.SetFragment(context.Background(), "page=2&zoom=page-fit"); err != nil {
		t.Fatal(err)
	}
	if got := f.v.CurrentScaleValue(); got != zoom.PageFit {
		t.Errorf("scale value: got %q, want %q", got, zoom.PageFit)
	}

	if err := f.v.SetFragment(context.Background(), "6"); err != nil {
		t.Fatal(err)
	}
	if p := f.v.CurrentPageNumber(); p != 6 {
		t.Errorf("current page: got %d, want 6", p)
	}

	err := f.v.SetFragment(context.Background(), "page=2&zoom=FitR,1,2")
	if err == nil {
		t.Error("FitR with two coordinates accepted")
	}
}

func TestNavigateTo(t *testing.T) {
	doc := document.NewMemory(10, testBox)
	links := &linkservice.Simple{
		Doc: doc,
		Named: map[string]destination.Destination{
			"chapter2": &destination.Fit{Page: destination.PageNumber(3)},
		},
	}
	f := newFixtureDoc(t, doc, &Options{LinkService: links})
	ctx := context.Background()

	if err := f.v.NavigateTo(ctx, &destination.Named{Name: "chapter2"}); err != nil {
		t.Fatal(err)
	}
	if p := f.v.CurrentPageNumber(); p != 3 {
		t.Errorf("current page: got %d, want 3", p)
	}

	hash := links.DestinationHash(&destination.Fit{Page: destination.PageNumber(6)})
	if err := f.v.SetFragment(ctx, hash); err != nil {
		t.Fatal(err)
	}
	if p := f.v.CurrentPageNumber(); p != 6 {
		t.Errorf("current page: got %d, want 6", p)
	}

	err := f.v.NavigateTo(ctx, &destination.Named{Name: "missing"})
	if !errors.Is(err, linkservice.ErrUnknownName) {
		t.Errorf("missing name: got %v", err)
	}
}

func TestNavigateNoLinkService(t *testing.T) {
	f := newFixture(t, 3, nil)
	warnings := f.logs.count(slog.LevelWarn)
	err := f.v.NavigateTo(context.Background(), &destination.Named{Name: "x"})
	if !errors.Is(err, ErrNoLinkService) {
		t.Errorf("got %v, want %v", err, ErrNoLinkService)
	}
	if n := f.logs.count(slog.LevelWarn) - warnings; n != 1 {
		t.Errorf("got %d warnings, want 1", n)
	}
}

func TestBufferResize(t *testing.T) {
	doc := document.NewMemory(50, rect.Rect{URx: 72, URy: 72})
	v := New(&Options{
		DefaultCacheSize: 20,
		Width:            200,
		Height:           5400,
		Painter:          blockingPainter,
		DisableAutoFetch: true,
	})
	defer v.Close()

	if err := v.SetScale(1); err != nil {
		t.Fatal(err)
	}
	if err := v.SetDocument(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	v.lock()
	defer v.unlock()

	v.buffer = buffer.New(20)
	for _, view := range v.views[:20] {
		v.buffer.Touch(view)
	}

	v.update()

	if c := v.buffer.Cap(); c != 101 {
		t.Errorf("capacity: got %d, want 101", c)
	}
	v.buffer.Touch(v.views[30])
	for i, view := range v.views[:20] {
		if !v.buffer.Has(view) {
			t.Errorf("page %d was evicted", i+1)
		}
	}
	if n := v.buffer.Len(); n != 21 {
		t.Errorf("buffer length: got %d, want 21", n)
	}
}

func TestPredraw(t *testing.T) {
	f := newFixture(t, 3, nil)
	v := f.v

	v.TemporarilyDisablePreDrawing(time.Hour)
	v.TemporarilyDisablePreDrawing(time.Hour)
	if !v.PreDrawingDisabled() {
		t.Fatal("pre-drawing not disabled")
	}
	if x := v.DefaultVerticalTolerance(); x != 0 {
		t.Errorf("vertical tolerance: got %g, want 0", x)
	}

	v.run(v.stopPredraw)
	if x := v.DefaultVerticalTolerance(); x != 500 {
		t.Errorf("vertical tolerance: got %g, want 500", x)
	}
	if x := v.DefaultAdjacentPagesToDraw(); x != 7 {
		t.Errorf("adjacent pages: got %g, want 7", x)
	}

	v.TemporarilyDisablePreDrawing(time.Millisecond)
	waitFor(t, func() bool { return !v.PreDrawingDisabled() })
	if x := v.DefaultVerticalTolerance(); x != 500 {
		t.Errorf("vertical tolerance: got %g, want 500", x)
	}
}

func TestPredrawSetTolerance(t *testing.T) {
	f := newFixture(t, 3, nil)
	v := f.v

	v.TemporarilyDisablePreDrawing(time.Hour)
	v.SetDefaultVerticalTolerance(200)
	v.SetDefaultAdjacentPagesToDraw(3)
	if x := v.DefaultVerticalTolerance(); x != 0 {
		t.Errorf("vertical tolerance while disabled: got %g, want 0", x)
	}

	v.run(v.stopPredraw)
	if x := v.DefaultVerticalTolerance(); x != 200 {
		t.Errorf("vertical tolerance: got %g, want 200", x)
	}
	if x := v.DefaultAdjacentPagesToDraw(); x != 3 {
		t.Errorf("adjacent pages: got %g, want 3", x)
	}
}

func TestPagesOverview(t *testing.T) {
	doc := document.NewMemorySizes(testBox, rect.Rect{URx: 400, URy: 300})

	for _, autoRotate := range []bool{false, true} {
		f := newFixtureDoc(t, doc, &Options{PrintAutoRotate: autoRotate})
		waitChan(t, f.v.FirstPageRendered())
		waitChan(t, f.v.PagesLoaded())

		want := []PageSize{
			{Width: 300, Height: 400},
			{Width: 400, Height: 300},
		}
		if autoRotate {
			want[1] = PageSize{Width: 300, Height: 400, Rotation: 90}
		}
		got := f.v.PagesOverview()
		if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
			t.Errorf("autoRotate=%t (-want +got):\n%s", autoRotate, d)
		}
	}
}

func TestPresentationMode(t *testing.T) {
	f := newFixture(t, 3, nil)
	f.v.SetPresentationModeState(PresentationFullscreen)
	if got := f.v.PresentationModeState(); got != PresentationFullscreen {
		t.Fatalf("state: got %d", got)
	}

	// no padding in full screen mode: 600 / 533.33
	if err := f.v.SetScaleValue(zoom.PageFit); err != nil {
		t.Fatal(err)
	}
	if got := f.v.CurrentScale(); !near(got, 1.125) {
		t.Errorf("page-fit scale: got %g, want 1.125", got)
	}

	// every scale below page-fit snaps
	if err := f.v.SetScale(0.5); err != nil {
		t.Fatal(err)
	}
	if got := f.v.CurrentScaleValue(); got != zoom.PageFit {
		t.Errorf("scale value: got %q, want %q", got, zoom.PageFit)
	}

	f.v.Update()
	if info, _ := f.v.PageView(1); info.Transparent {
		t.Error("current page is transparent")
	}
	if info, _ := f.v.PageView(2); !info.Transparent {
		t.Error("page 2 is not transparent")
	}

	f.v.SetPresentationModeState(PresentationNormal)
	if info, _ := f.v.PageView(2); info.Transparent {
		t.Error("page 2 is transparent after leaving full screen mode")
	}
}
