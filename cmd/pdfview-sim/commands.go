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
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/destination"
	"seehuhn.de/go/pdfview/linkservice"
	"seehuhn.de/go/pdfview/toc"
	"seehuhn.de/go/pdfview/zoom"
)

var errUsage = errors.New("wrong number of arguments, try \"help\"")

const helpText = `commands:
  status               show the current page, zoom and visible pages
  page N               go to page N
  next, prev           go to the next or previous page
  label L              go to the page with label L
  labels roman|none    set or clear page labels
  scroll DX DY         scroll by the given amount
  zoom VALUE           set a numeric zoom or a preset
  rotate DEG           rotate all pages by DEG degrees
  twopage on|off       show pages side by side
  cover on|off         show the first page on its own in two page mode
  resize W H           resize the container
  go FRAGMENT          go to a location fragment or destination hash
  chapter N            go to the named destination "chapterN"
  toc                  print the table of contents
  predraw DURATION     disable pre-drawing for a while
  wait                 wait until the visible pages are rendered
  png FILE             write a snapshot of the container
  quit                 leave the program
`

type shell struct {
	v     *pdfview.Viewer
	links *linkservice.Simple
	out   io.Writer
	width func() int
}

// exec runs one command.  The first return value is true if the program
// should terminate.
func (sh *shell) exec(ctx context.Context, line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	cmd, args := args[0], args[1:]
	v := sh.v

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprint(sh.out, helpText)
	case "status":
		sh.status()
	case "page":
		n, err := intArg(args)
		if err != nil {
			return false, err
		}
		return false, v.SetCurrentPageNumber(n)
	case "next":
		return false, v.SetCurrentPageNumber(v.CurrentPageNumber() + v.PageSwitchUnit())
	case "prev":
		return false, v.SetCurrentPageNumber(v.CurrentPageNumber() - v.PageSwitchUnit())
	case "label":
		if len(args) != 1 {
			return false, errUsage
		}
		return false, v.SetCurrentPageLabel(args[0])
	case "labels":
		if len(args) != 1 {
			return false, errUsage
		}
		if args[0] == "none" {
			return false, v.SetPageLabels(nil)
		}
		return false, v.SetPageLabels(romanLabels(v.NumPages()))
	case "scroll":
		dx, dy, err := pairArg(args)
		if err != nil {
			return false, err
		}
		v.Scroll(dx, dy)
	case "zoom":
		if len(args) != 1 {
			return false, errUsage
		}
		if x, err := strconv.ParseFloat(args[0], 64); err == nil {
			return false, v.SetScale(x)
		}
		return false, v.SetScaleValue(zoom.Value(args[0]))
	case "rotate":
		deg, err := intArg(args)
		if err != nil {
			return false, err
		}
		return false, v.SetPagesRotation(v.PagesRotation() + deg)
	case "twopage", "cover":
		on, err := boolArg(args)
		if err != nil {
			return false, err
		}
		if cmd == "twopage" {
			v.SetTwoPageMode(on)
		} else {
			v.SetCoverOffset(on)
		}
	case "resize":
		w, h, err := pairArg(args)
		if err != nil {
			return false, err
		}
		v.Resize(w, h)
	case "go":
		if len(args) != 1 {
			return false, errUsage
		}
		return false, v.SetFragment(ctx, args[0])
	case "chapter":
		n, err := intArg(args)
		if err != nil {
			return false, err
		}
		return false, v.NavigateTo(ctx, &destination.Named{Name: chapterName(n)})
	case "toc":
		return false, sh.toc(ctx)
	case "predraw":
		if len(args) != 1 {
			return false, errUsage
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return false, err
		}
		v.TemporarilyDisablePreDrawing(d)
	case "wait":
		return false, sh.wait(ctx)
	case "png":
		if len(args) != 1 {
			return false, errUsage
		}
		return false, writeSnapshot(args[0], v.Geometry())
	default:
		return false, fmt.Errorf("unknown command %q, try \"help\"", cmd)
	}
	return false, nil
}

func (sh *shell) status() {
	v := sh.v
	loc, _ := v.Location()
	fmt.Fprintf(sh.out, "page %d/%d", v.CurrentPageNumber(), v.NumPages())
	if label, ok := v.CurrentPageLabel(); ok {
		fmt.Fprintf(sh.out, " (%s)", label)
	}
	fmt.Fprintf(sh.out, ", zoom %s (%.3f), rotation %d\n",
		v.CurrentScaleValue(), v.CurrentScale(), v.PagesRotation())
	fmt.Fprintf(sh.out, "location #%s\n", loc.Fragment)

	g := v.Geometry()
	barWidth := max(sh.width()-24, 10)
	for _, p := range g.Pages {
		top := p.Box.Y - g.ScrollTop
		if top+p.Box.H <= 0 || top >= g.Height {
			continue
		}
		visible := min(top+p.Box.H, g.Height) - max(top, 0)
		n := int(float64(barWidth) * visible / p.Box.H)
		bar := strings.Repeat("#", n) + strings.Repeat(".", barWidth-n)
		fmt.Fprintf(sh.out, "%5d %s %s\n", p.PageNumber, bar, p.State)
	}
}

func (sh *shell) toc(ctx context.Context) error {
	var numbers []int
	for name := range sh.links.All() {
		n, err := strconv.Atoi(strings.TrimPrefix(name, "chapter"))
		if err == nil {
			numbers = append(numbers, n)
		}
	}
	slices.Sort(numbers)

	outline := &toc.Outline{}
	for _, n := range numbers {
		name := chapterName(n)
		item := outline.AddItem(fmt.Sprintf("Chapter %d", n), &destination.Named{Name: name})
		d, err := sh.links.Lookup(name)
		if err != nil {
			continue
		}
		if first, ok := destination.PageOf(d).(destination.PageNumber); ok {
			item.AddChild("Exercises", &destination.FitH{
				Page: first + 1,
				Top:  destination.Unset,
			})
		}
	}

	entries, err := toc.Build(ctx, sh.links, outline)
	for _, e := range entries {
		fmt.Fprintf(sh.out, "%s%-20s %5d  #%s\n",
			strings.Repeat("  ", e.Level), e.Label, e.Page, e.Location)
	}
	return err
}

// wait blocks until the visible pages have been rendered.
func (sh *shell) wait(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if !sh.v.IsCurrentPageRendering() {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func chapterName(n int) string {
	return "chapter" + strconv.Itoa(n)
}

// chapters returns one named destination per chapter.
func chapters(numPages, chapterLen int) map[string]destination.Destination {
	chapterLen = max(chapterLen, 1)
	res := make(map[string]destination.Destination)
	for first := 1; first <= numPages; first += chapterLen {
		n := (first-1)/chapterLen + 1
		res[chapterName(n)] = &destination.XYZ{
			Page: destination.PageNumber(first),
			Left: destination.Unset,
			Top:  destination.Unset,
			Zoom: destination.Unset,
		}
	}
	return res
}

// romanLabels numbers the first four pages with roman numerals and the
// remaining pages from 1.
func romanLabels(n int) []string {
	front := []string{"i", "ii", "iii", "iv"}
	labels := make([]string, n)
	for i := range labels {
		if i < len(front) {
			labels[i] = front[i]
		} else {
			labels[i] = strconv.Itoa(i - len(front) + 1)
		}
	}
	return labels
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	return strconv.Atoi(args[0])
}

func pairArg(args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, errUsage
	}
	a, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func boolArg(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errUsage
	}
	switch args[0] {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected \"on\" or \"off\", got %q", args[0])
	}
}
