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

// Command pdfview-sim drives a viewer for a simulated document.
//
// Commands are read from standard input, one per line.  If standard input
// is a terminal, an interactive prompt is shown.  Use "help" for a list of
// commands.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/document"
	"seehuhn.de/go/pdfview/event"
	"seehuhn.de/go/pdfview/internal/buildinfo"
	"seehuhn.de/go/pdfview/internal/profile"
	"seehuhn.de/go/pdfview/linkservice"
	"seehuhn.de/go/pdfview/zoom"
)

var (
	numPages   = flag.Int("pages", 100, "number of pages of the simulated document")
	paperArg   = flag.String("paper", "a4", "page size: a4, a5 or letter")
	widthArg   = flag.Float64("width", 800, "container width in CSS pixels")
	heightArg  = flag.Float64("height", 600, "container height in CSS pixels")
	scaleArg   = flag.String("scale", string(zoom.DefaultValue), "initial zoom value")
	lowMemory  = flag.Bool("low-memory", false, "use the presets for low memory devices")
	paintDelay = flag.Duration("delay", 5*time.Millisecond, "simulated painting time per page")
	chapterLen = flag.Int("chapter", 10, "pages per chapter of the simulated outline")
	showEvents = flag.Bool("events", false, "print viewer events")
	verbose    = flag.Bool("v", false, "print debug output")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
	traceFile  = flag.String("trace", "", "write execution trace to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdfview-sim - drive a document viewer from the command line\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Long("pdfview-sim"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdfview-sim [options] < script\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pdfview-sim -pages 300\n")
		fmt.Fprintf(os.Stderr, "  echo 'page 12; zoom page-width; png out.png' | pdfview-sim\n")
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// lineReader is implemented by term.Terminal and by scanLines.
type lineReader interface {
	ReadLine() (string, error)
}

type scanLines struct {
	*bufio.Scanner
}

func (s scanLines) ReadLine() (string, error) {
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.Text(), nil
}

func run() error {
	stop, err := profile.Start(profile.Config{
		CPU:    *cpuprofile,
		Memory: *memprofile,
		Trace:  *traceFile,
	})
	if err != nil {
		return err
	}
	defer stop()

	box, err := paperSize(*paperArg)
	if err != nil {
		return err
	}
	if *numPages < 1 {
		return errors.New("the document needs at least one page")
	}
	doc := document.NewMemory(*numPages, box)
	links := &linkservice.Simple{
		Doc:   doc,
		Named: chapters(*numPages, *chapterLen),
	}

	var in lineReader
	var out io.Writer
	fd := int(os.Stdin.Fd())
	interactive := term.IsTerminal(fd)
	if interactive {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, oldState)

		screen := struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}
		t := term.NewTerminal(screen, "pdfview> ")
		in, out = t, t
	} else {
		in, out = scanLines{bufio.NewScanner(os.Stdin)}, os.Stdout
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	opt := pdfview.DesktopOptions
	if *lowMemory {
		opt = pdfview.LowMemoryOptions
	}
	opt.Width = *widthArg
	opt.Height = *heightArg
	opt.Painter = &rasterPainter{delay: *paintDelay}
	opt.LinkService = links
	opt.Logger = logger

	v := pdfview.New(&opt)
	defer v.Close()
	if *showEvents {
		printEvents(v.Bus(), out)
	}

	if err := v.SetScaleValue(zoom.Value(*scaleArg)); err != nil {
		return err
	}
	ctx := context.Background()
	if err := v.SetDocument(ctx, doc); err != nil {
		return err
	}

	sh := &shell{
		v:     v,
		links: links,
		out:   out,
		width: func() int { return 80 },
	}
	if interactive {
		sh.width = func() int {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil || w <= 0 {
				return 80
			}
			return w
		}
	}

	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		for _, cmd := range strings.Split(line, ";") {
			done, err := sh.exec(ctx, cmd)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
			}
			if done {
				return nil
			}
		}
	}
}

func paperSize(name string) (rect.Rect, error) {
	switch strings.ToLower(name) {
	case "a4":
		return document.A4, nil
	case "a5":
		return document.A5, nil
	case "letter":
		return document.Letter, nil
	default:
		return rect.Rect{}, fmt.Errorf("unknown paper size %q", name)
	}
}

func printEvents(bus *event.Bus, out io.Writer) {
	names := []event.Name{
		event.NamePagesInit,
		event.NamePagesLoaded,
		event.NamePageChanging,
		event.NameScaleChanging,
		event.NamePageRendered,
	}
	for _, name := range names {
		bus.On(name, func(e event.Event) {
			fmt.Fprintf(out, "event %s %+v\n", e.EventName(), e)
		})
	}
}
