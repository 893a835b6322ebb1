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

// Package profile starts and stops the runtime profilers for the command
// line tools.
package profile

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Config lists the output files of the profilers.
// Profilers with an empty file name are not started.
type Config struct {
	CPU    string
	Memory string
	Trace  string
}

// Start begins CPU profiling and execution tracing as configured and
// returns a stop function.  The stop function ends the running profilers
// and writes the memory profile.  The caller should defer stop() inside
// run().
func Start(cfg Config) (stop func(), err error) {
	var cpuFile, traceFile *os.File
	cleanup := func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}
		if traceFile != nil {
			trace.Stop()
			traceFile.Close()
		}
	}

	if cfg.CPU != "" {
		cpuFile, err = os.Create(cfg.CPU)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
	}
	if cfg.Trace != "" {
		traceFile, err = os.Create(cfg.Trace)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("could not create trace: %w", err)
		}
		if err = trace.Start(traceFile); err != nil {
			traceFile.Close()
			traceFile = nil
			cleanup()
			return nil, fmt.Errorf("could not start trace: %w", err)
		}
	}

	stop = func() {
		cleanup()
		if cfg.Memory != "" {
			if err := writeHeap(cfg.Memory); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
	return stop, nil
}

func writeHeap(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer f.Close()

	runtime.GC()
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		return fmt.Errorf("could not lookup memory profile")
	}
	if err := allocs.WriteTo(f, 0); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}
