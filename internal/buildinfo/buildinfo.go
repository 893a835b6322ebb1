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

// Package buildinfo reports version information for the command line
// tools.
package buildinfo

import (
	"runtime"
	"runtime/debug"
)

// Short returns a short version string for a command line tool, e.g.
// "pdfview-sim (seehuhn.de/go/pdfview v0.1.0)".
func Short(toolName string) string {
	path, version := module()
	if version == "" {
		return toolName
	}
	return toolName + " (" + path + " " + version + ")"
}

// Long is like [Short], but also includes the Go version.
func Long(toolName string) string {
	return Short(toolName) + ", " + runtime.Version()
}

// module returns the main module path and its version.  For development
// builds, the VCS revision is used as the version.
func module() (path, version string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	path = info.Main.Path

	version = info.Main.Version
	if version != "" && version != "(devel)" {
		return path, version
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return path, ""
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if dirty {
		rev += "+dirty"
	}
	return path, rev
}
