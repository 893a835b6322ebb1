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

package linkservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"seehuhn.de/go/pdfview/destination"
	"seehuhn.de/go/pdfview/document"
)

// ErrMalformedHash is returned by [ParseDestinationHash] for fragments which
// do not describe a destination.
var ErrMalformedHash = errors.New("malformed destination hash")

type refJSON struct {
	Num uint32 `json:"num"`
	Gen int    `json:"gen"`
}

type tagJSON struct {
	Name string `json:"name"`
}

// DestinationHash implements the [Resolver] interface.
//
// Named destinations are represented by their escaped name.  Explicit
// destinations are encoded as an escaped JSON array, consisting of the
// target page, the fit-type and the coordinates.  Page numbers are stored
// as 0-based page indices, and unset coordinates as null.
func (s *Simple) DestinationHash(d destination.Destination) string {
	return DestinationHash(d)
}

// DestinationHash returns the URL fragment for d.  The empty string is
// returned for destinations which cannot be encoded.
func DestinationHash(d destination.Destination) string {
	if named, ok := d.(*destination.Named); ok {
		return url.PathEscape(named.Name)
	}

	tag, args, err := destination.Encode(d)
	if err != nil {
		return ""
	}

	arr := make([]any, 0, 2+len(args))
	switch target := destination.PageOf(d).(type) {
	case document.Ref:
		arr = append(arr, refJSON{Num: uint32(target)})
	case destination.PageNumber:
		arr = append(arr, int(target)-1)
	default:
		arr = append(arr, nil)
	}
	arr = append(arr, tagJSON{Name: string(tag)})
	for _, x := range args {
		if math.IsNaN(x) {
			arr = append(arr, nil)
		} else {
			arr = append(arr, x)
		}
	}

	data, err := json.Marshal(arr)
	if err != nil {
		return ""
	}
	return url.PathEscape(string(data))
}

// ParseDestinationHash decodes a fragment produced by [DestinationHash].
func ParseDestinationHash(hash string) (destination.Destination, error) {
	hash = strings.TrimPrefix(hash, "#")
	s, err := url.PathUnescape(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if s == "" {
		return nil, ErrMalformedHash
	}
	if !strings.HasPrefix(s, "[") {
		return &destination.Named{Name: s}, nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if len(arr) < 2 {
		return nil, ErrMalformedHash
	}

	var target destination.Target
	var ref refJSON
	var index int
	switch {
	case string(arr[0]) == "null":
		// no target page
	case json.Unmarshal(arr[0], &index) == nil:
		target = destination.PageNumber(index + 1)
	case json.Unmarshal(arr[0], &ref) == nil:
		target = document.Ref(ref.Num)
	default:
		return nil, ErrMalformedHash
	}

	var tag tagJSON
	if err := json.Unmarshal(arr[1], &tag); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	args := make([]float64, len(arr)-2)
	for i, raw := range arr[2:] {
		var x *float64
		if err := json.Unmarshal(raw, &x); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
		if x == nil {
			args[i] = destination.Unset
		} else {
			args[i] = *x
		}
	}

	return destination.Decode(destination.Type(tag.Name), target, args...)
}
