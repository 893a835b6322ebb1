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

package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testView struct {
	id        int
	destroyed int
}

func (v *testView) Destroy() {
	v.destroyed++
}

func ids(b *Buffer) []int {
	var res []int
	for _, e := range b.Entries() {
		res = append(res, e.(*testView).id)
	}
	return res
}

func makeViews(n int) []*testView {
	views := make([]*testView, n)
	for i := range views {
		views[i] = &testView{id: i + 1}
	}
	return views
}

func TestTouchOrder(t *testing.T) {
	views := makeViews(3)
	b := New(5)
	for _, v := range views {
		b.Touch(v)
	}
	b.Touch(views[0])

	if diff := cmp.Diff([]int{1, 3, 2}, ids(b)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

func TestEvictLeastRecentlyUsed(t *testing.T) {
	views := makeViews(4)
	b := New(3)
	b.Touch(views[0])
	b.Touch(views[1])
	b.Touch(views[2])
	b.Touch(views[0]) // now 2 is the least recently used
	b.Touch(views[3])

	if b.Has(views[1]) {
		t.Error("view 2 should have been evicted")
	}
	if views[1].destroyed != 1 {
		t.Errorf("view 2 destroyed %d times, want 1", views[1].destroyed)
	}
	for _, i := range []int{0, 2, 3} {
		if views[i].destroyed != 0 {
			t.Errorf("view %d destroyed unexpectedly", i+1)
		}
	}
	if diff := cmp.Diff([]int{4, 1, 3}, ids(b)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestNeverExceedsCapacity(t *testing.T) {
	views := makeViews(20)
	b := New(4)
	// a pseudo-random but deterministic access pattern
	for i := 0; i < 200; i++ {
		b.Touch(views[(i*7+i/3)%len(views)])
		if b.Len() > b.Cap() {
			t.Fatalf("step %d: Len() = %d > Cap() = %d", i, b.Len(), b.Cap())
		}
	}
}

func TestResize(t *testing.T) {
	views := makeViews(6)
	b := New(10)
	for _, v := range views {
		b.Touch(v)
	}

	b.Resize(2)
	if diff := cmp.Diff([]int{6, 5}, ids(b)); diff != "" {
		t.Errorf("unexpected entries (-want +got):\n%s", diff)
	}
	for i, v := range views {
		want := 1
		if i >= 4 {
			want = 0
		}
		if v.destroyed != want {
			t.Errorf("view %d destroyed %d times, want %d", v.id, v.destroyed, want)
		}
	}

	// growing does not evict
	b.Resize(101)
	if b.Len() != 2 || b.Cap() != 101 {
		t.Errorf("after grow: Len()=%d Cap()=%d", b.Len(), b.Cap())
	}
}

func TestReset(t *testing.T) {
	views := makeViews(3)
	b := New(3)
	for _, v := range views {
		b.Touch(v)
	}
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len() = %d after Reset", b.Len())
	}
	for _, v := range views {
		if v.destroyed != 0 {
			t.Errorf("view %d destroyed by Reset", v.id)
		}
	}
	b.Touch(views[2])
	if diff := cmp.Diff([]int{3}, ids(b)); diff != "" {
		t.Errorf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestZeroCapacity(t *testing.T) {
	v := &testView{id: 1}
	b := New(0)
	b.Touch(v)
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if v.destroyed != 1 {
		t.Errorf("destroyed %d times, want 1", v.destroyed)
	}
}
