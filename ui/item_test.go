// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(it *Item) []string {
	var n []string
	for _, c := range it.Children() {
		n = append(n, c.Delegate().(*testItem).name)
	}
	return n
}

func TestChildOrder(t *testing.T) {
	root := newTestItem(nil, "root")
	a := newTestItem(root.Item, "a")
	b := newTestItem(nil, "b")
	c := newTestItem(nil, "c")
	d := newTestItem(nil, "d")
	root.PrependChild(b.Item)
	root.InsertChildAfter(a.Item, c.Item)
	root.InsertChildBefore(a.Item, d.Item)
	if diff := cmp.Diff([]string{"b", "d", "a", "c"}, names(root.Item)); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}

	root.AppendChild(b.Item)
	if diff := cmp.Diff([]string{"d", "a", "c", "b"}, names(root.Item)); diff != "" {
		t.Errorf("children after move (-want +got):\n%s", diff)
	}

	other := newTestItem(nil, "other")
	other.AppendChild(a.Item)
	if a.Parent() != other.Item {
		t.Error("parent not updated")
	}
	if diff := cmp.Diff([]string{"d", "c", "b"}, names(root.Item)); diff != "" {
		t.Errorf("children after reparent (-want +got):\n%s", diff)
	}

	root.RemoveChild(a.Item)
	if a.Parent() != other.Item {
		t.Error("removing a foreign child detached it")
	}
}

func TestChildCycle(t *testing.T) {
	a := NewItem(nil, nil)
	b := NewItem(a, nil)
	defer func() {
		if recover() == nil {
			t.Error("no panic when appending an ancestor")
		}
	}()
	b.AppendChild(a)
}

func TestContains(t *testing.T) {
	parent := NewItem(nil, nil)
	parent.Move(10, 10)
	parent.Resize(50, 50)
	child := NewItem(parent, nil)
	child.Move(5, 5)
	child.Resize(10, 10)

	for _, tc := range []struct {
		x, y int
		want bool
	}{
		{15, 15, true},
		{24, 24, true},
		{14, 15, false},
		{25, 15, false},
	} {
		if got := child.ContainsAbs(tc.x, tc.y); got != tc.want {
			t.Errorf("ContainsAbs(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if !child.Contains(0, 0) || child.Contains(10, 0) {
		t.Error("relative containment")
	}
}

func TestIsAncestorOf(t *testing.T) {
	a := NewItem(nil, nil)
	b := NewItem(a, nil)
	c := NewItem(b, nil)
	if !a.IsAncestorOf(c) || !c.IsAncestorOf(c) {
		t.Error("ancestor not detected")
	}
	if c.IsAncestorOf(a) || a.IsAncestorOf(nil) {
		t.Error("false ancestor")
	}
}

func TestFindPreviousItem(t *testing.T) {
	root := newTestItem(nil, "root")
	a := newTestItem(root.Item, "a")
	a1 := newTestItem(a.Item, "a1")
	b := newTestItem(root.Item, "b")
	all := func(*Item) Match { return Matched }

	if got := b.FindPreviousItem(all, 0); got != a1.Item {
		t.Errorf("previous of b is %v, want a1", got.Delegate().(*testItem).name)
	}
	if got := a1.FindPreviousItem(all, 0); got != a.Item {
		t.Error("previous of a1 is not its parent")
	}
	if got := a1.FindNextItem(all, 0); got != b.Item {
		t.Error("next of a1 is not b")
	}
	if got := b.FindNextItem(all, 0); got != nil {
		t.Error("search past the end without wrap")
	}
	if got := b.FindNextItem(all, Wrap); got != root.Item {
		t.Error("wrapped search did not restart at the root")
	}
}

func TestAlign(t *testing.T) {
	parent := NewItem(nil, nil)
	parent.Move(7, 7)
	parent.Resize(100, 50)
	sibling := NewItem(parent, nil)
	sibling.Move(20, 0)
	sibling.Resize(30, 10)
	it := NewItem(parent, nil)
	it.Resize(10, 10)

	it.CenterIn(parent)
	if it.X() != 45 || it.Y() != 20 {
		t.Errorf("centered at %d,%d, want 45,20", it.X(), it.Y())
	}
	it.Align(Right, parent, Right, -5)
	if it.X() != 85 {
		t.Errorf("right aligned at %d, want 85", it.X())
	}
	it.Align(Left, sibling, Right, 2)
	if it.X() != 52 {
		t.Errorf("aligned to sibling at %d, want 52", it.X())
	}
	it.CenterBetween(sibling, Right, parent, Right)
	if it.X() != 70 {
		t.Errorf("centered between at %d, want 70", it.X())
	}
	it.Fill(parent, 5)
	if it.X() != 5 || it.Y() != 5 || it.Width() != 90 || it.Height() != 40 {
		t.Errorf("fill gave %d,%d %dx%d", it.X(), it.Y(), it.Width(), it.Height())
	}

	defer func() {
		if recover() == nil {
			t.Error("no panic for guides of different axes")
		}
	}()
	it.Align(Left, parent, Top, 0)
}
