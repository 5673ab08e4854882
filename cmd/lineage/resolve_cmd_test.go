package main

import (
	"testing"

	"github.com/raphi011/lineage/internal/cache"
	"github.com/raphi011/lineage/internal/lineage"
	"github.com/raphi011/lineage/internal/ui/static"
)

func TestOpenItems_Order(t *testing.T) {
	t.Parallel()

	r := &cache.Report{
		UnresolvedRoots:  []string{"root1"},
		UnresolvedLeaves: []string{"leaf1", "leaf2"},
		Ambiguous:        []cache.Ambiguity{{Revision: "amb1", Candidates: []string{"x", "y"}}},
	}
	items := openItems(r)

	want := []string{"amb1", "leaf1", "leaf2", "root1"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, rev := range want {
		if string(items[i].rev) != rev {
			t.Errorf("items[%d] = %s, want %s", i, items[i].rev, rev)
		}
	}
	if len(items[0].candidates) != 2 || len(items[1].candidates) != 0 {
		t.Error("only ambiguous items carry candidates")
	}
}

func TestAssignmentRows_SortedByBranchThenRevision(t *testing.T) {
	t.Parallel()

	rows := assignmentRows(map[lineage.Revision]lineage.Branch{
		"c3": "main",
		"a1": "topic",
		"b2": "main",
	})
	want := []static.Assignment{
		{Revision: "b2", Branch: "main"},
		{Revision: "c3", Branch: "main"},
		{Revision: "a1", Branch: "topic"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %v", rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}
