package storage

import (
	"context"
	"math"
	"testing"

	"notegraph/internal/ingest"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2}, b: []float32{1, 2}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanIndex_FindNeighbors(t *testing.T) {
	db := newTestDB(t)
	notes := NewNoteRepo(db)
	index := NewScanIndex(db)
	ctx := context.Background()

	insert := func(owner string, vec []float32) string {
		n := newNote(owner, "n")
		n.Embedding = vec
		if err := notes.InsertNote(ctx, n); err != nil {
			t.Fatalf("InsertNote() error = %v", err)
		}
		return n.ID
	}

	close1 := insert("alice", []float32{1, 0.1, 0})
	close2 := insert("alice", []float32{1, 0.3, 0})
	// Orthogonal, other owner, other dimension.
	_ = insert("alice", []float32{0, 0, 1})
	_ = insert("bob", []float32{1, 0.1, 0})
	_ = insert("alice", []float32{1, 0})

	got, err := index.FindNeighbors(ctx, ingest.NeighborQuery{
		Vector:    []float32{1, 0, 0},
		Threshold: 0.7,
		Limit:     5,
		Owner:     "alice",
	})
	if err != nil {
		t.Fatalf("FindNeighbors() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != close1 || got[1].ID != close2 {
		t.Errorf("FindNeighbors() = %+v, want [%s %s]", got, close1, close2)
	}

	got, _ = index.FindNeighbors(ctx, ingest.NeighborQuery{Vector: []float32{1, 0, 0}, Threshold: 0.7, Limit: 1, Owner: "alice"})
	if len(got) != 1 {
		t.Errorf("FindNeighbors(limit 1) returned %d", len(got))
	}

	if err := index.IndexNote(ctx, ingest.Note{}); err != nil {
		t.Errorf("IndexNote() error = %v", err)
	}
}

func TestLinker_OverScanIndex_WritesFullK(t *testing.T) {
	db := newTestDB(t)
	notes := NewNoteRepo(db)
	edges := NewEdgeRepo(db)
	ctx := context.Background()

	for _, vec := range [][]float32{{1, 0.01, 0}, {1, 0.02, 0}, {1, 0.03, 0}} {
		n := newNote("alice", "prior")
		n.Embedding = vec
		if err := notes.InsertNote(ctx, n); err != nil {
			t.Fatalf("InsertNote() error = %v", err)
		}
	}

	// The new note is stored before linking, so it is visible to the scan.
	fresh := newNote("alice", "fresh")
	fresh.Embedding = []float32{1, 0, 0}
	if err := notes.InsertNote(ctx, fresh); err != nil {
		t.Fatalf("InsertNote() error = %v", err)
	}

	res, err := ingest.NewLinker(NewScanIndex(db), edges, 2, 0.7).Link(ctx, *fresh)
	if err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if len(res.Edges) != 2 || res.Status != ingest.LinkingLinked {
		t.Fatalf("Link() = %d edges, status %s, want 2 edges, linked", len(res.Edges), res.Status)
	}

	stored, err := edges.ListEdgesFrom(ctx, fresh.ID)
	if err != nil {
		t.Fatalf("ListEdgesFrom() error = %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("stored %d edges, want 2", len(stored))
	}
	for _, e := range stored {
		if e.TargetNoteID == fresh.ID {
			t.Error("note linked to itself")
		}
	}
}
