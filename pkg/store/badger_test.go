package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbit/pkg/group"
	"github.com/matzehuels/orbit/pkg/perm"
	"github.com/matzehuels/orbit/pkg/search"
)

func TestInMemory(t *testing.T) {
	cl, err := OpenClosedList(Options{})
	if err != nil {
		t.Fatalf("OpenClosedList: %v", err)
	}
	defer cl.Close()

	for _, tt := range []struct {
		key   perm.State
		isNew bool
	}{
		{perm.State{0, 1}, true},
		{perm.State{0, 1}, false},
		{perm.State{1, 0}, true},
		{perm.State{}, true},
		{perm.State{}, false},
	} {
		got, err := cl.Insert(tt.key)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.isNew {
			t.Errorf("Insert(%v) = %v, want %v", tt.key, got, tt.isNew)
		}
	}
	if cl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cl.Len())
	}
	if ok, err := cl.Contains(perm.State{1, 0}); err != nil || !ok {
		t.Errorf("Contains([1,0]) = %v, %v", ok, err)
	}
	if ok, err := cl.Contains(perm.State{1, 1}); err != nil || ok {
		t.Errorf("Contains([1,1]) = %v, %v", ok, err)
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	cl, err := OpenClosedList(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	keys := []perm.State{{0, 0, 1}, {0, 1, 0}, {2, 300, 1}}
	for _, k := range keys {
		if _, err := cl.Insert(k); err != nil {
			t.Fatal(err)
		}
	}
	if err := cl.Close(); err != nil {
		t.Fatal(err)
	}

	cl, err = OpenClosedList(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer cl.Close()
	if cl.Len() != len(keys) {
		t.Errorf("reopened Len() = %d, want %d", cl.Len(), len(keys))
	}
	for _, k := range keys {
		if ok, _ := cl.Insert(k); ok {
			t.Errorf("key %v lost across reopen", k)
		}
	}

	var seen []perm.State
	if err := cl.Each(func(s perm.State) error {
		seen = append(seen, s)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != len(keys) {
		t.Errorf("Each visited %d keys, want %d", len(seen), len(keys))
	}
}

func TestDKSWithBadger(t *testing.T) {
	s, err := perm.NewIndexSpace([]int{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	g := group.New()
	if err := g.ComputeSymmetries(context.Background(), group.PrecomputedSource{
		Space:      s,
		Generators: [][]int{{1, 0, 4, 5, 2, 3}},
	}); err != nil {
		t.Fatal(err)
	}
	p, err := search.NewPruner(search.Options{Mode: search.ModeDKS, Source: search.SourcePrecomputed}, g)
	if err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	cl, err := OpenClosedList(Options{Dir: t.TempDir(), Logger: log.New(&logs)})
	if err != nil {
		t.Fatal(err)
	}
	defer cl.Close()

	if ok, _ := p.CloseState(cl, perm.State{1, 0}); !ok {
		t.Fatal("first state reported as duplicate")
	}
	if ok, _ := p.CloseState(cl, perm.State{0, 1}); ok {
		t.Error("symmetric state not detected as duplicate")
	}
}
