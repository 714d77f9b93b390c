package search

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/group"
	"github.com/matzehuels/orbit/pkg/observability"
	"github.com/matzehuels/orbit/pkg/perm"
)

// swapGroup is the group of two interchangeable binary variables.
func swapGroup(t *testing.T) *group.Group {
	t.Helper()
	return precomputed(t, [][]int{{1, 0, 4, 5, 2, 3}})
}

func precomputed(t *testing.T, gens [][]int) *group.Group {
	t.Helper()
	s, err := perm.NewIndexSpace([]int{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	g := group.New()
	if err := g.ComputeSymmetries(context.Background(), group.PrecomputedSource{Space: s, Generators: gens}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"none", ModeNone, false},
		{"NOSEARCHSYMMETRIES", ModeNone, false},
		{"", ModeNone, false},
		{"oss", ModeOSS, false},
		{"OSS", ModeOSS, false},
		{" dks ", ModeDKS, false},
		{"orbit", ModeNone, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, m := range []Mode{ModeNone, ModeOSS, ModeDKS} {
		back, err := ParseMode(m.String())
		if err != nil || back != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), back, err)
		}
	}
	if got := Mode(7).String(); got != "Mode(7)" {
		t.Errorf("Mode(7).String() = %q", got)
	}
}

func TestParseSourceKind(t *testing.T) {
	for _, k := range []SourceKind{SourceNone, SourceDiscover, SourcePrecomputed} {
		got, err := ParseSourceKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseSourceKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseSourceKind("bliss"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ParseSourceKind(bliss) error = %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero value", Options{}, false},
		{"oss discover", Options{Mode: ModeOSS, Source: SourceDiscover}, false},
		{"dks precomputed", Options{Mode: ModeDKS, Source: SourcePrecomputed}, false},
		{"none with reopen", Options{ReopenClosed: true, PreferredOperators: true}, false},

		{"oss without source", Options{Mode: ModeOSS}, true},
		{"dks without source", Options{Mode: ModeDKS}, true},
		{"source without mode", Options{Source: SourceDiscover}, true},
		{"oss reopen", Options{Mode: ModeOSS, Source: SourceDiscover, ReopenClosed: true}, true},
		{"dks reopen", Options{Mode: ModeDKS, Source: SourceDiscover, ReopenClosed: true}, true},
		{"oss preferred", Options{Mode: ModeOSS, Source: SourceDiscover, PreferredOperators: true}, true},
		{"dks preferred", Options{Mode: ModeDKS, Source: SourcePrecomputed, PreferredOperators: true}, true},
		{"unknown mode", Options{Mode: Mode(9)}, true},
		{"unknown source", Options{Source: SourceKind(9)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestNewPruner_Errors(t *testing.T) {
	oss := Options{Mode: ModeOSS, Source: SourcePrecomputed}
	if _, err := NewPruner(oss, nil); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("nil group error = %v", err)
	}
	if _, err := NewPruner(oss, group.New()); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unpopulated group error = %v", err)
	}
	if _, err := NewPruner(Options{Mode: ModeOSS}, swapGroup(t)); err == nil {
		t.Error("invalid options accepted")
	}
	p, err := NewPruner(Options{}, nil)
	if err != nil {
		t.Fatalf("ModeNone without group: %v", err)
	}
	if p.Active() {
		t.Error("ModeNone pruner is active")
	}
}

func TestPruner_Modes(t *testing.T) {
	g := swapGroup(t)
	state := perm.State{1, 0}
	canon := perm.State{0, 1}

	tests := []struct {
		mode          Mode
		wantKey       perm.State
		wantSuccessor perm.State
	}{
		{ModeNone, state, state},
		{ModeOSS, state, canon},
		{ModeDKS, canon, state},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			opts := Options{Mode: tt.mode}
			if tt.mode.Prunes() {
				opts.Source = SourcePrecomputed
			}
			p, err := NewPruner(opts, g)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.StateKey(state); !got.Equal(tt.wantKey) {
				t.Errorf("StateKey(%v) = %v, want %v", state, got, tt.wantKey)
			}
			if got := p.Successor(state); !got.Equal(tt.wantSuccessor) {
				t.Errorf("Successor(%v) = %v, want %v", state, got, tt.wantSuccessor)
			}
			if !state.Equal(perm.State{1, 0}) {
				t.Fatal("input state modified")
			}
		})
	}
}

func TestPruner_EmptyGroupBehavesLikeNone(t *testing.T) {
	g := precomputed(t, nil)
	for _, m := range []Mode{ModeOSS, ModeDKS} {
		p, err := NewPruner(Options{Mode: m, Source: SourceDiscover}, g)
		if err != nil {
			t.Fatal(err)
		}
		if p.Active() {
			t.Errorf("%s pruner active with an empty group", m)
		}
		st := perm.State{1, 0}
		if !p.StateKey(st).Equal(st) || !p.Successor(st).Equal(st) {
			t.Errorf("%s changed a state without generators", m)
		}
	}
}

func TestReconstruct(t *testing.T) {
	g := swapGroup(t)
	p, err := NewPruner(Options{Mode: ModeOSS, Source: SourcePrecomputed}, g)
	if err != nil {
		t.Fatal(err)
	}

	// Concrete start [1,0] is stored canonically as [0,1]. In canonical
	// space variable 0 is set to 1, giving [1,1].
	init := perm.State{1, 0}
	steps := []Step{
		{Parent: p.Successor(init), Successor: perm.State{1, 1}},
	}
	states, perms, err := p.Reconstruct(init, steps)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(states) != 2 || len(perms) != 1 {
		t.Fatalf("got %d states and %d permutations", len(states), len(perms))
	}
	if !states[0].Equal(init) || !states[1].Equal(perm.State{1, 1}) {
		t.Errorf("states = %v", states)
	}
	if !perms[0].Apply(steps[0].Parent).Equal(init) {
		t.Errorf("step permutation %v does not map %v onto %v", perms[0], steps[0].Parent, init)
	}
}

func TestReconstruct_TwoSteps(t *testing.T) {
	// Three ternary variables where 0 and 1 are interchangeable.
	s, err := perm.NewIndexSpace([]int{3, 3, 3})
	if err != nil {
		t.Fatal(err)
	}
	raw := perm.Seq(s.Len())
	raw[0], raw[1] = 1, 0
	for x := range 3 {
		raw[s.Index(0, x)], raw[s.Index(1, x)] = s.Index(1, x), s.Index(0, x)
	}
	g := group.New()
	if err := g.ComputeSymmetries(context.Background(), group.PrecomputedSource{Space: s, Generators: [][]int{raw}}); err != nil {
		t.Fatal(err)
	}
	p, err := NewPruner(Options{Mode: ModeOSS, Source: SourcePrecomputed}, g)
	if err != nil {
		t.Fatal(err)
	}

	init := perm.State{2, 0, 0}
	c0 := p.Successor(init) // [0,2,0]
	s1 := perm.State{0, 2, 1}
	c1 := p.Successor(s1)
	s2 := perm.State{1, 2, 1}
	states, perms, err := p.Reconstruct(init, []Step{{c0, s1}, {c1, s2}})
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	for i := 1; i < len(states); i++ {
		// Every concrete state is symmetric to the canonical successor.
		if !g.CanonicalRepresentative(states[i]).Equal(g.CanonicalRepresentative([]perm.State{s1, s2}[i-1])) {
			t.Errorf("state %d = %v is not in the orbit of the canonical path", i, states[i])
		}
	}
	if want := (perm.State{2, 0, 1}); !states[1].Equal(want) {
		t.Errorf("states[1] = %v, want %v", states[1], want)
	}
	if want := (perm.State{2, 1, 1}); !states[2].Equal(want) {
		t.Errorf("states[2] = %v, want %v", states[2], want)
	}
	for i, st := range []perm.State{c0, c1} {
		if !perms[i].Apply(st).Equal(states[i]) {
			t.Errorf("perms[%d] maps %v to %v, want %v", i, st, perms[i].Apply(st), states[i])
		}
	}
}

func TestReconstruct_CyclicGroup(t *testing.T) {
	// Four ternary variables rotated by one generator v -> v+1. The greedy
	// canonical form of a state and of its rotation can differ here.
	s, err := perm.NewIndexSpace([]int{3, 3, 3, 3})
	if err != nil {
		t.Fatal(err)
	}
	raw := make([]int, s.Len())
	for v := range 4 {
		raw[v] = (v + 1) % 4
		for x := range 3 {
			raw[s.Index(v, x)] = s.Index((v+1)%4, x)
		}
	}
	g := group.New()
	if err := g.ComputeSymmetries(context.Background(), group.PrecomputedSource{Space: s, Generators: [][]int{raw}}); err != nil {
		t.Fatal(err)
	}
	p, err := NewPruner(Options{Mode: ModeOSS, Source: SourcePrecomputed}, g)
	if err != nil {
		t.Fatal(err)
	}

	init := perm.State{2, 1, 0, 0}
	c0 := p.Successor(init) // [0,0,2,1]
	s1 := perm.State{1, 0, 0, 2}
	c1 := p.Successor(s1)
	s2 := perm.State{1, 1, 0, 2}
	if !c1.Equal(s1) {
		t.Fatalf("canonical(%v) = %v, want it unchanged", s1, c1)
	}

	states, perms, err := p.Reconstruct(init, []Step{{c0, s1}, {c1, s2}})
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	want := []perm.State{init, {0, 2, 1, 0}, {0, 2, 1, 1}}
	for i, w := range want {
		if !states[i].Equal(w) {
			t.Errorf("states[%d] = %v, want %v", i, states[i], w)
		}
	}
	for i, st := range []perm.State{c0, c1} {
		if got := perms[i].Apply(st); !got.Equal(states[i]) {
			t.Errorf("perms[%d] maps %v to %v, want %v", i, st, got, states[i])
		}
	}
	// The concrete state after one step does not canonicalize to c1.
	if g.CanonicalRepresentative(states[1]).Equal(c1) {
		t.Errorf("canonical(%v) = %v, expected a different greedy form", states[1], c1)
	}
}

func TestReconstruct_Errors(t *testing.T) {
	g := swapGroup(t)
	oss, _ := NewPruner(Options{Mode: ModeOSS, Source: SourcePrecomputed}, g)
	// [1,1] is not symmetric to [1,0].
	if _, _, err := oss.Reconstruct(perm.State{1, 0}, []Step{{perm.State{1, 1}, perm.State{0, 0}}}); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("asymmetric parent error = %v", err)
	}

	none, _ := NewPruner(Options{}, nil)
	if _, _, err := none.Reconstruct(perm.State{1, 0}, []Step{{perm.State{0, 1}, perm.State{0, 0}}}); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("disconnected path error = %v", err)
	}
	states, perms, err := none.Reconstruct(perm.State{1, 0}, []Step{{perm.State{1, 0}, perm.State{0, 0}}})
	if err != nil {
		t.Fatal(err)
	}
	if !states[1].Equal(perm.State{0, 0}) || perms[0] != nil {
		t.Errorf("ModeNone reconstruct = %v %v", states, perms)
	}
}

type recordingSearchHooks struct {
	mu          sync.Mutex
	canon       map[string]int
	changed     int
	duplicates  int
	lastDupMode string
}

func (r *recordingSearchHooks) OnCanonicalize(mode string, changed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canon[mode]++
	if changed {
		r.changed++
	}
}

func (r *recordingSearchHooks) OnDuplicate(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.duplicates++
	r.lastDupMode = mode
}

func TestCloseState_DKS(t *testing.T) {
	rec := &recordingSearchHooks{canon: make(map[string]int)}
	observability.SetSearchHooks(rec)
	t.Cleanup(observability.Reset)

	p, err := NewPruner(Options{Mode: ModeDKS, Source: SourcePrecomputed}, swapGroup(t))
	if err != nil {
		t.Fatal(err)
	}
	closed := NewMemoryClosedList()
	defer closed.Close()

	for i, tt := range []struct {
		state perm.State
		isNew bool
	}{
		{perm.State{0, 1}, true},
		{perm.State{1, 0}, false},
		{perm.State{1, 1}, true},
		{perm.State{0, 0}, true},
		{perm.State{0, 0}, false},
	} {
		got, err := p.CloseState(closed, tt.state)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.isNew {
			t.Errorf("#%d CloseState(%v) = %v, want %v", i, tt.state, got, tt.isNew)
		}
	}
	if closed.Len() != 3 {
		t.Errorf("Len() = %d, want 3", closed.Len())
	}
	if rec.duplicates != 2 || rec.lastDupMode != "dks" {
		t.Errorf("duplicates = %d (%s), want 2 (dks)", rec.duplicates, rec.lastDupMode)
	}
	if rec.canon["dks"] != 5 || rec.changed != 1 {
		t.Errorf("canonicalize events = %v, changed %d", rec.canon, rec.changed)
	}
}

func TestEncodeKey(t *testing.T) {
	for _, st := range []perm.State{{}, {0}, {1, 0, 300, 70000}} {
		enc := EncodeKey(nil, st)
		got, err := DecodeKey(enc)
		if err != nil {
			t.Fatalf("DecodeKey(%v): %v", enc, err)
		}
		if !got.Equal(st) {
			t.Errorf("DecodeKey(EncodeKey(%v)) = %v", st, got)
		}
	}
	for _, bad := range [][]byte{nil, {2, 1}, {1, 1, 1}, {0x80}} {
		if _, err := DecodeKey(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("DecodeKey(%v) error = %v", bad, err)
		}
	}
}

func TestMemoryClosedList(t *testing.T) {
	m := NewMemoryClosedList()
	const n = 5000
	for i := range n {
		st := perm.State{i % 7, i / 7, i}
		ok, err := m.Insert(st)
		if err != nil || !ok {
			t.Fatalf("Insert(%v) = %v, %v", st, ok, err)
		}
	}
	for i := range n {
		st := perm.State{i % 7, i / 7, i}
		if ok, _ := m.Insert(st); ok {
			t.Fatalf("second Insert(%v) reported new", st)
		}
		if ok, _ := m.Contains(st); !ok {
			t.Fatalf("Contains(%v) = false", st)
		}
	}
	if ok, _ := m.Contains(perm.State{0, 0, n}); ok {
		t.Error("Contains reports a key never inserted")
	}
	if m.Len() != n {
		t.Errorf("Len() = %d, want %d", m.Len(), n)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Insert(perm.State{0}); err == nil {
		t.Error("Insert after Close succeeded")
	}
}

func TestMemoryClosedList_Concurrent(t *testing.T) {
	m := NewMemoryClosedList()
	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				ok, err := m.Insert(perm.State{i})
				if err != nil {
					t.Error(err)
					return
				}
				if ok {
					mu.Lock()
					inserted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	if inserted != 200 || m.Len() != 200 {
		t.Errorf("inserted %d, Len %d, want 200", inserted, m.Len())
	}
}

func ExampleParseMode() {
	m, _ := ParseMode("DKS")
	fmt.Println(m, m.Prunes())
	// Output: dks true
}
