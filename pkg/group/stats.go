package group

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Statistics summarizes a populated group.
type Statistics struct {
	Generators int `json:"generators"`

	// Orders holds the order of each generator in discovery order.
	Orders []int `json:"orders"`

	// OrderHistogram counts generators by order.
	OrderHistogram map[int]int `json:"order_histogram"`

	// Identities counts identity generators dropped during population.
	Identities int `json:"identities"`

	// Invalid counts precomputed generators dropped as invalid.
	Invalid int `json:"invalid"`

	Exhausted bool `json:"exhausted"`
}

// Statistics reports generator counts and orders.
func (g *Group) Statistics() Statistics {
	st := Statistics{
		Generators:     len(g.gens),
		Orders:         make([]int, len(g.gens)),
		OrderHistogram: make(map[int]int),
		Identities:     g.identities,
		Invalid:        g.invalid,
		Exhausted:      g.exhausted,
	}
	for i, p := range g.gens {
		o := p.Order()
		st.Orders[i] = o
		st.OrderHistogram[o]++
	}
	return st
}

// SortedOrders returns the distinct generator orders in increasing order.
func (s Statistics) SortedOrders() []int {
	orders := make([]int, 0, len(s.OrderHistogram))
	for o := range s.OrderHistogram {
		orders = append(orders, o)
	}
	slices.Sort(orders)
	return orders
}

// Dump writes every generator in cycle notation with the facts it moves,
// followed by the index tables of the group's space.
func (g *Group) Dump(w io.Writer) error {
	var b strings.Builder
	for i, p := range g.gens {
		fmt.Fprintf(&b, "Generator %d (order %d)\n", i, p.Order())
		fmt.Fprintf(&b, "  %s\n", p.CycleNotation())
		for _, m := range p.Moves() {
			fmt.Fprintf(&b, "  %s -> %s\n", m.From, m.To)
		}
	}
	if s := g.space; s != nil {
		fmt.Fprintf(&b, "Permutation length: %d\n", s.Len())
		fmt.Fprintf(&b, "Variables: %d\n", s.NumVars())
		fmt.Fprintf(&b, "dom_sum_by_var: %v\n", s.DomSumByVar())
		fmt.Fprintf(&b, "var_by_val: %v\n", s.VarByVal())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// VariableClasses partitions the variables into classes of variables that
// some chain of generators maps onto each other. Only classes with more
// than one variable are returned, each sorted, ordered by smallest member.
func (g *Group) VariableClasses() [][]int {
	if g.space == nil {
		return nil
	}
	n := g.space.NumVars()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, p := range g.gens {
		for v := range n {
			a, b := find(v), find(p.Value(v))
			if a != b {
				parent[max(a, b)] = min(a, b)
			}
		}
	}

	byRoot := make(map[int][]int)
	for v := range n {
		r := find(v)
		byRoot[r] = append(byRoot[r], v)
	}
	var classes [][]int
	for v := range n {
		if c := byRoot[v]; len(c) > 1 {
			classes = append(classes, c)
		}
	}
	return classes
}
