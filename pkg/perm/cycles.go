package perm

import (
	"fmt"
	"strconv"
	"strings"
)

// Cycles returns the non-trivial disjoint cycles of p. Each cycle starts at
// its smallest index and cycles are ordered by that index; fixed points are
// omitted. The result is computed once and shared, so callers must not
// modify it.
func (p *Permutation) Cycles() [][]int {
	p.cyclesOnce.Do(p.computeCycles)
	return p.cycles
}

// Order returns the least common multiple of the cycle lengths, i.e. the
// smallest k > 0 such that p composed k times is the identity.
func (p *Permutation) Order() int {
	p.cyclesOnce.Do(p.computeCycles)
	return p.order
}

func (p *Permutation) computeCycles() {
	p.order = 1
	seen := make([]bool, len(p.image))
	for start := range p.image {
		if seen[start] || p.image[start] == start {
			continue
		}
		var cycle []int
		for i := start; !seen[i]; i = p.image[i] {
			seen[i] = true
			cycle = append(cycle, i)
		}
		p.cycles = append(p.cycles, cycle)
		p.order = lcm(p.order, len(cycle))
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

// CycleNotation renders p in cycle notation, e.g. "(0 1)(2 4)(3 5)".
// The identity renders as "()".
func (p *Permutation) CycleNotation() string {
	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "()"
	}
	var b strings.Builder
	for _, cycle := range cycles {
		b.WriteByte('(')
		for k, i := range cycle {
			if k > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(i))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// String implements fmt.Stringer using cycle notation.
func (p *Permutation) String() string { return p.CycleNotation() }

// Fact is a single variable = value assignment.
type Fact struct {
	Var, Val int
}

func (f Fact) String() string { return fmt.Sprintf("v%d=%d", f.Var, f.Val) }

// Move records that p maps fact From onto fact To.
type Move struct {
	From, To Fact
}

// Moves returns every fact that p does not fix, in index order.
func (p *Permutation) Moves() []Move {
	var moves []Move
	for i := p.space.NumVars(); i < len(p.image); i++ {
		j := p.image[i]
		if i == j {
			continue
		}
		fv, fx := p.space.VarVal(i)
		tv, tx := p.space.VarVal(j)
		moves = append(moves, Move{From: Fact{fv, fx}, To: Fact{tv, tx}})
	}
	return moves
}

// MovedVars returns the variables p does not fix, in index order.
func (p *Permutation) MovedVars() []int {
	var vars []int
	for v := range p.space.NumVars() {
		if p.image[v] != v {
			vars = append(vars, v)
		}
	}
	return vars
}
