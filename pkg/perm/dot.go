package perm

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the cycle structure of p.
//
// Only indices that p moves appear in the graph; each is connected to its
// image, so every non-trivial cycle shows up as a directed ring.
//
// Node representation:
//   - Variables: labeled with the variable name, ellipse shape
//   - Facts: labeled "name=value", rounded box shape
//
// If names[v] exists, variable v is shown as names[v], otherwise as "v<index>".
// Pass nil to use default names. The names slice is not modified.
//
// Example:
//
//	dot := swap.ToDOT([]string{"truck1", "truck2"})
//	// Use 'dot' command or RenderSVG to visualize
func (p *Permutation) ToDOT(names []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Permutation {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n\n")

	for _, cycle := range p.Cycles() {
		for _, i := range cycle {
			if p.space.IsVar(i) {
				fmt.Fprintf(&buf, "  n%d [label=%q, shape=ellipse];\n", i, p.varName(i, names))
			} else {
				v, x := p.space.VarVal(i)
				fmt.Fprintf(&buf, "  n%d [label=%q, shape=box, style=\"filled,rounded\"];\n", i,
					fmt.Sprintf("%s=%d", p.varName(v, names), x))
			}
		}
		for _, i := range cycle {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", i, p.image[i])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (p *Permutation) varName(v int, names []string) string {
	if v < len(names) && names[v] != "" {
		return names[v]
	}
	return fmt.Sprintf("v%d", v)
}

// RenderSVG renders the cycle structure of p as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it to SVG format. The names parameter is passed to ToDOT.
//
// All errors are wrapped with context using fmt.Errorf with %w.
func (p *Permutation) RenderSVG(names []string) ([]byte, error) {
	dot := p.ToDOT(names)

	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
