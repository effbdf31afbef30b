// Package dot renders structural implementation graphs as Graphviz
// digraphs: one cluster per node, one ellipse per interface, colored by
// mode, and one edge per committed connection. Output is deterministic
// for a given graph.
package dot

import (
	"fmt"
	"strings"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/design/composer"
)

// Style selects the cluster and port colors. Fill/border pairs come in
// matched tones.
type Style struct {
	ClusterFill   string
	ClusterBorder string
	InFill        string
	InBorder      string
	OutFill       string
	OutBorder     string
}

// DefaultStyle is the standard palette: gray clusters, green inputs,
// cyan outputs.
func DefaultStyle() Style {
	return Style{
		ClusterFill:   "#ffffff",
		ClusterBorder: "#c4c4c4",
		InFill:        "#6acc64",
		InBorder:      "#12711c",
		OutFill:       "#82c6e2",
		OutBorder:     "#006374",
	}
}

// Emit renders g with the default style.
func Emit(g *composer.Graph) string {
	return EmitStyled(g, DefaultStyle())
}

// EmitStyled renders g as a digraph. Nodes appear in declaration order,
// interfaces in streamlet declaration order, edges in connection order.
func EmitStyled(g *composer.Graph, style Style) string {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", identifier(g.Owner().String()))
	b.WriteString("  rankdir=LR;\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&b, "  subgraph cluster_%s {\n", n.Key())
		fmt.Fprintf(&b, "    label=\"%s : %s\";\n", n.Key(), n.Handle())
		b.WriteString("    style=filled;\n")
		fmt.Fprintf(&b, "    fillcolor=\"%s\";\n", style.ClusterFill)
		fmt.Fprintf(&b, "    color=\"%s\";\n", style.ClusterBorder)
		for _, i := range n.Streamlet().Interfaces() {
			fill, border := style.InFill, style.InBorder
			if i.Mode() == design.Out {
				fill, border = style.OutFill, style.OutBorder
			}
			fmt.Fprintf(&b,
				"    %s_%s [label=\"%s\", shape=ellipse, style=filled, fillcolor=\"%s\", color=\"%s\"];\n",
				n.Key(), i.Key(), i.Key(), fill, border)
		}
		b.WriteString("  }\n")
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %s_%s -> %s_%s;\n",
			e.Source.Node, e.Source.Iface, e.Sink.Node, e.Sink.Iface)
	}

	b.WriteString("}\n")
	return b.String()
}

// identifier turns a streamlet handle into a DOT-safe graph name.
func identifier(s string) string {
	return strings.ReplaceAll(s, "::", "_")
}
