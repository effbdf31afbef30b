// Package vhdl renders streamlets as VHDL component declarations. Each
// interface is lowered to its physical streams and expanded into
// valid/ready/data ports; every component carries the reserved clk and
// rst inputs. The package emits declarations only, leaving architectures
// to downstream tooling.
package vhdl

import (
	"fmt"
	"strings"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/logical"
	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/physical"
)

// port is one resolved VHDL port.
type port struct {
	name  string
	in    bool
	width uint32
}

// EmitPackage renders a VHDL package declaring one component per
// streamlet in the library, in insertion order.
func EmitPackage(lib *design.Library) (string, error) {
	var b strings.Builder
	b.WriteString("library ieee;\n")
	b.WriteString("use ieee.std_logic_1164.all;\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "package %s_pkg is\n", lib.Key())

	for idx, s := range lib.Streamlets() {
		if idx > 0 {
			b.WriteString("\n")
		}
		component, err := EmitComponent(s)
		if err != nil {
			return "", fmt.Errorf("streamlet %q: %w", s.Key(), err)
		}
		b.WriteString(indent(component, "  "))
	}

	fmt.Fprintf(&b, "end package %s_pkg;\n", lib.Key())
	return b.String(), nil
}

// EmitComponent renders one component declaration. Interface ports are
// expanded in declaration order; within one lowered stream the signals
// follow the canonical wire layout order.
func EmitComponent(s *design.Streamlet) (string, error) {
	ports := []port{
		{name: name.Clk, in: true, width: 1},
		{name: name.Rst, in: true, width: 1},
	}
	for _, i := range s.Interfaces() {
		expanded, err := interfacePorts(i)
		if err != nil {
			return "", err
		}
		ports = append(ports, expanded...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "component %s\n", s.Key())
	b.WriteString("  port (\n")
	for idx, p := range ports {
		sep := ";"
		if idx == len(ports)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    %s : %s %s%s\n", p.name, direction(p.in), portType(p.width), sep)
	}
	b.WriteString("  );\n")
	fmt.Fprintf(&b, "end component %s;\n", s.Key())
	return b.String(), nil
}

func interfacePorts(i design.Interface) ([]port, error) {
	syn, err := logical.Synthesize(i.Type())
	if err != nil {
		return nil, err
	}

	var ports []port
	// Element-only residue fields become plain wires in the interface
	// direction.
	for _, f := range syn.Signals().Iter() {
		ports = append(ports, port{
			name:  joinName(string(i.Key()), f.Name),
			in:    i.Mode() == design.In,
			width: f.Width,
		})
	}
	for _, ls := range syn.Streams() {
		prefix := joinName(string(i.Key()), ls.Path)
		forwardIn := i.Mode() == design.In
		if ls.Stream.Direction() == physical.Reverse {
			forwardIn = !forwardIn
		}
		for _, sig := range ls.Stream.SignalList() {
			in := forwardIn
			if sig.Reversed {
				in = !in
			}
			ports = append(ports, port{
				name:  prefix + "_" + sig.Name,
				in:    in,
				width: sig.Width,
			})
		}
	}
	return ports, nil
}

func joinName(base string, path name.PathName) string {
	if path.IsEmpty() {
		return base
	}
	return base + "_" + path.Join("_")
}

func direction(in bool) string {
	if in {
		return "in"
	}
	return "out"
}

func portType(width uint32) string {
	if width == 1 {
		return "std_logic"
	}
	return fmt.Sprintf("std_logic_vector(%d downto 0)", width-1)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
