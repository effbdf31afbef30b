// Package name provides validated identifiers and hierarchical path names.
//
// Every key in a design (library names, streamlet names, interface names,
// node names) is a Name. A Name matches [A-Za-z_][A-Za-z0-9_]*. The words
// "clk" and "rst" are valid names but reserved for clock and reset signals,
// so they are rejected wherever interface keys are constructed. The word
// "this" is reserved for the pseudo-node that represents a composition's own
// boundary.
//
// A PathName addresses a nested field after a logical type has been lowered
// to physical streams. The empty path addresses the root.
package name
