// Package logical implements the logical stream type algebra and its
// lowering to physical streams.
//
// A logical type is a recursive description of the data carried by an
// interface: Null, Bits, Group, Union, or Stream. Stream nodes declare how
// their payload is transported (throughput, dimensionality, synchronicity,
// complexity, direction); the other variants describe element content.
//
// Synthesize lowers a logical type to its flat wire-level form: an ordered
// element bundle for the non-stream residue, plus one physical stream per
// reachable Stream node, keyed by the field path leading to it.
package logical
