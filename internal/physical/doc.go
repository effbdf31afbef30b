// Package physical describes flat hardware stream bundles.
//
// A physical stream is the wire-level result of lowering a logical Stream
// node: an ordered set of element fields transferred over one or more lanes,
// together with dimensionality information and optional user-defined
// transfer content. The optional signals of a stream (last, stai, endi,
// strb, user) are governed by the stream's complexity level, a
// version-number-like guarantee contract between source and sink.
package physical
