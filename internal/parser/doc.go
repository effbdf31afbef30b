// Package parser reads the two surface syntaxes: streamlet definition
// files declaring typed interfaces, and structural implementation files
// wiring streamlet instances into graphs. Both parsers are hand-rolled
// recursive descent over a small line-tracking scanner; every error
// carries the file name and line number.
package parser
