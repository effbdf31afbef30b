// Package composer builds structural implementations: directed graphs of
// streamlet instances whose interfaces are wired by typed edges. Nodes own
// cloned streamlets, so type inference on one instance never leaks into
// the library definition, and the graph's boundary node exposes the
// implemented streamlet with every interface reversed.
package composer
