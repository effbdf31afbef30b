// Package chisel reserves the Chisel back-end. The surface is declared so
// drivers can route to it, but no generator exists behind it yet; every
// call reports the unimplemented error kind, which callers may downgrade
// to a warning.
package chisel

import (
	"github.com/tydi-hdl/tydi/internal/design"
)

// EmitComponent reports that the Chisel back-end is not implemented.
func EmitComponent(s *design.Streamlet) (string, error) {
	return "", &design.Error{
		Code:    design.ErrCodeUnimplemented,
		Message: "the chisel back-end is declared but not implemented",
	}
}
