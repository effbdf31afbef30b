package design

import (
	"fmt"

	"github.com/tydi-hdl/tydi/internal/name"
)

// StreamletHandle addresses a streamlet within a project by library and
// streamlet key.
type StreamletHandle struct {
	Lib       name.Name
	Streamlet name.Name
}

// NewStreamletHandle builds a handle from raw key strings.
func NewStreamletHandle(lib, streamlet string) (StreamletHandle, error) {
	l, err := name.New(lib)
	if err != nil {
		return StreamletHandle{}, err
	}
	s, err := name.New(streamlet)
	if err != nil {
		return StreamletHandle{}, err
	}
	return StreamletHandle{Lib: l, Streamlet: s}, nil
}

// String renders the handle in source syntax.
func (h StreamletHandle) String() string {
	return fmt.Sprintf("%s::%s", h.Lib, h.Streamlet)
}
