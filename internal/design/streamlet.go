package design

import (
	"github.com/tydi-hdl/tydi/internal/logical"
	"github.com/tydi-hdl/tydi/internal/name"
)

// Streamlet is a named set of typed interfaces, optionally carrying one
// implementation.
type Streamlet struct {
	key    name.Name
	doc    string
	ifaces []Interface
	impl   Implementation
}

// NewStreamlet constructs a streamlet. Interface keys must be unique.
func NewStreamlet(key string, ifaces ...Interface) (Streamlet, error) {
	k, err := name.New(key)
	if err != nil {
		return Streamlet{}, err
	}
	seen := make(map[name.Name]struct{}, len(ifaces))
	for _, i := range ifaces {
		if _, ok := seen[i.Key()]; ok {
			return Streamlet{}, newError(ErrCodeDuplicateKey, "streamlet %q has duplicate interface %q", key, i.Key())
		}
		seen[i.Key()] = struct{}{}
	}
	out := make([]Interface, len(ifaces))
	copy(out, ifaces)
	return Streamlet{key: k, ifaces: out}, nil
}

// Key returns the streamlet name.
func (s *Streamlet) Key() name.Name {
	return s.key
}

// Doc returns the documentation text, if any.
func (s *Streamlet) Doc() string {
	return s.doc
}

// SetDoc attaches documentation text.
func (s *Streamlet) SetDoc(doc string) {
	s.doc = doc
}

// Interfaces returns the interfaces in declaration order.
func (s *Streamlet) Interfaces() []Interface {
	out := make([]Interface, len(s.ifaces))
	copy(out, s.ifaces)
	return out
}

// Inputs returns the interfaces with mode In, in declaration order.
func (s *Streamlet) Inputs() []Interface {
	return s.filter(In)
}

// Outputs returns the interfaces with mode Out, in declaration order.
func (s *Streamlet) Outputs() []Interface {
	return s.filter(Out)
}

func (s *Streamlet) filter(mode Mode) []Interface {
	var out []Interface
	for _, i := range s.ifaces {
		if i.Mode() == mode {
			out = append(out, i)
		}
	}
	return out
}

// Interface looks up an interface by key.
func (s *Streamlet) Interface(key name.Name) (Interface, error) {
	for _, i := range s.ifaces {
		if i.Key() == key {
			return i, nil
		}
	}
	return Interface{}, newError(ErrCodeNotFound, "streamlet %q has no interface %q", s.key, key)
}

// SetInterfaceType replaces the type of one interface. This is the single
// write path used by type inference during connection.
func (s *Streamlet) SetInterfaceType(key name.Name, typ logical.Type) error {
	for idx := range s.ifaces {
		if s.ifaces[idx].key == key {
			s.ifaces[idx].typ = typ
			return nil
		}
	}
	return newError(ErrCodeNotFound, "streamlet %q has no interface %q", s.key, key)
}

// AttachImplementation attaches the streamlet's implementation. A second
// attachment fails.
func (s *Streamlet) AttachImplementation(impl Implementation) error {
	if s.impl != nil {
		return newError(ErrCodeImplExists, "streamlet %q already has an implementation", s.key)
	}
	s.impl = impl
	return nil
}

// Implementation returns the attached implementation, if any.
func (s *Streamlet) Implementation() (Implementation, bool) {
	return s.impl, s.impl != nil
}

// Clone returns a deep copy with its own interface storage. The
// implementation reference is shared; implementations are immutable once
// attached.
func (s *Streamlet) Clone() Streamlet {
	out := *s
	out.ifaces = make([]Interface, len(s.ifaces))
	copy(out.ifaces, s.ifaces)
	return out
}

// Reversed returns a clone with every interface mode flipped. The
// composer uses this for the graph's own boundary node, where an
// externally declared input is a driver on the inside. The types are kept
// as declared so boundary edges still compare equal to their peers.
func (s *Streamlet) Reversed() Streamlet {
	out := s.Clone()
	for idx := range out.ifaces {
		out.ifaces[idx].mode = out.ifaces[idx].mode.Reversed()
	}
	return out
}
