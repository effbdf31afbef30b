package design

import (
	"github.com/tydi-hdl/tydi/internal/logical"
	"github.com/tydi-hdl/tydi/internal/name"
)

// Mode is the data direction of an interface as seen from outside its
// streamlet.
type Mode int

const (
	// In receives data.
	In Mode = iota
	// Out drives data.
	Out
)

// Reversed returns the opposite mode.
func (m Mode) Reversed() Mode {
	if m == In {
		return Out
	}
	return In
}

func (m Mode) String() string {
	if m == Out {
		return "out"
	}
	return "in"
}

// ParseMode parses the surface-syntax spelling of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "in":
		return In, nil
	case "out":
		return Out, nil
	default:
		return In, newError(ErrCodeNotFound, "%q is not an interface mode", s)
	}
}

// InferenceRule is the type-inference behaviour of an interface. When the
// interface becomes one endpoint of a fresh edge, the rule receives the
// opposing endpoint's type and may refine this interface's own type.
//
// The rule set is closed; pattern-specific propagation beyond it runs in
// the pattern's connect action instead.
type InferenceRule int

const (
	// InferIdentity leaves the interface type untouched.
	InferIdentity InferenceRule = iota

	// InferSamePeer adopts the peer's type as-is.
	InferSamePeer

	// InferDimMinus1 adopts the peer's stream type with its dimensionality
	// lowered by one. Non-stream peers and zero-dimensional peers leave the
	// type untouched.
	InferDimMinus1

	// InferStreamData adopts the payload type of the peer's stream. A
	// non-stream peer leaves the type untouched.
	InferStreamData
)

func (r InferenceRule) String() string {
	switch r {
	case InferSamePeer:
		return "SameAsPeer"
	case InferDimMinus1:
		return "DimMinus1"
	case InferStreamData:
		return "StreamDataOf"
	default:
		return "Identity"
	}
}

// Interface is one named, typed port of a streamlet.
type Interface struct {
	key   name.Name
	mode  Mode
	typ   logical.Type
	infer InferenceRule
	doc   string
}

// InterfaceOption configures an optional interface property.
type InterfaceOption func(*Interface)

// WithDoc attaches documentation text.
func WithDoc(doc string) InterfaceOption {
	return func(i *Interface) { i.doc = doc }
}

// WithInference selects the interface's type-inference rule.
func WithInference(rule InferenceRule) InterfaceOption {
	return func(i *Interface) { i.infer = rule }
}

// NewInterface constructs an interface. The key must be a valid name and
// must not collide with the reserved clock and reset ports.
func NewInterface(key string, mode Mode, typ logical.Type, opts ...InterfaceOption) (Interface, error) {
	k, err := name.NewInterfaceKey(key)
	if err != nil {
		return Interface{}, err
	}
	i := Interface{key: k, mode: mode, typ: typ}
	for _, opt := range opts {
		opt(&i)
	}
	return i, nil
}

// Key returns the interface name.
func (i Interface) Key() name.Name {
	return i.key
}

// Mode returns the data direction.
func (i Interface) Mode() Mode {
	return i.mode
}

// Type returns the logical type.
func (i Interface) Type() logical.Type {
	return i.typ
}

// Inference returns the type-inference rule.
func (i Interface) Inference() InferenceRule {
	return i.infer
}

// Doc returns the documentation text, if any.
func (i Interface) Doc() string {
	return i.doc
}

// Reversed returns a copy with the mode flipped and, for stream types, the
// stream direction flipped with it.
func (i Interface) Reversed() Interface {
	out := i
	out.mode = i.mode.Reversed()
	out.typ = logical.ReverseType(i.typ)
	return out
}

// Inferred applies the interface's inference rule against a peer type and
// returns the refined copy. Rules that do not apply leave the type
// unchanged rather than failing.
func (i Interface) Inferred(peer logical.Type) Interface {
	out := i
	switch i.infer {
	case InferSamePeer:
		out.typ = peer
	case InferDimMinus1:
		if s, ok := peer.(logical.Stream); ok && s.Dimensionality() >= 1 {
			if reduced, err := s.Rebuilt(logical.WithDimensionality(s.Dimensionality() - 1)); err == nil {
				out.typ = reduced
			}
		}
	case InferStreamData:
		if s, ok := peer.(logical.Stream); ok {
			out.typ = s.Data()
		}
	}
	return out
}
