package logical

import (
	"math"

	"github.com/tydi-hdl/tydi/internal/physical"
)

// Synchronicity relates a child stream's dimensions to its parent's.
type Synchronicity int

const (
	// Sync: the child shares and extends the parent's dimensions.
	Sync Synchronicity = iota
	// Flatten: the child drops the parent's dimensions.
	Flatten
	// Desync: the child carries its own copy of the parent's dimensions.
	Desync
	// FlatDesync: the child is fully decoupled from the parent's dimensions.
	FlatDesync
)

func (s Synchronicity) String() string {
	switch s {
	case Flatten:
		return "Flatten"
	case Desync:
		return "Desync"
	case FlatDesync:
		return "FlatDesync"
	default:
		return "Sync"
	}
}

// ParseSynchronicity parses the surface-syntax spelling of a synchronicity.
func ParseSynchronicity(s string) (Synchronicity, error) {
	switch s {
	case "Sync":
		return Sync, nil
	case "Flatten":
		return Flatten, nil
	case "Desync":
		return Desync, nil
	case "FlatDesync":
		return FlatDesync, nil
	default:
		return Sync, newTypeError(ErrCodeBadSelection, "%q is not a synchronicity", s)
	}
}

// Stream declares how a payload type is transported over a physical stream.
type Stream struct {
	data           Type
	throughput     float64
	dimensionality uint32
	synchronicity  Synchronicity
	complexity     physical.Complexity
	direction      physical.Direction
	user           Type // nil when absent
	keep           bool
}

func (Stream) logicalType() {}

// StreamOption configures an optional stream parameter.
type StreamOption func(*Stream)

// WithThroughput sets the minimum number of elements per cycle. Must be
// positive; fractions below one shift the slack to back-pressure.
func WithThroughput(t float64) StreamOption {
	return func(s *Stream) { s.throughput = t }
}

// WithDimensionality sets the sequence nesting depth carried by the stream.
func WithDimensionality(d uint32) StreamOption {
	return func(s *Stream) { s.dimensionality = d }
}

// WithSynchronicity sets the relation to the parent stream's dimensions.
func WithSynchronicity(sync Synchronicity) StreamOption {
	return func(s *Stream) { s.synchronicity = sync }
}

// WithComplexity sets the complexity level.
func WithComplexity(c physical.Complexity) StreamOption {
	return func(s *Stream) { s.complexity = c }
}

// WithDirection sets the direction relative to the declaring interface.
func WithDirection(d physical.Direction) StreamOption {
	return func(s *Stream) { s.direction = d }
}

// WithUser attaches user-defined transfer content. The type must be
// element-only.
func WithUser(u Type) StreamOption {
	return func(s *Stream) { s.user = u }
}

// WithKeep forces the stream to exist even when its payload is null.
func WithKeep(keep bool) StreamOption {
	return func(s *Stream) { s.keep = keep }
}

// NewStream constructs a Stream carrying data. Defaults: throughput 1,
// dimensionality 0, Sync, complexity 0, Forward, no user content, keep off.
func NewStream(data Type, opts ...StreamOption) (Stream, error) {
	s := Stream{
		data:       data,
		throughput: 1,
		complexity: physical.DefaultComplexity(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return Stream{}, err
	}
	return s, nil
}

// Lane counts are lowered to uint32; a throughput beyond that range has no
// physical representation.
const maxThroughput = float64(math.MaxUint32)

func (s Stream) validate() error {
	if !(s.throughput > 0) {
		return newTypeError(ErrCodeBadThroughput, "stream throughput must be positive, got %v", s.throughput)
	}
	if s.throughput > maxThroughput {
		return newTypeError(ErrCodeBadThroughput, "stream throughput %v exceeds the representable lane count", s.throughput)
	}
	if s.user != nil && !IsElementOnly(s.user) {
		return newTypeError(ErrCodeNonElementUser, "stream user type must not contain nested streams")
	}
	return nil
}

// Rebuilt returns a copy of the stream with opts applied on top of its
// current parameters, revalidated like NewStream.
func (s Stream) Rebuilt(opts ...StreamOption) (Stream, error) {
	out := s
	for _, opt := range opts {
		opt(&out)
	}
	if err := out.validate(); err != nil {
		return Stream{}, err
	}
	return out, nil
}

// Data returns the payload type.
func (s Stream) Data() Type {
	return s.data
}

// Throughput returns the minimum elements-per-cycle ratio.
func (s Stream) Throughput() float64 {
	return s.throughput
}

// Dimensionality returns the sequence nesting depth.
func (s Stream) Dimensionality() uint32 {
	return s.dimensionality
}

// Synchronicity returns the parent-dimension relation.
func (s Stream) Synchronicity() Synchronicity {
	return s.synchronicity
}

// Complexity returns the complexity level.
func (s Stream) Complexity() physical.Complexity {
	return s.complexity
}

// Direction returns the direction relative to the declaring interface.
func (s Stream) Direction() physical.Direction {
	return s.direction
}

// User returns the user transfer content, if any.
func (s Stream) User() (Type, bool) {
	return s.user, s.user != nil
}

// Keep reports whether the stream is retained when its payload is null.
func (s Stream) Keep() bool {
	return s.keep
}

// Reversed returns a copy of the stream flowing in the opposite direction.
func (s Stream) Reversed() Stream {
	out := s
	out.direction = s.direction.Reversed()
	return out
}
