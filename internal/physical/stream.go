package physical

// Direction states whether a stream flows with or against the interface
// that declares it.
type Direction int

const (
	// Forward flows from the declaring source to the sink.
	Forward Direction = iota
	// Reverse flows against the declaring interface's mode.
	Reverse
)

// Reversed returns the opposite direction.
func (d Direction) Reversed() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

func (d Direction) String() string {
	if d == Reverse {
		return "Reverse"
	}
	return "Forward"
}

// Stream is a flat physical stream bundle.
//
// A physical stream carries elements over ElementLanes data lanes per
// transfer, dimensionality information for nested sequences, and optional
// user-defined transfer content.
type Stream struct {
	elementFields  Fields
	elementLanes   uint32
	dimensionality uint32
	complexity     Complexity
	user           Fields
	direction      Direction
}

// NewStream constructs a physical stream. ElementLanes must be at least 1.
func NewStream(elementFields Fields, elementLanes, dimensionality uint32, complexity Complexity, user Fields, direction Direction) (Stream, error) {
	if elementLanes == 0 {
		return Stream{}, &Error{Code: ErrCodeZeroLanes, Message: "element lanes cannot be zero"}
	}
	return Stream{
		elementFields:  elementFields,
		elementLanes:   elementLanes,
		dimensionality: dimensionality,
		complexity:     complexity,
		user:           user,
		direction:      direction,
	}, nil
}

// ElementFields returns the element content of the stream.
func (s Stream) ElementFields() Fields {
	return s.elementFields
}

// ElementLanes returns the number of element lanes per transfer.
func (s Stream) ElementLanes() uint32 {
	return s.elementLanes
}

// Dimensionality returns the sequence nesting depth of the stream.
func (s Stream) Dimensionality() uint32 {
	return s.dimensionality
}

// Complexity returns the complexity level of the stream.
func (s Stream) Complexity() Complexity {
	return s.complexity
}

// UserFields returns the user-defined transfer content.
func (s Stream) UserFields() Fields {
	return s.user
}

// Direction returns the direction of the stream.
func (s Stream) Direction() Direction {
	return s.direction
}

// DataBitCount returns the width of the data signal: the combined field
// width multiplied by the number of lanes.
func (s Stream) DataBitCount() uint32 {
	return s.elementFields.Width() * s.elementLanes
}

// LastBitCount returns the width of the last signal, or 0 when absent.
// Last is present when the stream is dimensional and the complexity level
// guarantees per-lane last markers can be interpreted (level 2 and up).
func (s Stream) LastBitCount() uint32 {
	if s.dimensionality >= 1 && s.complexity.MajorLevel() >= 2 {
		return s.elementLanes * s.dimensionality
	}
	return 0
}

// StaiBitCount returns the width of the start-index signal, or 0 when absent.
func (s Stream) StaiBitCount() uint32 {
	if s.elementLanes > 1 && s.complexity.MajorLevel() >= 6 {
		return Log2Ceil(s.elementLanes)
	}
	return 0
}

// EndiBitCount returns the width of the end-index signal, or 0 when absent.
func (s Stream) EndiBitCount() uint32 {
	if s.elementLanes > 1 && s.complexity.MajorLevel() >= 6 {
		return Log2Ceil(s.elementLanes)
	}
	return 0
}

// StrbBitCount returns the width of the strobe signal, or 0 when absent.
func (s Stream) StrbBitCount() uint32 {
	if s.complexity.MajorLevel() >= 7 || s.dimensionality >= 1 {
		return s.elementLanes
	}
	return 0
}

// UserBitCount returns the combined width of the user fields.
func (s Stream) UserBitCount() uint32 {
	return s.user.Width()
}

// Signal is one wire bundle of a physical stream. Reversed signals flow
// against the stream direction (ready is the only one).
type Signal struct {
	Name     string
	Width    uint32
	Reversed bool
}

// SignalList returns the stream's signals in the canonical wire layout
// order: valid, ready, data, last, stai, endi, strb, user. Optional signals
// with zero width are omitted.
func (s Stream) SignalList() []Signal {
	signals := []Signal{
		{Name: "valid", Width: 1},
		{Name: "ready", Width: 1, Reversed: true},
	}
	opt := func(n string, w uint32) {
		if w > 0 {
			signals = append(signals, Signal{Name: n, Width: w})
		}
	}
	opt("data", s.DataBitCount())
	opt("last", s.LastBitCount())
	opt("stai", s.StaiBitCount())
	opt("endi", s.EndiBitCount())
	opt("strb", s.StrbBitCount())
	opt("user", s.UserBitCount())
	return signals
}

// BitCount returns the combined width of all signals except valid and ready.
func (s Stream) BitCount() uint32 {
	return s.DataBitCount() +
		s.LastBitCount() +
		s.StaiBitCount() +
		s.EndiBitCount() +
		s.StrbBitCount() +
		s.UserBitCount()
}

// Reversed returns a copy of the stream flowing in the opposite direction.
func (s Stream) Reversed() Stream {
	out := s
	out.direction = s.direction.Reversed()
	return out
}

// Equal reports full structural equality of two physical streams.
func (s Stream) Equal(other Stream) bool {
	return s.elementLanes == other.elementLanes &&
		s.dimensionality == other.dimensionality &&
		s.direction == other.direction &&
		s.complexity.Eq(other.complexity) &&
		s.elementFields.Equal(other.elementFields) &&
		s.user.Equal(other.user)
}

// Log2Ceil returns ceil(log2(x)). Log2Ceil(0) and Log2Ceil(1) are 0.
func Log2Ceil(x uint32) uint32 {
	var n uint32
	for (uint64(1) << n) < uint64(x) {
		n++
	}
	return n
}
