package design

import (
	"github.com/tydi-hdl/tydi/internal/name"
)

// Library is an ordered, key-unique collection of streamlets.
type Library struct {
	key        name.Name
	streamlets []*Streamlet
	index      map[name.Name]*Streamlet
}

// NewLibrary constructs an empty library.
func NewLibrary(key string) (*Library, error) {
	k, err := name.New(key)
	if err != nil {
		return nil, err
	}
	return &Library{key: k, index: make(map[name.Name]*Streamlet)}, nil
}

// Key returns the library name.
func (l *Library) Key() name.Name {
	return l.key
}

// AddStreamlet inserts a streamlet and returns the library-owned copy.
// Insertion under an existing key fails.
func (l *Library) AddStreamlet(s Streamlet) (*Streamlet, error) {
	if _, ok := l.index[s.Key()]; ok {
		return nil, newError(ErrCodeDuplicateKey, "library %q already has streamlet %q", l.key, s.Key())
	}
	owned := s.Clone()
	l.streamlets = append(l.streamlets, &owned)
	l.index[owned.Key()] = &owned
	return &owned, nil
}

// Streamlet looks up a streamlet by key.
func (l *Library) Streamlet(key name.Name) (*Streamlet, error) {
	s, ok := l.index[key]
	if !ok {
		return nil, newError(ErrCodeNotFound, "library %q has no streamlet %q", l.key, key)
	}
	return s, nil
}

// Streamlets returns the streamlets in insertion order.
func (l *Library) Streamlets() []*Streamlet {
	out := make([]*Streamlet, len(l.streamlets))
	copy(out, l.streamlets)
	return out
}
