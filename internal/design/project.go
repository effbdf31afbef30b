package design

import (
	"github.com/tydi-hdl/tydi/internal/name"
)

// GenLibrary is the reserved library key under which pattern factories
// register generated streamlets.
const GenLibrary name.Name = "gen"

// Project is the root registry: an ordered, key-unique collection of
// libraries.
type Project struct {
	name  name.Name
	libs  []*Library
	index map[name.Name]*Library
}

// NewProject constructs an empty project.
func NewProject(projectName string) (*Project, error) {
	n, err := name.New(projectName)
	if err != nil {
		return nil, err
	}
	return &Project{name: n, index: make(map[name.Name]*Library)}, nil
}

// Name returns the project name.
func (p *Project) Name() name.Name {
	return p.name
}

// AddLibrary creates and inserts an empty library. Insertion under an
// existing key fails.
func (p *Project) AddLibrary(key string) (*Library, error) {
	lib, err := NewLibrary(key)
	if err != nil {
		return nil, err
	}
	if _, ok := p.index[lib.Key()]; ok {
		return nil, newError(ErrCodeDuplicateKey, "project %q already has library %q", p.name, lib.Key())
	}
	p.libs = append(p.libs, lib)
	p.index[lib.Key()] = lib
	return lib, nil
}

// Library looks up a library by key.
func (p *Project) Library(key name.Name) (*Library, error) {
	lib, ok := p.index[key]
	if !ok {
		return nil, newError(ErrCodeNotFound, "project %q has no library %q", p.name, key)
	}
	return lib, nil
}

// Libraries returns the libraries in insertion order.
func (p *Project) Libraries() []*Library {
	out := make([]*Library, len(p.libs))
	copy(out, p.libs)
	return out
}

// EnsureGenLibrary returns the reserved generated-streamlet library,
// creating it on first use.
func (p *Project) EnsureGenLibrary() *Library {
	if lib, ok := p.index[GenLibrary]; ok {
		return lib
	}
	lib, err := p.AddLibrary(string(GenLibrary))
	if err != nil {
		// The key is a valid name and absent from the index.
		panic(err)
	}
	return lib
}

// Streamlet resolves a handle to the project-owned streamlet.
func (p *Project) Streamlet(h StreamletHandle) (*Streamlet, error) {
	lib, err := p.Library(h.Lib)
	if err != nil {
		return nil, err
	}
	return lib.Streamlet(h.Streamlet)
}
