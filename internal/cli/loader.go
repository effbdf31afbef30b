package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/design/composer"
	"github.com/tydi-hdl/tydi/internal/parser"
)

// BuildProject loads the manifest's source files into a project: each
// streamlet definition file becomes one library named after the file's
// base name, then the implementation files are assembled against the
// declared streamlets. Returns on the first error, formatted with the
// offending file and line when available.
func BuildProject(dir string, m Manifest) (*design.Project, error) {
	p, err := design.NewProject(m.Name)
	if err != nil {
		return nil, err
	}

	for _, rel := range m.Streamlets {
		if err := loadLibrary(p, dir, rel); err != nil {
			return nil, err
		}
	}

	for _, rel := range m.Impls {
		if err := loadImpls(p, dir, rel); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func loadLibrary(p *design.Project, dir, rel string) error {
	path := filepath.Join(dir, rel)
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read streamlet definitions: %w", err)
	}

	base := filepath.Base(rel)
	libName := strings.TrimSuffix(base, filepath.Ext(base))
	lib, err := p.AddLibrary(libName)
	if err != nil {
		return fmt.Errorf("%s: library name: %w", rel, err)
	}

	streamlets, err := parser.ParseStreamlets(rel, string(src))
	if err != nil {
		return err
	}
	for _, s := range streamlets {
		if _, err := lib.AddStreamlet(s); err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
	}
	return nil
}

func loadImpls(p *design.Project, dir, rel string) error {
	path := filepath.Join(dir, rel)
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read implementations: %w", err)
	}

	decls, err := parser.ParseImpls(rel, string(src))
	if err != nil {
		return err
	}
	for _, decl := range decls {
		if _, err := composer.Assemble(p, rel, decl); err != nil {
			return err
		}
	}
	return nil
}
