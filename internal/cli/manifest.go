package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tydi-hdl/tydi/internal/name"
)

// ManifestName is the project manifest file looked up in a project
// directory.
const ManifestName = "tydi.yaml"

// Manifest describes a project: its name, the streamlet definition files,
// the structural implementation files, and an optional output directory
// for generated artifacts. Paths are relative to the manifest directory.
type Manifest struct {
	Name       string   `yaml:"name"`
	Streamlets []string `yaml:"streamlets"`
	Impls      []string `yaml:"impls"`
	Output     string   `yaml:"output"`
}

// LoadManifest reads and validates the manifest in dir.
func LoadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}

	if m.Name == "" {
		return Manifest{}, fmt.Errorf("%s: project name is required", path)
	}
	if _, err := name.New(m.Name); err != nil {
		return Manifest{}, fmt.Errorf("%s: project name: %w", path, err)
	}
	if len(m.Streamlets) == 0 {
		return Manifest{}, fmt.Errorf("%s: at least one streamlet definition file is required", path)
	}
	return m, nil
}
