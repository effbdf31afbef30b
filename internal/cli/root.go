package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/name"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tydi CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tydi",
		Short: "Tydi streaming hardware toolchain",
		Long:  "Compile Tydi streamlet definitions and structural implementations,\nlower logical types to physical streams, and emit back-end artifacts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewSynthCommand(opts))
	cmd.AddCommand(NewDotCommand(opts))
	cmd.AddCommand(NewVHDLCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// parseHandle parses a "lib::streamlet" argument.
func parseHandle(arg string) (design.StreamletHandle, error) {
	parts := strings.Split(arg, "::")
	if len(parts) != 2 {
		return design.StreamletHandle{}, fmt.Errorf("expected LIB::STREAMLET, got %q", arg)
	}
	return design.NewStreamletHandle(parts[0], parts[1])
}

// libraryByName resolves a library key argument.
func libraryByName(p *design.Project, libName string) (*design.Library, error) {
	key, err := name.New(libName)
	if err != nil {
		return nil, err
	}
	return p.Library(key)
}

// loadFromDir loads the manifest in dir and builds the project.
func loadFromDir(dir string, formatter *OutputFormatter) (*design.Project, Manifest, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		_ = formatter.Error("MANIFEST", err.Error())
		return nil, Manifest{}, WrapExitError(ExitCommandError, "loading manifest", err)
	}

	formatter.VerboseLog("Project %s: %d definition file(s), %d implementation file(s)",
		m.Name, len(m.Streamlets), len(m.Impls))

	p, err := BuildProject(dir, m)
	if err != nil {
		_ = formatter.Error("BUILD", err.Error())
		return nil, Manifest{}, WrapExitError(ExitCommandError, "building project", err)
	}
	return p, m, nil
}
