package cli

import (
	"github.com/spf13/cobra"

	"github.com/tydi-hdl/tydi/internal/emit/vhdl"
)

// VHDLOptions holds flags for the vhdl command.
type VHDLOptions struct {
	*RootOptions
	Output string // output file path; stdout when empty
}

// NewVHDLCommand creates the vhdl command.
func NewVHDLCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VHDLOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "vhdl <project-dir> <library>",
		Short:         "Emit a VHDL package declaring a library's components",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVHDL(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runVHDL(opts *VHDLOptions, dir, libName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	p, _, err := loadFromDir(dir, formatter)
	if err != nil {
		return err
	}

	lib, err := libraryByName(p, libName)
	if err != nil {
		_ = formatter.Error("TARGET", err.Error())
		return WrapExitError(ExitCommandError, "resolving library", err)
	}

	text, err := vhdl.EmitPackage(lib)
	if err != nil {
		_ = formatter.Error("EMIT", err.Error())
		return WrapExitError(ExitCommandError, "emitting package", err)
	}

	return writeArtifact(formatter, text, opts.Output)
}
