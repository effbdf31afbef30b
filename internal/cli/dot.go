package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tydi-hdl/tydi/internal/design/composer"
	"github.com/tydi-hdl/tydi/internal/emit/dot"
)

// DotOptions holds flags for the dot command.
type DotOptions struct {
	*RootOptions
	Output string // output file path; stdout when empty
}

// NewDotCommand creates the dot command.
func NewDotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "dot <project-dir> <lib::streamlet>",
		Short:         "Render a structural implementation as a DOT graph",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDot(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runDot(opts *DotOptions, dir, target string, cmd *cobra.Command) error {
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

	handle, err := parseHandle(target)
	if err != nil {
		_ = formatter.Error("TARGET", err.Error())
		return WrapExitError(ExitCommandError, "resolving target", err)
	}
	sl, err := p.Streamlet(handle)
	if err != nil {
		_ = formatter.Error("TARGET", err.Error())
		return WrapExitError(ExitCommandError, "resolving target", err)
	}

	impl, ok := sl.Implementation()
	if !ok {
		err := fmt.Errorf("streamlet %s has no implementation", handle)
		_ = formatter.Error("NO_IMPL", err.Error())
		return WrapExitError(ExitCommandError, "rendering graph", err)
	}
	graph, ok := impl.(*composer.Graph)
	if !ok {
		err := fmt.Errorf("streamlet %s has a non-structural implementation", handle)
		_ = formatter.Error("NO_IMPL", err.Error())
		return WrapExitError(ExitCommandError, "rendering graph", err)
	}

	return writeArtifact(formatter, dot.Emit(graph), opts.Output)
}

// writeArtifact sends emitted text to a file or to stdout.
func writeArtifact(formatter *OutputFormatter, text, path string) error {
	if path == "" {
		fmt.Fprint(formatter.Writer, text)
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		_ = formatter.Error("WRITE", err.Error())
		return WrapExitError(ExitCommandError, "writing output file", err)
	}
	formatter.VerboseLog("Wrote %s", path)
	return nil
}
