package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // build database path
}

// CompileSummary is the per-library summary of a successful compile.
type CompileSummary struct {
	Project   string           `json:"project"`
	Libraries []LibrarySummary `json:"libraries"`
}

// LibrarySummary lists the streamlets of one compiled library.
type LibrarySummary struct {
	Name       string   `json:"name"`
	Streamlets []string `json:"streamlets"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <project-dir>",
		Short: "Compile a project's definitions and implementations",
		Long: `Compile the streamlet definition and implementation files listed in
the project manifest (tydi.yaml). Each definition file becomes one
library; implementations are type-checked against the declared
streamlets. With --output, the compiled project is persisted to a
SQLite build database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "build database path")

	return cmd
}

func runCompile(opts *CompileOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	p, m, err := loadFromDir(dir, formatter)
	if err != nil {
		return err
	}

	// The flag wins over the manifest's output directory.
	output := opts.Output
	if output == "" && m.Output != "" {
		output = filepath.Join(dir, m.Output, "build.db")
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			_ = formatter.Error("STORE", err.Error())
			return WrapExitError(ExitCommandError, "creating output directory", err)
		}
	}

	if output != "" {
		if err := writeBuildDatabase(cmd.Context(), p, output); err != nil {
			_ = formatter.Error("STORE", err.Error())
			return WrapExitError(ExitCommandError, "writing build database", err)
		}
		formatter.VerboseLog("Wrote build database to %s", output)
	}

	return outputCompileSummary(formatter, p, output)
}

func writeBuildDatabase(ctx context.Context, p *design.Project, path string) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.WriteProject(ctx, p)
}

func outputCompileSummary(formatter *OutputFormatter, p *design.Project, outputFile string) error {
	summary := CompileSummary{Project: string(p.Name())}
	for _, lib := range p.Libraries() {
		ls := LibrarySummary{Name: string(lib.Key())}
		for _, sl := range lib.Streamlets() {
			ls.Streamlets = append(ls.Streamlets, string(sl.Key()))
		}
		summary.Libraries = append(summary.Libraries, ls)
	}

	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	var streamlets int
	for _, lib := range summary.Libraries {
		streamlets += len(lib.Streamlets)
	}
	fmt.Fprintf(formatter.Writer, "Compiled %d library(ies), %d streamlet(s)\n",
		len(summary.Libraries), streamlets)
	for _, lib := range summary.Libraries {
		for _, sl := range lib.Streamlets {
			fmt.Fprintf(formatter.Writer, "  %s::%s\n", lib.Name, sl)
		}
	}
	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote build database to %s\n", outputFile)
	}
	return nil
}
