package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tydi-hdl/tydi/internal/logical"
)

// SynthSummary is the lowered form of one streamlet.
type SynthSummary struct {
	Streamlet  string           `json:"streamlet"`
	Interfaces []SynthInterface `json:"interfaces"`
}

// SynthInterface is one lowered interface.
type SynthInterface struct {
	Name    string        `json:"name"`
	Mode    string        `json:"mode"`
	Type    string        `json:"type"`
	Signals []SynthSignal `json:"signals,omitempty"`
	Streams []SynthStream `json:"streams,omitempty"`
}

// SynthSignal is one element-residue wire.
type SynthSignal struct {
	Name  string `json:"name"`
	Width uint32 `json:"width"`
}

// SynthStream is one lowered physical stream.
type SynthStream struct {
	Path           string        `json:"path"`
	Lanes          uint32        `json:"lanes"`
	Dimensionality uint32        `json:"dimensionality"`
	Complexity     string        `json:"complexity"`
	Direction      string        `json:"direction"`
	Signals        []SynthSignal `json:"signals"`
}

// NewSynthCommand creates the synth command.
func NewSynthCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth <project-dir> <lib::streamlet>",
		Short: "Lower a streamlet's interfaces to physical streams",
		Long: `Lower every interface of the named streamlet and print the resulting
physical streams with their resolved signal widths.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runSynth(opts *RootOptions, dir, target string, cmd *cobra.Command) error {
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

	summary := SynthSummary{Streamlet: handle.String()}
	for _, iface := range sl.Interfaces() {
		syn, err := logical.Synthesize(iface.Type())
		if err != nil {
			_ = formatter.Error("SYNTH", err.Error())
			return WrapExitError(ExitCommandError, "lowering failed", err)
		}

		si := SynthInterface{
			Name: string(iface.Key()),
			Mode: iface.Mode().String(),
			Type: logical.TypeString(iface.Type()),
		}
		for _, f := range syn.Signals().Iter() {
			si.Signals = append(si.Signals, SynthSignal{Name: f.Name.Join("."), Width: f.Width})
		}
		for _, ls := range syn.Streams() {
			ss := SynthStream{
				Path:           ls.Path.Join("."),
				Lanes:          ls.Stream.ElementLanes(),
				Dimensionality: ls.Stream.Dimensionality(),
				Complexity:     ls.Stream.Complexity().String(),
				Direction:      ls.Stream.Direction().String(),
			}
			for _, sig := range ls.Stream.SignalList() {
				ss.Signals = append(ss.Signals, SynthSignal{Name: sig.Name, Width: sig.Width})
			}
			si.Streams = append(si.Streams, ss)
		}
		summary.Interfaces = append(summary.Interfaces, si)
	}

	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	return printSynthText(formatter, summary)
}

func printSynthText(formatter *OutputFormatter, summary SynthSummary) error {
	fmt.Fprintf(formatter.Writer, "%s\n", summary.Streamlet)
	for _, iface := range summary.Interfaces {
		fmt.Fprintf(formatter.Writer, "  %s : %s %s\n", iface.Name, iface.Mode, iface.Type)
		for _, sig := range iface.Signals {
			label := sig.Name
			if label == "" {
				label = "(anonymous)"
			}
			fmt.Fprintf(formatter.Writer, "    wire %s [%d]\n", label, sig.Width)
		}
		for _, ss := range iface.Streams {
			path := ss.Path
			if path == "" {
				path = "(root)"
			}
			fmt.Fprintf(formatter.Writer, "    stream %s lanes=%d d=%d c=%s %s\n",
				path, ss.Lanes, ss.Dimensionality, ss.Complexity, ss.Direction)
			for _, sig := range ss.Signals {
				fmt.Fprintf(formatter.Writer, "      %s [%d]\n", sig.Name, sig.Width)
			}
		}
	}
	return nil
}
