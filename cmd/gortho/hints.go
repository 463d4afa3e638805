package main

import (
	"encoding/json"

	"github.com/philipparndt/gortho/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	hintNames    bool
	hintMain     bool
	hintAux      bool
	hintCallouts bool
)

var hintsCmd = &cobra.Command{
	Use:   "hints <project>",
	Short: "Print the construction geometry of every measurement as JSON",
	Long: `Print the line segments, arcs and labels that show how each enabled measurement
is constructed, in image pixel coordinates. Without selection flags every group
is included.`,
	Args: cobra.ExactArgs(1),
	RunE: runHints,
}

func init() {
	rootCmd.AddCommand(hintsCmd)

	hintsCmd.Flags().BoolVar(&hintNames, "names", false, "include measurement name labels")
	hintsCmd.Flags().BoolVar(&hintMain, "main", false, "include main construction lines and arcs")
	hintsCmd.Flags().BoolVar(&hintAux, "aux", false, "include auxiliary extension lines")
	hintsCmd.Flags().BoolVar(&hintCallouts, "callouts", false, "include distance callouts")
}

type hintsData struct {
	Measurement string               `json:"measurement"`
	Primitives  []analysis.Primitive `json:"primitives"`
	Error       string               `json:"error,omitempty"`
}

func displayOptions() analysis.DisplayOptions {
	options := analysis.ShowNone
	if hintNames {
		options |= analysis.ShowNames
	}
	if hintMain {
		options |= analysis.ShowMainLines
	}
	if hintAux {
		options |= analysis.ShowAuxiliaryLines
	}
	if hintCallouts {
		options |= analysis.ShowDistanceCallouts
	}
	if options == analysis.ShowNone {
		return analysis.ShowAll
	}
	return options
}

func runHints(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}

	hints := p.Visualize(displayOptions(), cfg.Hints.Style())
	out := make([]hintsData, 0, len(hints))
	for _, h := range hints {
		data := hintsData{Measurement: h.Measurement, Primitives: h.Primitives}
		if data.Primitives == nil {
			data.Primitives = []analysis.Primitive{}
		}
		if h.Err != nil {
			data.Error = h.Err.Error()
		}
		out = append(out, data)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
