package main

import (
	"fmt"

	"github.com/philipparndt/gortho/pkg/project"
	"github.com/spf13/cobra"
)

var (
	templateOutput     string
	templateRadiograph string
	templateScale      float64
)

var templateCmd = &cobra.Command{
	Use:   "template [name]",
	Short: "List the built-in analyses or start a project from one",
	Long: `Without a name the built-in analysis templates are listed. With a name the
template is written as a new project with no landmarks placed, to stdout or to
the file given with --output. The output file extension selects YAML or XML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "write the project to this file")
	templateCmd.Flags().StringVar(&templateRadiograph, "radiograph", "", "radiograph image the project refers to")
	templateCmd.Flags().Float64Var(&templateScale, "scale", project.DefaultPixelsPerMillimeter, "radiograph scale in pixels per millimetre")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range project.Templates() {
			p, err := project.Template(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-10s %s (%d landmarks, %d measurements)\n",
				name, p.Analysis.Name, p.Analysis.Landmarks.Len(), p.Analysis.Measurements.Len())
		}
		return nil
	}

	p, err := project.Template(args[0])
	if err != nil {
		return err
	}
	if templateScale <= 0 {
		return fmt.Errorf("invalid scale %g: must be positive", templateScale)
	}
	p.Radiograph = templateRadiograph
	p.PixelsPerMillimeter = templateScale

	if templateOutput == "" {
		return project.EncodeYAML(out, p)
	}
	if err := saveProject(templateOutput, p); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s from template %s\n", templateOutput, args[0])
	return nil
}
