package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project>",
	Short: "Check an analysis definition for authoring errors",
	Long: `Check that every measurement references existing landmarks and measurements,
that composite angles only reference angles, and that no measurement depends on
itself. Landmark placement is not required.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	a := p.Analysis

	err = a.Validate()
	if err == nil {
		fmt.Fprintf(out, "%s: %d landmarks, %d measurements, no problems found\n",
			a.Name, a.Landmarks.Len(), a.Measurements.Len())
		return nil
	}

	defects := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		defects = joined.Unwrap()
	}
	fmt.Fprintf(out, "%s: %d problems found\n", a.Name, len(defects))
	for _, defect := range defects {
		fmt.Fprintf(out, "  - %v\n", defect)
	}
	return errors.New("analysis definition is invalid")
}
