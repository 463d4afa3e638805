package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a project between YAML and OpenOrtho XML",
	Long: `Read a project and write it again, choosing both encodings by file extension
(.yaml/.yml or .xml/.ortho). Landmark placement, scale and measurement
definitions are carried over.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}
	if err := saveProject(args[1], p); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %s to %s\n", args[0], args[1])
	return nil
}
