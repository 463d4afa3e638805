package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/philipparndt/gortho/pkg/geometry"
	"github.com/spf13/cobra"
)

var placeClear bool

var placeCmd = &cobra.Command{
	Use:   "place <project> <landmark> [x y]",
	Short: "Set or clear the image coordinate of a landmark",
	Long: `Set the pixel coordinate of a landmark and save the project. With --clear the
landmark becomes unplaced again. The next landmark still to be placed is shown
afterwards.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if placeClear {
			return cobra.ExactArgs(2)(cmd, args)
		}
		return cobra.ExactArgs(4)(cmd, args)
	},
	RunE: runPlace,
}

func init() {
	rootCmd.AddCommand(placeCmd)

	placeCmd.Flags().BoolVar(&placeClear, "clear", false, "remove the coordinate instead of setting it")
}

func runPlace(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]
	p, err := loadProject(path)
	if err != nil {
		return err
	}
	landmarks := p.Analysis.Landmarks
	out := cmd.OutOrStdout()

	if placeClear {
		if err := landmarks.Clear(name); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %s\n", name)
	} else {
		x, errX := strconv.ParseFloat(args[2], 64)
		y, errY := strconv.ParseFloat(args[3], 64)
		if err := errors.Join(errX, errY); err != nil {
			return fmt.Errorf("invalid coordinate: %w", err)
		}
		position := geometry.NewVector2(x, y)
		if !position.IsFinite() {
			return fmt.Errorf("invalid coordinate %s: must be finite", position)
		}
		if err := landmarks.Place(name, position); err != nil {
			return err
		}
		fmt.Fprintf(out, "Placed %s at %s\n", name, position)
	}

	if err := saveProject(path, p); err != nil {
		return err
	}

	if next, ok := landmarks.Next(); ok {
		if next.Description != "" {
			fmt.Fprintf(out, "Next: %s (%s)\n", next.Name(), next.Description)
		} else {
			fmt.Fprintf(out, "Next: %s\n", next.Name())
		}
	} else {
		fmt.Fprintf(out, "All %d landmarks placed\n", landmarks.Len())
	}
	return nil
}
