package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/philipparndt/gortho/internal/config"
	"github.com/philipparndt/gortho/internal/logging"
	"github.com/philipparndt/gortho/pkg/analysis"
	"github.com/philipparndt/gortho/pkg/project"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var reportCmd = &cobra.Command{
	Use:   "report <project>",
	Short: "Evaluate the measurements of a project",
	Long: `Evaluate every enabled measurement of a project and print the values.
Landmark coordinates are converted to millimetres with the project scale.
Measurements whose landmarks are not placed yet are reported as n/a.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("format", "f", "table", "output format (table, json, yaml)")
	reportCmd.Flags().IntP("decimals", "d", 1, "decimal places")
	reportCmd.Flags().Bool("all", false, "include disabled measurements")
}

func runReport(cmd *cobra.Command, args []string) error {
	p, err := loadProject(args[0])
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), p, cfg.Report)
}

// reportData is the machine readable report
type reportData struct {
	Analysis            string       `json:"analysis" yaml:"analysis"`
	Radiograph          string       `json:"radiograph,omitempty" yaml:"radiograph,omitempty"`
	PixelsPerMillimeter float64      `json:"pixelsPerMillimeter" yaml:"pixelsPerMillimeter"`
	Results             []resultData `json:"results" yaml:"results"`
}

type resultData struct {
	Name      string        `json:"name" yaml:"name"`
	Type      analysis.Kind `json:"type" yaml:"type"`
	Unit      analysis.Unit `json:"unit" yaml:"unit"`
	Value     *float64      `json:"value" yaml:"value"`
	Formatted string        `json:"formatted" yaml:"formatted"`
	Undefined bool          `json:"undefined,omitempty" yaml:"undefined,omitempty"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReportData(p *project.Project, report analysis.Report, decimals int) reportData {
	data := reportData{
		Analysis:            report.Analysis,
		Radiograph:          p.Radiograph,
		PixelsPerMillimeter: p.PixelsPerMillimeter,
		Results:             make([]resultData, 0, len(report.Results)),
	}
	for _, r := range report.Results {
		result := resultData{
			Name:      r.Name,
			Type:      r.Kind,
			Unit:      r.Unit,
			Formatted: r.Format(decimals),
		}
		if r.Defined() {
			value := r.Value
			result.Value = &value
		} else {
			result.Undefined = analysis.IsUndefined(r.Err)
			result.Error = r.Err.Error()
		}
		data.Results = append(data.Results, result)
	}
	return data
}

func printReport(w io.Writer, p *project.Project, settings config.ReportConfig) error {
	report, err := p.Evaluate(settings.ShowDisabled)
	if err != nil {
		return err
	}
	logger.Debug("evaluated project",
		logging.String("analysis", report.Analysis),
		logging.Int("measurements", len(report.Results)),
		logging.Int("defined", report.Defined()),
		logging.Bool("includeDisabled", settings.ShowDisabled),
	)

	switch settings.Format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(newReportData(p, report, settings.Decimals))
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(newReportData(p, report, settings.Decimals)); err != nil {
			return err
		}
		return encoder.Close()
	case "table":
		return printTable(w, p, report, settings.Decimals)
	}
	return fmt.Errorf("unknown report format %q", settings.Format)
}

func printTable(w io.Writer, p *project.Project, report analysis.Report, decimals int) error {
	title := fmt.Sprintf("Analysis: %s", report.Analysis)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, underline(title))
	if p.Radiograph != "" {
		fmt.Fprintf(w, "Radiograph: %s\n", p.Radiograph)
	}
	fmt.Fprintf(w, "Scale: %g px/mm\n", p.PixelsPerMillimeter)
	fmt.Fprintf(w, "Landmarks placed: %d of %d\n\n", p.Analysis.Landmarks.PlacedCount(), p.Analysis.Landmarks.Len())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MEASUREMENT\tVALUE\tTYPE\tNOTE")
	for _, r := range report.Results {
		note := ""
		if !r.Defined() {
			note = describeFailure(r.Err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Format(decimals), r.Kind, note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d of %d measurements defined\n", report.Defined(), len(report.Results))
	return nil
}

func describeFailure(err error) string {
	if analysis.IsUndefined(err) {
		return "undefined: " + err.Error()
	}
	return "error: " + err.Error()
}

func underline(s string) string {
	return strings.Repeat("=", utf8.RuneCountInString(s))
}
