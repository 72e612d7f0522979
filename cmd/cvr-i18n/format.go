package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"cvri18n/internal/audit"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatHuman OutputFormat = "human"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// runOutput is the machine-readable result of one invocation.
type runOutput struct {
	RunID    string          `json:"runId" yaml:"runId"`
	Version  string          `json:"version" yaml:"version"`
	ExitCode int             `json:"exitCode" yaml:"exitCode"`
	Reports  []*audit.Report `json:"reports" yaml:"reports"`
}

func (o *runOutput) add(r *audit.Report) {
	o.Reports = append(o.Reports, r)
	if code := r.ExitCode(); code > o.ExitCode {
		o.ExitCode = code
	}
}

// FormatOutput renders the collected reports in a machine-readable format.
// Human output is written per report by writeHuman instead.
func FormatOutput(out *runOutput, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(out)
	case FormatYAML:
		return formatYAML(out)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func formatYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

// palette colors the status labels of human output.
type palette struct {
	ok      *color.Color
	finding *color.Color
	changed *color.Color
	fail    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		ok:      mk(color.FgGreen),
		finding: mk(color.FgYellow, color.Bold),
		changed: mk(color.FgCyan),
		fail:    mk(color.FgRed, color.Bold),
	}
}

// writeHuman prints one report: results to stdout, per-file errors to stderr.
func writeHuman(stdout, stderr io.Writer, r *audit.Report, p palette) {
	for i := range r.Files {
		f := &r.Files[i]
		switch f.Status {
		case audit.StatusOK:
			fmt.Fprintf(stdout, "%s: %s\n", f.Path, p.ok.Sprint("OK"))
		case audit.StatusDuplicates:
			fmt.Fprintf(stdout, "%s: %s\n", f.Path, p.finding.Sprint("DUPLICATES:"))
			for _, d := range f.Duplicates {
				fmt.Fprintf(stdout, "  %s  (%d times)\n", d.Key, d.Count)
			}
		case audit.StatusMissing:
			fmt.Fprintf(stdout, "%s: %s\n", f.Path, p.finding.Sprint("MISSING:"))
			for _, k := range f.Missing {
				fmt.Fprintf(stdout, "  %s\n", k)
			}
			if f.ExportPath != "" {
				fmt.Fprintf(stdout, "Exported missing keys to %s\n", f.ExportPath)
			}
		case audit.StatusSorted:
			fmt.Fprintf(stdout, "%s %s\n", p.changed.Sprint("Sorted"), f.Path)
		case audit.StatusUnchanged:
			fmt.Fprintf(stdout, "%s: already sorted\n", f.Path)
		}
		if f.Error != "" {
			fmt.Fprintf(stderr, "%s: %s %s\n", f.Path, p.fail.Sprint("ERROR:"), f.Error)
		}
	}
}
