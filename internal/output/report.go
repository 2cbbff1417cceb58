package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/config"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/plan"
	"github.com/MyCarrier-DevOps/go-rebaseplan/internal/rebase"

	"gopkg.in/yaml.v3"
)

// Report is the machine-readable form of a preview.
type Report struct {
	Preview    []rebase.PreviewCommit `yaml:"preview" json:"preview"`
	Stats      rebase.Stats           `yaml:"stats" json:"stats"`
	HasErrors  bool                   `yaml:"has-errors" json:"hasErrors"`
	CanExecute bool                   `yaml:"can-execute" json:"canExecute"`
	Unmatched  []string               `yaml:"unmatched,omitempty" json:"unmatched,omitempty"`
}

// NewReport builds a report for p.
func NewReport(p *plan.Plan) Report {
	return Report{
		Preview:    p.Preview(),
		Stats:      p.Stats(),
		HasErrors:  p.HasValidationErrors(),
		CanExecute: p.CanExecute(),
	}
}

// WriteJSON writes v as pretty-printed JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON output: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing YAML output: %w", err)
	}
	return enc.Close()
}

// WriteReport writes r in the given format: text, json, or yaml.
func WriteReport(w io.Writer, r Report, format string) error {
	switch format {
	case config.OutputJSON:
		return WriteJSON(w, r)
	case config.OutputYAML:
		return WriteYAML(w, r)
	case config.OutputText, "":
		if err := WritePreview(w, r.Preview); err != nil {
			return err
		}
		for _, id := range r.Unmatched {
			fmt.Fprintf(w, "warning: %s has no autosquash target\n", id)
		}
		return WriteStats(w, r.Stats)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteTodo writes a todo script terminated by a newline.
func WriteTodo(w io.Writer, script string) error {
	if script == "" {
		return nil
	}
	_, err := io.WriteString(w, script+"\n")
	return err
}
