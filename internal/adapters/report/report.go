// Package report renders overlay results as colored text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	headerColor = color.New(color.FgBlue, color.Bold)
	dimColor    = color.New(color.FgHiBlack)

	decisionColors = map[domain.Decision]*color.Color{
		domain.DecisionRoot:   color.New(color.FgCyan),
		domain.DecisionPinned: color.New(color.FgGreen, color.Bold),
		domain.DecisionOption: color.New(color.FgYellow),
	}
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter.
type Reporter struct{}

// New creates a Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Document is the machine-readable form of an overlay result.
type Document struct {
	Applied  bool          `json:"applied" yaml:"applied"`
	Summary  Summary       `json:"summary" yaml:"summary"`
	Packages []PackageLine `json:"packages" yaml:"packages"`
}

// Summary counts the entries per decision.
type Summary struct {
	Root   int `json:"root" yaml:"root"`
	Pinned int `json:"pinned" yaml:"pinned"`
	Option int `json:"option" yaml:"option"`
}

// PackageLine is one entry of the resulting candidate list.
type PackageLine struct {
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	Decision string `json:"decision" yaml:"decision"`
}

// NewDocument converts result into its machine-readable form.
func NewDocument(result domain.OverlayResult) Document {
	doc := Document{
		Applied: result.Applied,
		Summary: Summary{
			Root:   result.CountDecisions(domain.DecisionRoot),
			Pinned: result.CountDecisions(domain.DecisionPinned),
			Option: result.CountDecisions(domain.DecisionOption),
		},
		Packages: make([]PackageLine, len(result.Entries)),
	}
	for i, e := range result.Entries {
		doc.Packages[i] = PackageLine{
			Name:     e.Package.Name,
			Version:  e.Package.Version,
			Decision: string(e.Decision),
		}
	}
	return doc
}

// Report writes result to w in the given format. An empty format selects text.
func (r *Reporter) Report(w io.Writer, format string, result domain.OverlayResult) error {
	var err error
	switch format {
	case "", FormatText:
		err = writeText(w, result)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(NewDocument(result))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(NewDocument(result)); err == nil {
			err = enc.Close()
		}
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownReportFormat, "cannot render report"), "format", format)
	}

	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrReportWriteFailed, err.Error()), "format", format)
	}
	return nil
}

func writeText(w io.Writer, result domain.OverlayResult) error {
	if !result.Applied {
		_, err := dimColor.Fprintf(w, "Upstream lock not applied, %d candidates passed through unchanged.\n", len(result.Entries))
		return err
	}

	if _, err := headerColor.Fprintf(w, "Upstream lock applied: %d pinned, %d root, %d options\n",
		result.CountDecisions(domain.DecisionPinned),
		result.CountDecisions(domain.DecisionRoot),
		result.CountDecisions(domain.DecisionOption),
	); err != nil {
		return err
	}

	width := 0
	for _, e := range result.Entries {
		width = max(width, len(e.Package.Name))
	}

	for _, e := range result.Entries {
		if _, err := decisionColors[e.Decision].Fprintf(w, "  %-6s", e.Decision); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %-*s  %s\n", width, e.Package.Name, e.Package.Version); err != nil {
			return err
		}
	}
	return nil
}
