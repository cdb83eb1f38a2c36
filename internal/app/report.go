package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v3"
)

// Summary is a record of one run, written as the optional report.
type Summary struct {
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Version     string          `json:"version" yaml:"version"`
	Dir         string          `json:"dir" yaml:"dir"`
	Sources     []SourceSummary `json:"sources" yaml:"sources"`
	URLs        []string        `json:"urls" yaml:"urls"`
	Deck        *DeckSummary    `json:"presentation,omitempty" yaml:"presentation,omitempty"`
	Error       string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// SourceSummary describes one processed input document.
type SourceSummary struct {
	Path   string `json:"path" yaml:"path"`
	Kind   string `json:"kind" yaml:"kind"`
	URLs   int    `json:"urls" yaml:"urls"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// DeckSummary describes the distribution onto the presentation.
type DeckSummary struct {
	Path          string `json:"path" yaml:"path"`
	Output        string `json:"output,omitempty" yaml:"output,omitempty"`
	SHA256        string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Slides        int    `json:"slides" yaml:"slides"`
	SlidesWritten int    `json:"slides_written" yaml:"slides_written"`
	URLsWritten   int    `json:"urls_written" yaml:"urls_written"`
	URLsDropped   int    `json:"urls_dropped" yaml:"urls_dropped"`
	ChunkSize     int    `json:"chunk_size" yaml:"chunk_size"`
}

var reportFormats = map[string]func(io.Writer, Summary) error{
	".json": writeReportJSON,
	".yaml": writeReportYAML,
	".yml":  writeReportYAML,
	".html": writeReportHTML,
	".htm":  writeReportHTML,
	".pdf":  writeReportPDF,
}

// writeReport writes the summary when a report path is configured. Failures
// are logged and never change the run outcome.
func (a *App) writeReport(sum Summary) {
	path := strings.TrimSpace(a.cfg.ReportPath)
	if path == "" {
		return
	}
	if err := WriteReport(path, sum); err != nil {
		log.Warn().Err(err).Str("report", path).Msg("report not written")
		return
	}
	log.Info().Str("report", path).Msg("wrote report")
}

// WriteReport renders sum in the format implied by path's extension.
func WriteReport(path string, sum Summary) error {
	render, ok := reportFormats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("unsupported report format %q", filepath.Ext(path))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir report dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := render(f, sum); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func writeReportJSON(w io.Writer, sum Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(sum)
}

func writeReportYAML(w io.Writer, sum Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sum); err != nil {
		return err
	}
	return enc.Close()
}

// reportLines is the shared plain-text layout used by the HTML and PDF reports.
func reportLines(sum Summary) [][2]string {
	lines := [][2]string{
		{"Generated", sum.GeneratedAt.Format(time.RFC3339)},
		{"Version", sum.Version},
		{"Directory", sum.Dir},
		{"Unique URLs", fmt.Sprint(len(sum.URLs))},
	}
	if d := sum.Deck; d != nil {
		lines = append(lines,
			[2]string{"Presentation", d.Path},
			[2]string{"Output", d.Output},
			[2]string{"Slides", fmt.Sprintf("%d of %d", d.SlidesWritten, d.Slides)},
			[2]string{"URLs written", fmt.Sprint(d.URLsWritten)},
			[2]string{"URLs dropped", fmt.Sprint(d.URLsDropped)},
			[2]string{"Final chunk size", fmt.Sprint(d.ChunkSize)},
		)
	}
	if sum.Error != "" {
		lines = append(lines, [2]string{"Error", sum.Error})
	}
	return lines
}

func sourceLine(s SourceSummary) string {
	line := fmt.Sprintf("%s (%s): %d URLs", s.Path, s.Kind, s.URLs)
	if s.Output != "" {
		line += " -> " + s.Output
	}
	if s.Error != "" {
		line += " [error: " + s.Error + "]"
	}
	return line
}
