package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amosWeiskopf/linksmith/internal/models"
	"github.com/amosWeiskopf/linksmith/pkg/utils"
)

// Reporter serializes link lists in various formats
type Reporter struct {
	fileMode os.FileMode
	dirMode  os.FileMode
}

// New creates a new Reporter instance
func New() *Reporter {
	return &Reporter{
		fileMode: 0644,
		dirMode:  0755,
	}
}

// Render writes links to w in the specified format
func (r *Reporter) Render(w io.Writer, format models.Format, links []models.Link) error {
	switch format {
	case models.FormatCSV:
		return r.renderCSV(w, links)
	case models.FormatJSON:
		return r.renderJSON(w, links)
	case models.FormatMarkdown:
		return r.renderMarkdown(w, links)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile creates any missing parents of path, then writes links to it.
// The content goes to a temporary file first and is renamed into place, so
// the destination is either complete or untouched.
func (r *Reporter) WriteFile(path string, format models.Format, links []models.Link) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, r.dirMode); err != nil {
		return models.NewWriteError("failed to create output folder", err)
	}

	tmp, err := os.CreateTemp(dir, ".linksmith-*.tmp")
	if err != nil {
		return models.NewWriteError("failed to create "+path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := r.Render(tmp, format, links); err != nil {
		_ = tmp.Close()
		cleanup()
		return models.NewWriteError("failed to write "+path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return models.NewWriteError("failed to write "+path, err)
	}
	if err := os.Chmod(tmpName, r.fileMode); err != nil {
		cleanup()
		return models.NewWriteError("failed to set permissions on "+path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return models.NewWriteError("failed to move output into "+path, err)
	}

	return nil
}

// renderCSV writes the header row then one record per link, CRLF terminated
func (r *Reporter) renderCSV(w io.Writer, links []models.Link) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	records := make([][]string, 0, len(links)+1)
	records = append(records, models.CSVHeader)
	for _, link := range links {
		records = append(records, []string{link.Text, link.URL})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// renderJSON writes links as an indented JSON array
func (r *Reporter) renderJSON(w io.Writer, links []models.Link) error {
	if links == nil {
		links = []models.Link{}
	}
	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal links: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// renderMarkdown writes links as a two-column Markdown table
func (r *Reporter) renderMarkdown(w io.Writer, links []models.Link) error {
	var buf strings.Builder

	fmt.Fprintf(&buf, "| %s | %s |\n", models.CSVHeader[0], models.CSVHeader[1])
	fmt.Fprintf(&buf, "|-----------|-----|\n")
	for _, link := range links {
		fmt.Fprintf(&buf, "| %s | %s |\n", markdownCell(link.Text), markdownCell(link.URL))
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func markdownCell(s string) string {
	return strings.ReplaceAll(utils.CleanText(s), "|", `\|`)
}
