// package formatter renders the tracked anime list for export (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/shared"
)

// Format is an export format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "md"
	Text     Format = "txt"
	JSON     Format = "json"
)

// Formats returns the supported export formats.
func Formats() []Format {
	return []Format{CSV, Markdown, Text, JSON}
}

// ParseFormat maps a flag value or file extension onto a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "csv":
		return CSV, nil
	case "md", "markdown":
		return Markdown, nil
	case "txt", "text":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// timestampLayouts are the store's timestamp shapes, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatTimestamp renders a store timestamp as "2006/01/02 15:04".
// Unparseable input is returned unchanged.
func FormatTimestamp(s string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006/01/02 15:04")
		}
	}
	return s
}

func totalString(a models.Anime) string {
	if a.TotalEpisodes == nil {
		return ""
	}
	return strconv.Itoa(*a.TotalEpisodes)
}

// ExportToCSV converts animes to CSV with one header row.
func ExportToCSV(animes []models.Anime) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Current", "Total", "Platform", "URL", "Status", "Update Day", "Notes", "Updated"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range animes {
		record := []string{
			strconv.FormatInt(a.ID, 10),
			a.Title,
			strconv.Itoa(a.CurrentEpisode),
			totalString(a),
			a.Platform,
			a.PlatformURL,
			string(a.Status),
			string(a.UpdateDay),
			a.Notes,
			a.UpdatedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders animes as a document grouped by status, in [models.Statuses] order.
func ExportToMarkdown(title string, animes []models.Anime) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Total**: %d\n\n", len(animes))

	for _, status := range models.Statuses() {
		var group []models.Anime
		for _, a := range animes {
			if a.Status == status {
				group = append(group, a)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&buf, "## %s (%d)\n\n", status, len(group))
		for _, a := range group {
			name := a.Title
			if a.PlatformURL != "" {
				name = fmt.Sprintf("[%s](%s)", a.Title, a.PlatformURL)
			}
			line := fmt.Sprintf("- %s · %s · %s", name, a.Platform, a.Progress())
			if a.UpdateDay != "" {
				line += " · " + string(a.UpdateDay)
			}
			buf.WriteString(line + "\n")
			if a.Notes != "" {
				fmt.Fprintf(&buf, "  > %s\n", a.Notes)
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText renders animes as a numbered plain-text list.
func ExportToText(animes []models.Anime) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Animes: %d\n\n", len(animes))
	for i, a := range animes {
		fmt.Fprintf(&buf, "%d. %s [%s] %s %s", i+1, a.Title, a.Status, a.Platform, a.Progress())
		if a.UpdateDay != "" {
			fmt.Fprintf(&buf, " (%s)", a.UpdateDay)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders animes as indented JSON in the store's wire shape.
func ExportToJSON(animes []models.Anime) ([]byte, error) {
	if animes == nil {
		animes = []models.Anime{}
	}
	data, err := json.MarshalIndent(animes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders animes in format.
func Export(animes []models.Anime, format Format) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(animes)
	case Markdown:
		return ExportToMarkdown("追番列表", animes)
	case Text:
		return ExportToText(animes)
	case JSON:
		return ExportToJSON(animes)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport renders animes and writes them to path, creating parent directories.
//
// An empty format is inferred from path's extension.
func WriteExport(animes []models.Anime, path string, format Format) (Format, error) {
	if format == "" {
		f, err := ParseFormat(filepath.Ext(path))
		if err != nil {
			return "", err
		}
		format = f
	}

	data, err := Export(animes, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return format, nil
}
