// Package render writes query results as JSON, YAML or a text table
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/okra-platform/arrgh/internal/query"
)

// Supported output formats
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Formats lists every supported output format
var Formats = []string{FormatJSON, FormatYAML, FormatTable}

// Render writes records to w in the given format. fields sets the table
// columns; when empty the columns are the sorted union of record keys.
func Render(w io.Writer, format string, records []query.Record, fields []string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, records)
	case FormatYAML:
		return renderYAML(w, records)
	case FormatTable:
		return renderTable(w, records, fields)
	default:
		return fmt.Errorf("unsupported output format %q (expected one of %v)", format, Formats)
	}
}

func renderJSON(w io.Writer, records []query.Record) error {
	if records == nil {
		records = []query.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records as JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func renderYAML(w io.Writer, records []query.Record) error {
	if records == nil {
		records = []query.Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records as YAML: %w", err)
	}
	return enc.Close()
}

func renderTable(w io.Writer, records []query.Record, fields []string) error {
	columns := fields
	if len(columns) == 0 {
		columns = Columns(records)
	}
	if len(columns) == 0 {
		_, err := fmt.Fprintln(w, "(no records)")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(columns)
	for _, r := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			v, _ := r.Lookup(c)
			row[i] = Cell(v)
		}
		table.Append(row)
	}

	footer := make([]string, len(columns))
	footer[0] = fmt.Sprintf("%d rows", len(records))
	table.SetFooter(footer)
	table.Render()
	return nil
}

// Columns returns the sorted union of top-level keys across records
func Columns(records []query.Record) []string {
	var columns []string
	for _, r := range records {
		for k := range r {
			if !slices.Contains(columns, k) {
				columns = append(columns, k)
			}
		}
	}
	slices.Sort(columns)
	return columns
}

// Cell formats a single value for a table cell. Nested values are printed
// as compact JSON.
func Cell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case map[string]any, []any, query.Record:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(data)
	default:
		return fmt.Sprint(value)
	}
}
