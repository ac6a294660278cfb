package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Write writes CLI output in the requested format.
//
// Supported formats:
// - json (default)
// - table
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		return WriteTable(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: Keep output strict JSON only. If you need to communicate how to
// fetch more data, use a `meta` object or `_hint` fields.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable renders a best-effort aligned view for humans. Payloads are
// normalized through JSON first so field naming matches the json output;
// anything that is not a list of objects falls back to pretty JSON.
func WriteTable(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	rows := tableRows(x)
	if rows == nil {
		return WriteJSON(w, v, true)
	}

	cols := tableColumns(rows)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = cellString(row[col])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// tableRows unwraps the CLI's {"data": [...]} envelope when present.
func tableRows(x any) []map[string]any {
	if m, ok := x.(map[string]any); ok {
		if data, ok := m["data"]; ok {
			x = data
		}
	}
	list, ok := x.([]any)
	if !ok {
		return nil
	}
	rows := make([]map[string]any, 0, len(list))
	for _, it := range list {
		m, ok := it.(map[string]any)
		if !ok {
			return nil
		}
		rows = append(rows, m)
	}
	return rows
}

func tableColumns(rows []map[string]any) []string {
	seen := map[string]bool{}
	var cols []string
	for _, row := range rows {
		for k, v := range row {
			if seen[k] {
				continue
			}
			// Nested structures don't fit a cell; leave them to --format json.
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			seen[k] = true
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)

	// Conventional first columns when present.
	for _, lead := range []string{"title", "id"} {
		for i, c := range cols {
			if c == lead {
				cols = append(cols[:i], cols[i+1:]...)
				cols = append([]string{lead}, cols...)
			}
		}
	}
	return cols
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if float64(int64(t)) == t {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
