package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"
)

// TableFormatter renders decoded JSON results as aligned text. Documents
// become FIELD/VALUE listings, arrays of documents become one row per
// document with the union of their keys as columns, and scalars print
// bare. Anything else falls back to indented JSON.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders data as a table.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if t, ok := data.(*Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}
	if t, ok := data.(Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}

	switch v := data.(type) {
	case nil:
		_, err := fmt.Fprintln(w, "null")
		return err
	case map[string]any:
		return documentTable(v).RenderWithOptions(w, f.NoHeaders)
	case []any:
		t, ok := documentsTable(v)
		if !ok {
			return listTable(v).RenderWithOptions(w, f.NoHeaders)
		}
		return t.RenderWithOptions(w, f.NoHeaders)
	case string, bool, float64, int, int64, json.Number:
		_, err := fmt.Fprintln(w, formatCell(v))
		return err
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}
}

// documentTable renders one document as FIELD/VALUE rows, keys sorted.
func documentTable(doc map[string]any) *Table {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{Headers: []string{"FIELD", "VALUE"}}
	for _, k := range keys {
		t.AddRow(k, formatCell(doc[k]))
	}
	return t
}

// documentsTable renders a homogeneous array of documents, one row each,
// with the sorted union of keys as columns. ok is false when any element
// is not a document.
func documentsTable(items []any) (*Table, bool) {
	if len(items) == 0 {
		return &Table{}, true
	}

	union := make(map[string]struct{})
	docs := make([]map[string]any, 0, len(items))
	for _, item := range items {
		doc, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		docs = append(docs, doc)
		for k := range doc {
			union[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{Headers: keys}
	for _, doc := range docs {
		row := make([]string, len(keys))
		for i, k := range keys {
			if v, ok := doc[k]; ok {
				row[i] = formatCell(v)
			} else {
				row[i] = "-"
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, true
}

// listTable renders a mixed array as a single VALUE column.
func listTable(items []any) *Table {
	t := &Table{Headers: []string{"VALUE"}}
	for _, item := range items {
		t.AddRow(formatCell(item))
	}
	return t
}

// formatCell renders one decoded JSON value for a table cell. Nested
// structures collapse to compact JSON so rows stay one line.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		// JSON numbers decode as float64; print integers without the
		// trailing .0 noise.
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case json.Number:
		return x.String()
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Table is tabular data ready to render.
type Table struct {
	Headers []string
	Rows    [][]string
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table with headers.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions writes the table, optionally without headers.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		for i, h := range t.Headers {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, h)
		}
		fmt.Fprintln(tw)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
