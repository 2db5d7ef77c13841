package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableFormatter_Document(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	doc := map[string]any{
		"id":      "doc-1",
		"count":   float64(42),
		"enabled": true,
	}
	if err := f.Format(&buf, doc); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header + 3 fields):\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "FIELD") {
		t.Errorf("first line = %q, want FIELD/VALUE header", lines[0])
	}
	// Keys render sorted.
	if !strings.HasPrefix(lines[1], "count") {
		t.Errorf("second line = %q, want count row first", lines[1])
	}
	if !strings.Contains(out, "42") {
		t.Error("numeric value should print without decimal noise")
	}
}

func TestTableFormatter_Documents(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	docs := []any{
		map[string]any{"id": "a", "size": float64(1)},
		map[string]any{"id": "b", "region": "eu"},
	}
	if err := f.Format(&buf, docs); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows):\n%s", len(lines), out)
	}
	// Union of keys, sorted: id, region, size.
	header := strings.Fields(lines[0])
	want := []string{"id", "region", "size"}
	if len(header) != len(want) {
		t.Fatalf("header = %v, want %v", header, want)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}
	// Missing keys render as a dash.
	if !strings.Contains(lines[1], "-") {
		t.Errorf("row with missing key should carry a dash: %q", lines[1])
	}
}

func TestTableFormatter_MixedList(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	if err := f.Format(&buf, []any{"x", float64(2), true}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "VALUE") {
		t.Errorf("output should start with VALUE header, got:\n%s", out)
	}
	for _, want := range []string{"x", "2", "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatter_Scalars(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"nil", nil, "null\n"},
		{"string", "ok", "ok\n"},
		{"bool", true, "true\n"},
		{"integral float", float64(7), "7\n"},
		{"fractional float", 2.5, "2.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TableFormatter{}).Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTableFormatter_NestedValuesCollapse(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	doc := map[string]any{
		"meta": map[string]any{"a": float64(1)},
	}
	if err := f.Format(&buf, doc); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `{"a":1}`) {
		t.Errorf("nested map should collapse to compact JSON, got:\n%s", buf.String())
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{NoHeaders: true}

	if err := f.Format(&buf, map[string]any{"k": "v"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(buf.String(), "FIELD") {
		t.Errorf("headers should be suppressed, got:\n%s", buf.String())
	}
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer

	tbl := &Table{}
	tbl.SetHeaders("NAME", "ADDRESS")
	tbl.AddRow("prod", "db-prod.internal:28015")
	tbl.AddRow("local", "localhost:28015")

	if err := tbl.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header line = %q", lines[0])
	}
}

func TestTableFormatter_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, []any{}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "" {
		t.Errorf("empty list should render nothing, got %q", buf.String())
	}
}
