package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders results as indented JSON.
type JSONFormatter struct{}

// Format writes data as indented JSON followed by a newline.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
