package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportJSON writes v (a solution or report) as indented JSON to path, or to
// stdout when path is "-".
func ExportJSON(path string, v any) error {
	if path == "-" {
		return EncodeJSON(os.Stdout, v)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeJSON(file, v)
}

func EncodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
