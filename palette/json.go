// CLAUDE:SUMMARY Atomic JSON persistence for extraction results (write .tmp then rename).
package palette

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSON serializes the result as a 2-space-indented JSON object and
// writes it atomically (write .tmp then rename) so consumers never see a
// partial file. Nil slices are normalized to empty so the output always
// carries all three keys as arrays/objects.
func WriteJSON(path string, res *Result) error {
	out := *res
	if out.CSSVariables == nil {
		out.CSSVariables = map[string]string{}
	}
	if out.ColorRules == nil {
		out.ColorRules = []ColorRule{}
	}
	if out.ElementColors == nil {
		out.ElementColors = []ElementSample{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("palette: marshal: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("palette: mkdir %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("palette: write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("palette: rename: %w", err)
	}
	return nil
}

// ReadJSON parses a previously written result file.
func ReadJSON(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("palette: read %s: %w", path, err)
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("palette: parse %s: %w", path, err)
	}
	return &res, nil
}
