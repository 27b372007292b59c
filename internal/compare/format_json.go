package compare

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter renders a comparison set as JSON. Scenario names and
// recommendations are written without HTML escaping.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(set *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(set); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
