package disease

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// LoadLabels reads the class names as a JSON array, index-aligned with the
// classifier output.
func LoadLabels(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read disease labels %s", path)
	}

	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, eris.Wrapf(err, "decode disease labels %s", path)
	}
	if len(labels) == 0 {
		return nil, eris.Errorf("disease labels %s are empty", path)
	}
	return labels, nil
}
