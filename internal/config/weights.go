package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/renewal-cli/internal/model"
)

// LoadWeights reads a priority weights profile from a YAML file. Missing
// keys default to zero, so a profile normally lists all five weights.
func LoadWeights(path string) (model.PriorityWeights, error) {
	var w model.PriorityWeights

	data, err := os.ReadFile(path)
	if err != nil {
		return w, eris.Wrap(err, "config: read weights file")
	}

	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, eris.Wrap(err, "config: parse weights file")
	}

	return w, nil
}
