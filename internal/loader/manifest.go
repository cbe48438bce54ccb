package loader

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Manifest is an optional fleet.yaml mapping source roles to filenames, for
// fleets whose export names differ from the defaults.
//
//	files:
//	  finance: 2026-finance.xlsx
//	  repairs: po-history.csv
type Manifest struct {
	Files map[string]string `yaml:"files"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: read manifest")
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "loader: parse manifest")
	}
	return &m, nil
}
