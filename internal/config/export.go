package config

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// WriteGuidelineYAML writes one guideline year as a configuration fragment
// that can be merged with LoadConfiguration.
func WriteGuidelineYAML(w io.Writer, year int, gc GuidelineConfig) error {
	doc := struct {
		Guidelines map[string]GuidelineConfig `yaml:"guidelines"`
	}{
		Guidelines: map[string]GuidelineConfig{strconv.Itoa(year): gc},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode guideline year %d: %w", year, err)
	}
	return enc.Close()
}
