// CLAUDE:SUMMARY Country normalization via a static alias table, extensible from a YAML file.
package ingest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// builtinCountryAliases maps known variants to canonical country names.
// Matching is case-sensitive and exact on the trimmed input; anything not
// listed passes through unchanged. Extend by editing data, not code.
var builtinCountryAliases = map[string]string{
	"US":                       "USA",
	"United States":            "USA",
	"United States of America": "USA",
	"UK":                       "United Kingdom",
	"England":                  "United Kingdom",
}

// CountryNormalizer maps country-name variants to canonical forms.
type CountryNormalizer struct {
	aliases map[string]string
}

// NewCountryNormalizer returns a normalizer seeded with the built-in
// alias table.
func NewCountryNormalizer() *CountryNormalizer {
	aliases := make(map[string]string, len(builtinCountryAliases))
	for k, v := range builtinCountryAliases {
		aliases[k] = v
	}
	return &CountryNormalizer{aliases: aliases}
}

// LoadAliases merges aliases from a YAML file (variant: canonical pairs)
// over the built-ins. File entries win on conflict.
func (n *CountryNormalizer) LoadAliases(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read country aliases: %w", err)
	}
	extra := make(map[string]string)
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("parse country aliases %s: %w", path, err)
	}
	for k, v := range extra {
		n.aliases[k] = v
	}
	return nil
}

// Normalize trims the input and resolves it through the alias table.
// Unrecognized values come back trimmed but otherwise unchanged, so the
// operation is idempotent.
func (n *CountryNormalizer) Normalize(country string) string {
	trimmed := strings.TrimSpace(country)
	if canonical, ok := n.aliases[trimmed]; ok {
		return canonical
	}
	return trimmed
}
