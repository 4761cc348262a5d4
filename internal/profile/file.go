package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDraftFile reads a draft from a YAML file. Keys missing from the file
// keep their DefaultDraft values, repeated preferred countries are kept once
// in first-seen order, and a relative resume path is resolved against the
// file's directory.
func LoadDraftFile(path string) (Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Draft{}, fmt.Errorf("read profile file: %w", err)
	}

	d := DefaultDraft()
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("parse profile file %s: %w", path, err)
	}

	d.PreferredCountries = uniqueCountries(d.PreferredCountries)
	if d.ResumePath != "" && !filepath.IsAbs(d.ResumePath) {
		d.ResumePath = filepath.Join(filepath.Dir(path), d.ResumePath)
	}
	return d, nil
}

func uniqueCountries(countries []string) []string {
	seen := make(map[string]struct{}, len(countries))
	out := countries[:0]
	for _, c := range countries {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
