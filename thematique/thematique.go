// Package thematique holds the closed vocabulary of topic codes used to tag
// submissions and reviewer specialties.
package thematique

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Thematique is one entry of the controlled vocabulary.
type Thematique struct {
	Code        string `yaml:"code" json:"code"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color" json:"color"`
}

// Vocabulary is a read-only snapshot of the active thematic codes. Callers
// receive it by injection so tests can supply deterministic vocabularies.
type Vocabulary struct {
	entries []Thematique
	byCode  map[string]Thematique
}

// New builds a vocabulary from the given entries. Codes are upper-cased and
// duplicates keep the first occurrence.
func New(entries []Thematique) *Vocabulary {
	v := &Vocabulary{byCode: make(map[string]Thematique, len(entries))}
	for _, e := range entries {
		e.Code = strings.ToUpper(strings.TrimSpace(e.Code))
		if e.Code == "" {
			continue
		}
		if _, ok := v.byCode[e.Code]; ok {
			continue
		}
		v.byCode[e.Code] = e
		v.entries = append(v.entries, e)
	}
	return v
}

// Default returns the built-in conference vocabulary.
func Default() *Vocabulary {
	return New(defaultThematiques)
}

// LoadFile reads a vocabulary from a YAML file. The file holds a list of
// entries under the "thematiques" key.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thematiques file: %w", err)
	}

	var doc struct {
		Thematiques []Thematique `yaml:"thematiques"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse thematiques file: %w", err)
	}
	if len(doc.Thematiques) == 0 {
		return nil, fmt.Errorf("thematiques file %s defines no entries", path)
	}

	return New(doc.Thematiques), nil
}

// All returns the vocabulary entries in declaration order.
func (v *Vocabulary) All() []Thematique {
	out := make([]Thematique, len(v.entries))
	copy(out, v.entries)
	return out
}

// Codes returns the active code set in declaration order.
func (v *Vocabulary) Codes() []string {
	codes := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		codes = append(codes, e.Code)
	}
	return codes
}

// GetByCode looks up a vocabulary entry, case-insensitively.
func (v *Vocabulary) GetByCode(code string) (Thematique, bool) {
	e, ok := v.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return e, ok
}

// IsValidCode reports whether code belongs to the active set.
func (v *Vocabulary) IsValidCode(code string) bool {
	_, ok := v.GetByCode(code)
	return ok
}

// Normalize validates a list of codes and returns their canonical upper-case
// forms. The second return value lists the codes that are not part of the
// vocabulary.
func (v *Vocabulary) Normalize(codes []string) (valid []string, invalid []string) {
	seen := make(map[string]bool, len(codes))
	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		if v.IsValidCode(code) {
			valid = append(valid, code)
		} else {
			invalid = append(invalid, code)
		}
	}
	return valid, invalid
}

// JoinCodes renders a code list to the comma-joined storage form.
func JoinCodes(codes []string) string {
	return strings.Join(codes, ",")
}

// SplitCodes parses the comma-joined storage form back into a code list.
func SplitCodes(stored string) []string {
	if stored == "" {
		return nil
	}
	parts := strings.Split(stored, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.ToUpper(strings.TrimSpace(p)); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}
