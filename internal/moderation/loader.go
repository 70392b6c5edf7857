package moderation

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed forbidden_words.yaml
var embeddedTerms []byte

type termFile struct {
	Terms []string `yaml:"terms"`
}

// LoadTerms reads the term list from path, or the embedded list if path is empty
func LoadTerms(path string) ([]string, error) {
	if path == "" {
		return parseTerms(embeddedTerms)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read terms file: %w", err)
	}
	return parseTerms(data)
}

// Load builds a filter from LoadTerms
func Load(path string) (*Filter, error) {
	terms, err := LoadTerms(path)
	if err != nil {
		return nil, err
	}
	return NewFilter(terms), nil
}

func parseTerms(data []byte) ([]string, error) {
	var file termFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode terms: %w", err)
	}
	if len(file.Terms) == 0 {
		return nil, fmt.Errorf("terms list is empty")
	}
	return file.Terms, nil
}
