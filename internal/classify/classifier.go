package classify

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"staffhub/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

// kindsFile mirrors the embedded YAML layout
type kindsFile struct {
	Kinds map[string][]string `yaml:"kinds"`
}

// Classifier maps a filename extension to one of the four media kinds.
// Pure lookup, no side effects, no error cases: any unrecognized extension
// classifies as documents.
type Classifier struct {
	byExtension map[string]models.MediaKind
}

// NewClassifier loads the embedded extension allow-lists.
func NewClassifier() (*Classifier, error) {
	data, err := configFiles.ReadFile("config/kinds.yaml")
	if err != nil {
		return nil, fmt.Errorf("read kind registry: %w", err)
	}

	var file kindsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal kind registry: %w", err)
	}

	c := &Classifier{byExtension: make(map[string]models.MediaKind)}
	for name, extensions := range file.Kinds {
		kind := models.MediaKind(name)
		if !models.ValidKind(kind) {
			return nil, fmt.Errorf("unknown media kind in registry: %s", name)
		}
		for _, ext := range extensions {
			c.byExtension[strings.ToLower(ext)] = kind
		}
	}

	return c, nil
}

// Classify returns the media kind for a filename. Extension matching is
// case-insensitive; files without an extension are documents.
func (c *Classifier) Classify(filename string) models.MediaKind {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return models.KindDocuments
	}

	if kind, ok := c.byExtension[ext]; ok {
		return kind
	}
	return models.KindDocuments
}
