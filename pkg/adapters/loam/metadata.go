package loam

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/aretw0/fretwise/pkg/domain"
)

// ChordMetadata is the frontmatter of a chord document.
// It uses "mapstructure" tags to match the YAML keys written by hand.
//
//	---
//	root: A
//	variations:
//	  - positions: [x, 0, 2, 2, 2, 0]
//	    fingerings: ["-", "-", 1, 2, 3, "-"]
//	---
type ChordMetadata struct {
	// Root defaults to the document file name without extension.
	Root       string          `json:"root" mapstructure:"root" yaml:"root"`
	Variations []ShapeMetadata `json:"variations" mapstructure:"variations" yaml:"variations"`
}

// ShapeMetadata is one fingering inside a chord document.
// Markers are kept untyped so unquoted YAML numbers decode as well as strings.
type ShapeMetadata struct {
	// Name defaults to "<root> v<n>" from the list position.
	Name       string `json:"name,omitempty" mapstructure:"name" yaml:"name,omitempty"`
	Positions  []any  `json:"positions" mapstructure:"positions" yaml:"positions,flow"`
	Fingerings []any  `json:"fingerings" mapstructure:"fingerings" yaml:"fingerings,flow"`
}

func (m ChordMetadata) variations(docID string) (string, []domain.ChordVariation, error) {
	root := m.Root
	if root == "" {
		root = trimExtension(path.Base(filepath.ToSlash(docID)))
	}

	out := make([]domain.ChordVariation, 0, len(m.Variations))
	for i, shape := range m.Variations {
		name := shape.Name
		if name == "" {
			name = domain.VariationName(root, i+1)
		}
		if domain.RootOf(name) != root {
			return "", nil, fmt.Errorf("%s: variation %q does not belong to chord %q", docID, name, root)
		}
		v, err := domain.NewVariation(name, markers(shape.Positions), markers(shape.Fingerings))
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", docID, err)
		}
		out = append(out, v)
	}
	return root, out, nil
}

func shapeOf(v domain.ChordVariation) ShapeMetadata {
	s := ShapeMetadata{
		Name:       v.Name,
		Positions:  make([]any, len(v.Positions)),
		Fingerings: make([]any, len(v.Fingerings)),
	}
	for i, p := range v.Positions {
		s.Positions[i] = p.String()
	}
	for i, f := range v.Fingerings {
		s.Fingerings[i] = f.String()
	}
	return s
}

func markers(raw []any) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
