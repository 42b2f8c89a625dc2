package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/fretwise/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleData []byte

// ErrInvalidSeed is returned when a seed document is not a root -> shapes mapping.
var ErrInvalidSeed = errors.New("invalid seed document")

// Shape is one entry of a seed file, written with seed markers.
type Shape struct {
	Positions  []string `json:"positions" yaml:"positions"`
	Fingerings []string `json:"fingerings" yaml:"fingerings"`
}

// Entry groups the shapes of a chord root in file order.
type Entry struct {
	Root   string
	Shapes []Shape
}

// Load parses a seed document. JSON is accepted as a subset of YAML.
// Root order is preserved.
func Load(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and parses the seed file at path.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes seed bytes.
func Parse(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must map chord roots to shapes", ErrInvalidSeed)
	}

	// Mapping content alternates key and value nodes.
	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		var shapes []Shape
		if err := value.Decode(&shapes); err != nil {
			return nil, fmt.Errorf("%w: chord %q (line %d): %v", ErrInvalidSeed, key.Value, key.Line, err)
		}
		entries = append(entries, Entry{Root: key.Value, Shapes: shapes})
	}
	return entries, nil
}

// Variations names and validates the shapes of every entry.
func Variations(entries []Entry) ([]domain.ChordVariation, error) {
	var out []domain.ChordVariation
	for _, e := range entries {
		for i, s := range e.Shapes {
			v, err := domain.NewVariation(domain.VariationName(e.Root, i+1), s.Positions, s.Fingerings)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// Sample returns the embedded sample library.
func Sample() []domain.ChordVariation {
	entries, err := Parse(sampleData)
	if err != nil {
		panic(fmt.Sprintf("seed: embedded sample: %v", err))
	}
	vs, err := Variations(entries)
	if err != nil {
		panic(fmt.Sprintf("seed: embedded sample: %v", err))
	}
	return vs
}
