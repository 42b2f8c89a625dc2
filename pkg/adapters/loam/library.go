// Package loam serves chord variations from a directory of Markdown documents
// managed by the Loam document engine. Each document describes one chord root
// in its YAML frontmatter; the body is free-form notes.
package loam

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/fretwise/pkg/adapters/memory"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
)

// Library adapts a Loam repository to ports.Library.
type Library struct {
	Repo *loam.TypedRepository[ChordMetadata]

	mu sync.Mutex
}

// New creates a Loam chord library over an initialized repository.
func New(repo core.Repository) *Library {
	return &Library{
		Repo: loam.NewTypedRepository[ChordMetadata](repo),
	}
}

// Open initializes the repository at path. A read-only library rejects SaveVariations.
func Open(path string, readOnly bool) (*Library, error) {
	repo, err := loam.Init(path,
		loam.WithStrict(true),
		loam.WithReadOnly(readOnly),
		loam.WithVersioning(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam repository at %s: %w", path, err)
	}
	return New(repo), nil
}

// load reads every chord document, keyed by root.
func (l *Library) load(ctx context.Context) (map[string][]domain.ChordVariation, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	chords := make(map[string][]domain.ChordVariation, len(docs))
	for _, doc := range docs {
		root, vs, err := doc.Data.variations(doc.ID)
		if err != nil {
			return nil, err
		}
		if existing, ok := seen[root]; ok {
			return nil, fmt.Errorf("collision detected: chord '%s' is defined in both '%s' and '%s'", root, existing, doc.ID)
		}
		seen[root] = doc.ID
		domain.SortVariations(vs)
		chords[root] = vs
	}
	return chords, nil
}

// ListVariations returns the variations of a chord document.
func (l *Library) ListVariations(ctx context.Context, root string) ([]domain.ChordVariation, error) {
	chords, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	vs := chords[root]
	if len(vs) == 0 {
		return nil, &domain.NotFoundError{Root: root}
	}
	return vs, nil
}

// ListRoots returns the sorted roots of all chord documents with at least one variation.
func (l *Library) ListRoots(ctx context.Context) ([]string, error) {
	chords, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	roots := make([]string, 0, len(chords))
	for root, vs := range chords {
		if len(vs) > 0 {
			roots = append(roots, root)
		}
	}
	slices.Sort(roots)
	return roots, nil
}

// Snapshot reads the whole repository once into an in-memory library.
func (l *Library) Snapshot(ctx context.Context) (ports.VariationSource, error) {
	chords, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	var all []domain.ChordVariation
	for _, vs := range chords {
		all = append(all, vs...)
	}
	return memory.NewLibrary(all...), nil
}

// SaveVariations merges the batch into the chord documents, one document per root.
// Documents are rewritten whole through the typed repository so the frontmatter
// and the index stay in sync; notes in the body are replaced by a title line.
func (l *Library) SaveVariations(ctx context.Context, batch []domain.ChordVariation) error {
	for _, v := range batch {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	chords, err := l.load(ctx)
	if err != nil {
		return err
	}

	var touched []string
	for _, v := range batch {
		root := v.Root()
		if !slices.Contains(touched, root) {
			touched = append(touched, root)
		}
		vs := chords[root]
		i := slices.IndexFunc(vs, func(c domain.ChordVariation) bool { return c.Name == v.Name })
		if i >= 0 {
			vs[i] = v.Clone()
		} else {
			vs = append(vs, v.Clone())
		}
		chords[root] = vs
	}

	for _, root := range touched {
		vs := chords[root]
		domain.SortVariations(vs)
		doc := &loam.DocumentModel[ChordMetadata]{
			ID:      root + ".md",
			Content: root + " chord shapes\n",
			Data:    metadataOf(root, vs),
		}
		if err := l.Repo.Save(ctx, doc); err != nil {
			return fmt.Errorf("loam save failed for %s: %w", root, err)
		}
	}
	return nil
}

func metadataOf(root string, vs []domain.ChordVariation) ChordMetadata {
	meta := ChordMetadata{Root: root, Variations: make([]ShapeMetadata, len(vs))}
	for i, v := range vs {
		meta.Variations[i] = shapeOf(v)
	}
	return meta
}
