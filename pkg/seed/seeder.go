package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/fretwise/internal/logging"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports"
)

// DefaultBatchSize bounds the number of variations written per call.
const DefaultBatchSize = 100

// DefaultLockTTL is used when a locker is configured without a TTL.
const DefaultLockTTL = 30 * time.Second

// Batches splits items into consecutive chunks of at most size elements.
// The chunks are copies; mutating them does not touch items.
// A non-positive size falls back to DefaultBatchSize.
func Batches[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, append([]T(nil), items[start:end]...))
	}
	return out
}

// Seeder writes variations to a library.
type Seeder struct {
	writer    ports.VariationWriter
	locker    ports.DistributedLocker
	lockKey   string
	lockTTL   time.Duration
	batchSize int
	logger    *slog.Logger
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithBatchSize sets the maximum batch size.
func WithBatchSize(n int) Option {
	return func(s *Seeder) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithLocker serializes seeding runs that share key across instances.
func WithLocker(l ports.DistributedLocker, key string, ttl time.Duration) Option {
	return func(s *Seeder) {
		s.locker = l
		s.lockKey = key
		s.lockTTL = ttl
	}
}

// WithLogger sets the logger used for batch progress.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) {
		s.logger = logger
	}
}

// NewSeeder creates a Seeder writing to w.
func NewSeeder(w ports.VariationWriter, opts ...Option) *Seeder {
	s := &Seeder{
		writer:    w,
		batchSize: DefaultBatchSize,
		lockKey:   "seed",
		lockTTL:   DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Seed validates and writes variations. Batches never mix chord roots, so a
// failed run leaves every root either fully written or untouched up to the
// failing batch. Returns the number of variations written.
func (s *Seeder) Seed(ctx context.Context, variations []domain.ChordVariation) (int, error) {
	for _, v := range variations {
		if err := v.Validate(); err != nil {
			return 0, err
		}
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, s.lockKey, s.lockTTL)
		if err != nil {
			return 0, fmt.Errorf("failed to lock seeding: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to release seed lock", "key", s.lockKey, "err", err)
			}
		}()
	}

	written := 0
	for _, group := range groupByRoot(variations) {
		for _, batch := range Batches(group, s.batchSize) {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			if err := s.writer.SaveVariations(ctx, batch); err != nil {
				return written, fmt.Errorf("failed to save batch for %s: %w", batch[0].Root(), err)
			}
			written += len(batch)
			s.logger.Info("inserted batch", "chord", batch[0].Root(), "size", len(batch))
		}
	}
	return written, nil
}

// SeedFile loads, validates and writes a seed file.
func (s *Seeder) SeedFile(ctx context.Context, path string) (int, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	vs, err := Variations(entries)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return s.Seed(ctx, vs)
}

func groupByRoot(vs []domain.ChordVariation) [][]domain.ChordVariation {
	index := make(map[string]int)
	var groups [][]domain.ChordVariation
	for _, v := range vs {
		root := v.Root()
		i, ok := index[root]
		if !ok {
			i = len(groups)
			index[root] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], v)
	}
	return groups
}
