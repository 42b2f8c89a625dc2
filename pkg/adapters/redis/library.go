package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/fretwise/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "fretwise:"

// Library implements ports.Library on Redis.
//
// Layout (with the default prefix):
//
//	fretwise:chord:<name>  JSON encoded variation
//	fretwise:root:<root>   ZSET of variation names scored by ordinal
//	fretwise:roots         SET of chord roots
type Library struct {
	client *backend.Client
	prefix string
}

// Option configures the Redis adapters.
type Option func(*options)

type options struct {
	prefix string
	ttl    time.Duration
}

// WithTTL sets the expiration of recorded transitions. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

func buildOptions(opts []Option) options {
	o := options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewClient dials a Redis server.
func NewClient(address, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
}

// New creates a library connected to the given server.
func New(address, password string, db int, opts ...Option) *Library {
	return NewFromClient(NewClient(address, password, db), opts...)
}

// NewFromClient creates a library from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Library {
	o := buildOptions(opts)
	return &Library{
		client: client,
		prefix: o.prefix,
	}
}

// Client exposes the underlying connection so recorders and lockers can share it.
func (l *Library) Client() *backend.Client {
	return l.client
}

// Ping checks connectivity.
func (l *Library) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *Library) chordKey(name string) string {
	return l.prefix + "chord:" + name
}

func (l *Library) rootKey(root string) string {
	return l.prefix + "root:" + root
}

func (l *Library) rootsKey() string {
	return l.prefix + "roots"
}

// SaveVariations writes a batch in a single MULTI/EXEC transaction.
func (l *Library) SaveVariations(ctx context.Context, batch []domain.ChordVariation) error {
	for _, v := range batch {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	_, err := l.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		for _, v := range batch {
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", v.Name, err)
			}
			pipe.Set(ctx, l.chordKey(v.Name), data, 0)
			pipe.ZAdd(ctx, l.rootKey(v.Root()), backend.Z{
				Score:  float64(domain.Ordinal(v.Name)),
				Member: v.Name,
			})
			pipe.SAdd(ctx, l.rootsKey(), v.Root())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// ListVariations reads the index of a root and fetches its variations with one MGET.
func (l *Library) ListVariations(ctx context.Context, root string) ([]domain.ChordVariation, error) {
	names, err := l.client.ZRange(ctx, l.rootKey(root), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index of %s: %w", root, err)
	}
	if len(names) == 0 {
		return nil, &domain.NotFoundError{Root: root}
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = l.chordKey(name)
	}
	values, err := l.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get variations of %s: %w", root, err)
	}

	out := make([]domain.ChordVariation, 0, len(values))
	for i, raw := range values {
		s, ok := raw.(string)
		if !ok {
			// Indexed but missing: skip rather than fail the whole root.
			continue
		}
		var v domain.ChordVariation
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", names[i], err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, &domain.NotFoundError{Root: root}
	}

	domain.SortVariations(out)
	return out, nil
}

// ListRoots returns the sorted chord roots.
func (l *Library) ListRoots(ctx context.Context) ([]string, error) {
	roots, err := l.client.SMembers(ctx, l.rootsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	slices.Sort(roots)
	return roots, nil
}
