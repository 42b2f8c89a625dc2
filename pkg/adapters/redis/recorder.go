package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/fretwise/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Recorder implements ports.TransitionRecorder on Redis.
// Each pair is stored as one JSON list under <prefix>transitions:<First-Second>
// and indexed in the <prefix>transitions ZSET by recording time.
type Recorder struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// NewRecorder creates a recorder from an existing client.
func NewRecorder(client *backend.Client, opts ...Option) *Recorder {
	o := buildOptions(opts)
	return &Recorder{
		client: client,
		prefix: o.prefix,
		ttl:    o.ttl,
	}
}

func (r *Recorder) key(pair domain.PairKey) string {
	return r.prefix + "transitions:" + pair.String()
}

func (r *Recorder) indexKey() string {
	return r.prefix + "transitions"
}

// RecordTransitions replaces the stored ranking of a pair.
func (r *Recorder) RecordTransitions(ctx context.Context, pair domain.PairKey, transitions []domain.Transition) error {
	data, err := json.Marshal(transitions)
	if err != nil {
		return fmt.Errorf("failed to marshal transitions: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(pair), data, r.ttl)
	pipe.ZAdd(ctx, r.indexKey(), backend.Z{
		Score:  float64(time.Now().Unix()),
		Member: pair.String(),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record %s: %w", pair, err)
	}
	return nil
}

// Transitions loads the recorded ranking of a pair. A pair never recorded (or
// expired) yields an empty slice.
func (r *Recorder) Transitions(ctx context.Context, pair domain.PairKey) ([]domain.Transition, error) {
	val, err := r.client.Get(ctx, r.key(pair)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transitions of %s: %w", pair, err)
	}

	var out []domain.Transition
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transitions of %s: %w", pair, err)
	}
	return out, nil
}

// Pairs lists recorded pair keys, most recent first.
func (r *Recorder) Pairs(ctx context.Context) ([]string, error) {
	return r.client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
}
