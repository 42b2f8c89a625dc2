package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/fretwise/internal/ranker"
	"github.com/aretw0/fretwise/pkg/adapters/redis"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/ports"
	"github.com/aretw0/fretwise/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLibrary_Contract(t *testing.T) {
	_, client := setup(t)
	tests.RunLibraryContract(t, redis.NewFromClient(client))
}

func TestRedisRecorder_Contract(t *testing.T) {
	_, client := setup(t)
	rec := redis.NewRecorder(client)

	tests.RunRecorderContract(t, rec, func(key domain.PairKey) []domain.Transition {
		got, err := rec.Transitions(context.Background(), key)
		require.NoError(t, err)
		return got
	})

	pairs, err := rec.Pairs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A-D"}, pairs)
}

func TestRedisLibrary_Prefix(t *testing.T) {
	mr, client := setup(t)
	lib := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, lib.SaveVariations(ctx, tests.SampleVariations(t)))

	assert.True(t, mr.Exists("custom:app:chord:A v1"), "Expected chord key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:root:A"), "Expected root index with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:roots"))
	assert.NoError(t, lib.Ping(ctx))
}

func TestRedisLibrary_SaveRejectsInvalid(t *testing.T) {
	mr, client := setup(t)
	lib := redis.NewFromClient(client)

	bad := domain.ChordVariation{Name: "B v1", Positions: []domain.Fret{0}, Fingerings: nil}
	err := lib.SaveVariations(context.Background(), append(tests.SampleVariations(t), bad))
	assert.ErrorIs(t, err, domain.ErrInvalidVariation)
	assert.False(t, mr.Exists("fretwise:chord:A v1"), "an invalid batch must not be partially written")
}

func TestRedisLibrary_RankEndToEnd(t *testing.T) {
	_, client := setup(t)
	lib := redis.NewFromClient(client)
	rec := redis.NewRecorder(client)
	ctx := context.Background()
	require.NoError(t, lib.SaveVariations(ctx, tests.SampleVariations(t)))

	set, err := ranker.New(lib, ranker.WithRecorder(rec)).Rank(ctx, []string{"A", "D", "G"})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	best, ok := set.Best(domain.PairKey{First: "A", Second: "D"})
	require.True(t, ok)
	assert.Equal(t, "A v1 D v1", best.Name)

	stored, err := rec.Transitions(ctx, domain.PairKey{First: "D", Second: "G"})
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}

func TestRedisRecorder_TTL(t *testing.T) {
	mr, client := setup(t)
	rec := redis.NewRecorder(client, redis.WithTTL(time.Second))
	ctx := context.Background()
	key := domain.PairKey{First: "A", Second: "G"}
	vs := tests.SampleVariations(t)

	require.NoError(t, rec.RecordTransitions(ctx, key, []domain.Transition{
		domain.NewTransition(vs[0], vs[4], domain.Score{Total: -5.5}),
	}))
	got, err := rec.Transitions(ctx, key)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	mr.FastForward(2 * time.Second)

	got, err = rec.Transitions(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := setup(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "chords.yaml", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:chords.yaml"), "Lock key should be set in Redis")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:chords.yaml"), "Lock key should be removed after unlock")
}

func TestRedisLocker_LeaseExpires(t *testing.T) {
	mr, client := setup(t)
	var locker ports.DistributedLocker = redis.NewLocker(client, "test:")
	ctx := context.Background()

	_, err := locker.Lock(ctx, "seed:chords.yaml", 3*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, mr.TTL("test:lock:seed:chords.yaml"))

	// The holder never unlocks; once the lease lapses another seed run proceeds.
	mr.FastForward(4 * time.Second)
	unlock, err := locker.Lock(ctx, "seed:chords.yaml", 3*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestRedisLocker_Contention(t *testing.T) {
	mr, client := setup(t)
	locker1 := redis.NewLocker(client, "test:")
	locker2 := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock1, err := locker1.Lock(ctx, "seed", 5*time.Second)
	require.NoError(t, err)

	ctxTimeout, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker2.Lock(ctxTimeout, "seed", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock1(ctx))

	unlock2, err := locker2.Lock(ctx, "seed", 5*time.Second)
	require.NoError(t, err)
	defer func() { _ = unlock2(ctx) }()
	assert.True(t, mr.Exists("test:lock:seed"))
}

func TestRedisLocker_StaleUnlockKeepsNewHolder(t *testing.T) {
	mr, client := setup(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, "seed", time.Second)
	require.NoError(t, err)

	// First holder's lease expires and a second holder takes over.
	mr.FastForward(2 * time.Second)
	unlock2, err := locker.Lock(ctx, "seed", 5*time.Second)
	require.NoError(t, err)

	require.NoError(t, unlock1(ctx))
	assert.True(t, mr.Exists("test:lock:seed"), "stale unlock must not release the new holder")
	require.NoError(t, unlock2(ctx))
	assert.False(t, mr.Exists("test:lock:seed"))
}
