package tx

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const numShards = 64

type shardKey struct{}

// WithShardKey scopes a memory unit of work to key, so unrelated keys do not
// serialize behind each other.
func WithShardKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, shardKey{}, key)
}

// ShardedRunner serializes in-memory units of work that share a shard key.
// Calls without a key share shard 0.
type ShardedRunner struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

// NewShardedRunner builds an in-memory runner. A zero timeout uses DefaultTimeout.
func NewShardedRunner(timeout time.Duration) *ShardedRunner {
	return &ShardedRunner{timeout: timeout}
}

func (r *ShardedRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return aborted(err)
	}

	ctx, cancel := withDeadline(ctx, r.timeout)
	defer cancel()

	shard := r.selectShard(ctx)
	r.shards[shard].Lock()
	defer r.shards[shard].Unlock()

	if err := ctx.Err(); err != nil {
		return aborted(err)
	}
	return fn(ctx)
}

func (r *ShardedRunner) selectShard(ctx context.Context) int {
	key, ok := ctx.Value(shardKey{}).(string)
	if !ok || key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % numShards)
}
