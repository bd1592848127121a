package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultStoreTTL = 24 * time.Hour

// Compares the stored submission sequence before writing so concurrent
// submissions resolve to last-submitted-wins regardless of which
// upstream call returned first.
const putScript = `
local existing = redis.call("get", KEYS[1])
if existing then
	local decoded = cjson.decode(existing)
	if decoded.seq > tonumber(ARGV[1]) then
		return 0
	end
end
redis.call("set", KEYS[1], ARGV[2], "px", ARGV[3])
return 1
`

// RedisStore is the shared-deployment Store.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultStoreTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) profileKey(sessionID string) string {
	return "profile:session:" + sessionID
}

func (r *RedisStore) seqKey(sessionID string) string {
	return "profile:seq:" + sessionID
}

func (r *RedisStore) NextSeq(ctx context.Context, sessionID string) (int64, error) {
	key := r.seqKey(sessionID)
	seq, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate submission seq: %w", err)
	}
	r.client.Expire(ctx, key, r.ttl)
	return seq, nil
}

func (r *RedisStore) Put(ctx context.Context, sessionID string, seq int64, result Result) (bool, error) {
	stored := Stored{Seq: seq, Result: result}
	data, err := json.Marshal(stored)
	if err != nil {
		return false, fmt.Errorf("marshal profile: %w", err)
	}

	applied, err := r.client.Eval(ctx, putScript,
		[]string{r.profileKey(sessionID)},
		seq, string(data), r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("store profile: %w", err)
	}
	return applied == 1, nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*Stored, error) {
	data, err := r.client.Get(ctx, r.profileKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var stored Stored
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &stored, nil
}
