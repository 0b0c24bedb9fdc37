package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nutribot_backend/platform/apperr"
)

const stateKeyPrefix = "conv:state:"

// RedisStore keeps conversation states in Redis so multiple replicas share
// them. Read-modify-write sequences are safe because the dispatcher holds the
// per-user lock for the whole event.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A zero ttl disables key expiry;
// the reaper then owns cleanup.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

func stateKey(userID int64) string {
	return fmt.Sprintf("%s%d", stateKeyPrefix, userID)
}

func (r *RedisStore) Get(ctx context.Context, userID int64) (State, bool, error) {
	raw, err := r.client.Get(ctx, stateKey(userID)).Bytes()
	if err == redis.Nil {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("get conversation state: %w", err)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, false, fmt.Errorf("decode conversation state: %w", err)
	}
	if st.Fields == nil {
		st.Fields = make(map[string]string)
	}
	return st, true, nil
}

func (r *RedisStore) Start(ctx context.Context, userID int64, wizard, step string, fields map[string]string) (State, error) {
	st := State{
		UserID:    userID,
		Wizard:    wizard,
		Step:      step,
		Fields:    make(map[string]string, len(fields)),
		CreatedAt: time.Now().UTC(),
	}
	for k, v := range fields {
		st.Fields[k] = v
	}
	if err := r.put(ctx, st); err != nil {
		return State{}, err
	}
	return st, nil
}

func (r *RedisStore) Advance(ctx context.Context, userID int64, fieldKey, value, nextStep string) (State, error) {
	st, ok, err := r.Get(ctx, userID)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{}, apperr.NoActiveState("no conversation in progress")
	}

	if fieldKey != "" {
		st.Fields[fieldKey] = value
	}
	st.Step = nextStep
	if err := r.put(ctx, st); err != nil {
		return State{}, err
	}
	return st, nil
}

func (r *RedisStore) Clear(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear conversation state: %w", err)
	}
	return nil
}

// ReapOlderThan scans state keys and removes expired ones. With a non-zero
// ttl Redis expiry already covers this; the scan handles ttl-less setups.
func (r *RedisStore) ReapOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	reaped := 0
	iter := r.client.Scan(ctx, 0, stateKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		var st State
		if err := json.Unmarshal(raw, &st); err != nil || st.CreatedAt.Before(cutoff) {
			if delErr := r.client.Del(ctx, key).Err(); delErr == nil {
				reaped++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return reaped, fmt.Errorf("scan conversation states: %w", err)
	}
	return reaped, nil
}

func (r *RedisStore) put(ctx context.Context, st State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode conversation state: %w", err)
	}
	if err := r.client.Set(ctx, stateKey(st.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("store conversation state: %w", err)
	}
	return nil
}
