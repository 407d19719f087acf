// internal/app/store/intents/redis.go
package intents

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "luct:intent:"
	lockPrefix = "luct:intent:lock:"
	indexKey   = "luct:intents"
)

// unlockScript deletes the lease only while it still carries our token, so
// a holder whose lease expired cannot release the next holder's.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis stores each intent as JSON under luct:intent:<id> with a TTL, and
// tracks ids in the luct:intents set.
type Redis struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, now: time.Now}
}

func key(id string) string { return keyPrefix + id }

func lockKey(id string) string { return lockPrefix + id }

// Lock takes the lease with SET NX under luct:intent:lock:<id>.
func (s *Redis) Lock(ctx context.Context, id string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	ok, err := s.rdb.SetNX(ctx, lockKey(id), token, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "lock intent %s", id)
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = unlockScript.Run(rctx, s.rdb, []string{lockKey(id)}, token).Err()
	}, nil
}

func (s *Redis) Save(ctx context.Context, in Intent) error {
	stamp(&in, s.now().UTC())
	b, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "encode intent")
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(in.ID), b, TTL)
	pipe.SAdd(ctx, indexKey, in.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "save intent %s", in.ID)
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, id string) (Intent, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return Intent{}, ErrNotFound
	}
	if err != nil {
		return Intent{}, errors.Wrapf(err, "get intent %s", id)
	}
	var in Intent
	if err := json.Unmarshal(b, &in); err != nil {
		return Intent{}, errors.Wrapf(err, "decode intent %s", id)
	}
	return in, nil
}

func (s *Redis) Delete(ctx context.Context, id string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "delete intent %s", id)
	}
	return nil
}

// List returns live intents, oldest first. Ids whose value has expired are
// pruned from the index.
func (s *Redis) List(ctx context.Context) ([]Intent, error) {
	ids, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list intents")
	}
	out := make([]Intent, 0, len(ids))
	for _, id := range ids {
		in, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			s.rdb.SRem(ctx, indexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
