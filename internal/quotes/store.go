package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"royalstay/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrQuoteNotFound = errors.New("quote not found or expired")
	ErrQuoteBusy     = errors.New("quote is being updated, please retry")
	ErrLockHeld      = errors.New("quote lock is held")
)

// Store keeps quotes between requests
type Store interface {
	Create(ctx context.Context, q *Quote, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Quote, error)
	// Update loads the quote, applies mutate and saves it atomically
	Update(ctx context.Context, id string, mutate func(q *Quote) error) (*Quote, error)
	Delete(ctx context.Context, id string) error

	// Lock marks a promo validation as outstanding for the quote
	Lock(ctx context.Context, id string, ttl time.Duration) (unlock func(context.Context), err error)
	Locked(ctx context.Context, id string) bool
}

const maxUpdateRetries = 5

// Lua script releasing the promo lock only if we still own it
const luaReleaseLock = `
-- KEYS[1] = lock key
-- ARGV[1] = owner token
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseLockScript = redis.NewScript(luaReleaseLock)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore stores quotes as JSON under royalstay:quotes:<id>
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Create(ctx context.Context, q *Quote, ttl time.Duration) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}

	ok, err := s.client.SetNX(ctx, constants.BuildQuoteKey(q.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store quote: %w", err)
	}
	if !ok {
		return fmt.Errorf("quote %s already exists", q.ID)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*Quote, error) {
	return s.get(ctx, s.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *redisStore) get(ctx context.Context, c getter, id string) (*Quote, error) {
	data, err := c.Get(ctx, constants.BuildQuoteKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	var q Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}
	return &q, nil
}

// Update uses WATCH/MULTI so concurrent writers never lose each other's changes
func (s *redisStore) Update(ctx context.Context, id string, mutate func(q *Quote) error) (*Quote, error) {
	key := constants.BuildQuoteKey(id)
	var updated *Quote

	txf := func(tx *redis.Tx) error {
		q, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}

		ttl, err := tx.PTTL(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to read quote ttl: %w", err)
		}
		if ttl <= 0 {
			return ErrQuoteNotFound
		}

		if err := mutate(q); err != nil {
			return err
		}
		q.Revision++

		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("failed to encode quote: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		if err == nil {
			updated = q
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, ErrQuoteBusy
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, constants.BuildQuoteKey(id)).Err()
}

func (s *redisStore) Lock(ctx context.Context, id string, ttl time.Duration) (func(context.Context), error) {
	key := constants.BuildQuoteLockKey(id)
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire quote lock: %w", err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func(ctx context.Context) {
		_ = releaseLockScript.Run(ctx, s.client, []string{key}, token).Err()
	}, nil
}

func (s *redisStore) Locked(ctx context.Context, id string) bool {
	n, err := s.client.Exists(ctx, constants.BuildQuoteLockKey(id)).Result()
	return err == nil && n > 0
}
