package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"royalstay/internal/shared/constants"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisStoreSuite struct {
	suite.Suite

	mr     *miniredis.Miniredis
	client *redis.Client
	other  *redis.Client
	store  Store
}

func (s *RedisStoreSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.other = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.store = NewRedisStore(s.client)
}

func (s *RedisStoreSuite) TearDownTest() {
	_ = s.client.Close()
	_ = s.other.Close()
}

func (s *RedisStoreSuite) seed(ttl time.Duration) *Quote {
	q := &Quote{
		ID: uuid.NewString(),
		Request: QuoteRequest{
			RoomID:    uuid.NewString(),
			CheckIn:   "2026-06-01",
			CheckOut:  "2026-06-03",
			RoomCount: 1,
			Adults:    2,
		},
	}
	s.Require().NoError(s.store.Create(context.Background(), q, ttl))
	return q
}

// writeBehind stores q from a second connection, keeping the key's ttl
func (s *RedisStoreSuite) writeBehind(q *Quote) {
	data, err := json.Marshal(q)
	s.Require().NoError(err)
	s.Require().NoError(s.other.Set(context.Background(), constants.BuildQuoteKey(q.ID), data, redis.KeepTTL).Err())
}

func (s *RedisStoreSuite) TestCreateAndGet() {
	q := s.seed(30 * time.Minute)

	got, err := s.store.Get(context.Background(), q.ID)
	s.Require().NoError(err)
	s.Equal(q.Request, got.Request)
	s.Equal(30*time.Minute, s.mr.TTL(constants.BuildQuoteKey(q.ID)))

	s.Error(s.store.Create(context.Background(), q, time.Minute))

	_, err = s.store.Get(context.Background(), uuid.NewString())
	s.ErrorIs(err, ErrQuoteNotFound)
}

func (s *RedisStoreSuite) TestUpdateKeepsRemainingTTL() {
	q := s.seed(30 * time.Minute)
	s.mr.FastForward(10 * time.Minute)

	updated, err := s.store.Update(context.Background(), q.ID, func(q *Quote) error {
		q.Request.Adults = 3
		return nil
	})
	s.Require().NoError(err)
	s.Equal(3, updated.Request.Adults)
	s.Equal(uint64(1), updated.Revision)
	s.Equal(20*time.Minute, s.mr.TTL(constants.BuildQuoteKey(q.ID)))

	stored, err := s.store.Get(context.Background(), q.ID)
	s.Require().NoError(err)
	s.Equal(3, stored.Request.Adults)
	s.Equal(uint64(1), stored.Revision)
}

func (s *RedisStoreSuite) TestUpdateOfExpiredQuote() {
	q := s.seed(time.Minute)
	s.mr.FastForward(2 * time.Minute)

	called := false
	_, err := s.store.Update(context.Background(), q.ID, func(*Quote) error {
		called = true
		return nil
	})
	s.ErrorIs(err, ErrQuoteNotFound)
	s.False(called)

	// a quote stored without an expiry counts as gone
	data, err := json.Marshal(q)
	s.Require().NoError(err)
	s.Require().NoError(s.mr.Set(constants.BuildQuoteKey(q.ID), string(data)))

	_, err = s.store.Update(context.Background(), q.ID, func(*Quote) error {
		called = true
		return nil
	})
	s.ErrorIs(err, ErrQuoteNotFound)
	s.False(called)
}

func (s *RedisStoreSuite) TestUpdateMutateErrorKeepsQuote() {
	q := s.seed(30 * time.Minute)

	_, err := s.store.Update(context.Background(), q.ID, func(q *Quote) error {
		q.Request.Adults = 4
		return ErrQuoteClaimed
	})
	s.ErrorIs(err, ErrQuoteClaimed)

	stored, err := s.store.Get(context.Background(), q.ID)
	s.Require().NoError(err)
	s.Equal(2, stored.Request.Adults)
	s.Zero(stored.Revision)
}

func (s *RedisStoreSuite) TestUpdateRetriesAfterConcurrentWrite() {
	q := s.seed(30 * time.Minute)

	calls := 0
	updated, err := s.store.Update(context.Background(), q.ID, func(current *Quote) error {
		calls++
		if calls == 1 {
			concurrent := *current
			concurrent.Request.RoomCount = 2
			concurrent.Revision++
			s.writeBehind(&concurrent)
		}
		current.Request.Adults = 3
		return nil
	})
	s.Require().NoError(err)
	s.Equal(2, calls)

	// both writes survive
	s.Equal(2, updated.Request.RoomCount)
	s.Equal(3, updated.Request.Adults)
	s.Equal(uint64(2), updated.Revision)
	s.Equal(30*time.Minute, s.mr.TTL(constants.BuildQuoteKey(q.ID)))
}

func (s *RedisStoreSuite) TestUpdateGivesUpUnderConstantContention() {
	q := s.seed(30 * time.Minute)

	calls := 0
	_, err := s.store.Update(context.Background(), q.ID, func(current *Quote) error {
		calls++
		concurrent := *current
		concurrent.Revision += 10
		s.writeBehind(&concurrent)
		return nil
	})
	s.ErrorIs(err, ErrQuoteBusy)
	s.Equal(maxUpdateRetries, calls)
}

func (s *RedisStoreSuite) TestLock() {
	ctx := context.Background()
	id := uuid.NewString()

	s.False(s.store.Locked(ctx, id))

	unlock, err := s.store.Lock(ctx, id, 30*time.Second)
	s.Require().NoError(err)
	s.True(s.store.Locked(ctx, id))
	s.Equal(30*time.Second, s.mr.TTL(constants.BuildQuoteLockKey(id)))

	_, err = s.store.Lock(ctx, id, 30*time.Second)
	s.ErrorIs(err, ErrLockHeld)

	unlock(ctx)
	s.False(s.store.Locked(ctx, id))

	again, err := s.store.Lock(ctx, id, 30*time.Second)
	s.Require().NoError(err)
	again(ctx)
}

func (s *RedisStoreSuite) TestUnlockOnlyReleasesOwnLock() {
	ctx := context.Background()
	id := uuid.NewString()

	expired, err := s.store.Lock(ctx, id, time.Second)
	s.Require().NoError(err)
	s.mr.FastForward(2 * time.Second)
	s.False(s.store.Locked(ctx, id))

	current, err := s.store.Lock(ctx, id, 30*time.Second)
	s.Require().NoError(err)

	// the first holder timed out and must not release the new lock
	expired(ctx)
	s.True(s.store.Locked(ctx, id))

	current(ctx)
	s.False(s.store.Locked(ctx, id))
}

func (s *RedisStoreSuite) TestDelete() {
	q := s.seed(30 * time.Minute)

	s.Require().NoError(s.store.Delete(context.Background(), q.ID))
	_, err := s.store.Get(context.Background(), q.ID)
	s.ErrorIs(err, ErrQuoteNotFound)

	s.NoError(s.store.Delete(context.Background(), q.ID))
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func TestRedisStoreConnectionErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)
	ctx := context.Background()
	id := uuid.NewString()
	down := errors.New("connection refused")

	mock.ExpectGet(constants.BuildQuoteKey(id)).SetErr(down)
	_, err := store.Get(ctx, id)
	require.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrQuoteNotFound)

	mock.ExpectGet(constants.BuildQuoteKey(id)).SetVal("{not json")
	_, err = store.Get(ctx, id)
	assert.ErrorContains(t, err, "failed to decode quote")

	mock.ExpectExists(constants.BuildQuoteLockKey(id)).SetErr(down)
	assert.False(t, store.Locked(ctx, id))

	mock.ExpectDel(constants.BuildQuoteKey(id)).SetErr(down)
	assert.ErrorIs(t, store.Delete(ctx, id), down)

	assert.NoError(t, mock.ExpectationsWereMet())
}
