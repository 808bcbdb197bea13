package session

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRedisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func TestSessionService(t *testing.T) {
	ctx := context.Background()

	t.Run("Create Stores Under Prefixed Key", func(t *testing.T) {
		redis := new(MockRedisRepository)
		service := NewSessionService(redis)
		session := &models.Session{SessionID: "abc", UserID: "u-1"}

		redis.On("Set", ctx, constvars.RedisKeySessionPrefix+"abc", session, time.Hour).Return(nil)

		require.NoError(t, service.Create(ctx, session, time.Hour))
		redis.AssertExpectations(t)
	})

	t.Run("Get Decodes Session", func(t *testing.T) {
		redis := new(MockRedisRepository)
		service := NewSessionService(redis)

		redis.On("Get", ctx, "session:abc").Return(`{"session_id":"abc","user_id":"u-1","roles":["Patient"]}`, nil)

		session, err := service.Get(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "u-1", session.UserID)
		assert.True(t, session.HasRole(constvars.RolePatient))
	})

	t.Run("Get Missing Session Returns Nil", func(t *testing.T) {
		redis := new(MockRedisRepository)
		service := NewSessionService(redis)

		redis.On("Get", ctx, "session:gone").Return("", nil)

		session, err := service.Get(ctx, "gone")
		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("Get Corrupt Session Fails", func(t *testing.T) {
		redis := new(MockRedisRepository)
		service := NewSessionService(redis)

		redis.On("Get", ctx, "session:bad").Return("{not json", nil)

		_, err := service.Get(ctx, "bad")
		assert.Error(t, err)
	})

	t.Run("Delete Removes Key", func(t *testing.T) {
		redis := new(MockRedisRepository)
		service := NewSessionService(redis)

		redis.On("Delete", ctx, []string{"session:abc"}).Return(nil)

		require.NoError(t, service.Delete(ctx, "abc"))
		redis.AssertExpectations(t)
	})
}
