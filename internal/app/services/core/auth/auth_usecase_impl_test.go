package auth

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/app/services/shared/ratelimiter"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.User, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).([]models.User)
	return data, called.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	called := m.Called(ctx, args)
	return called.Int(0), called.Error(1)
}

func (m *MockUserRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.User, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).(*models.User)
	return data, called.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, entity *models.User) (*models.User, error) {
	called := m.Called(ctx, entity)
	data, _ := called.Get(0).(*models.User)
	return data, called.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, entity *models.User) (*models.User, error) {
	called := m.Called(ctx, entity)
	data, _ := called.Get(0).(*models.User)
	return data, called.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) CountRelations(ctx context.Context, ids []string) (map[string]map[string]int, error) {
	called := m.Called(ctx, ids)
	data, _ := called.Get(0).(map[string]map[string]int)
	return data, called.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	called := m.Called(ctx, email)
	data, _ := called.Get(0).(*models.User)
	return data, called.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, session *models.Session, ttl time.Duration) error {
	return m.Called(ctx, session, ttl).Error(0)
}

func (m *MockSessionService) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	called := m.Called(ctx, sessionID)
	data, _ := called.Get(0).(*models.Session)
	return data, called.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) HasAccess(roles []string, entity, operation string) (bool, error) {
	called := m.Called(roles, entity, operation)
	return called.Bool(0), called.Error(1)
}

func (m *MockAccessService) Authorize(session *models.Session, entity, operation string) error {
	return m.Called(session, entity, operation).Error(0)
}

func (m *MockAccessService) Abilities(roles []string) (map[string][]string, error) {
	called := m.Called(roles)
	data, _ := called.Get(0).(map[string][]string)
	return data, called.Error(1)
}

func (m *MockAccessService) RoleAbilities(roles []string) ([]responses.RoleAbilities, error) {
	called := m.Called(roles)
	data, _ := called.Get(0).([]responses.RoleAbilities)
	return data, called.Error(1)
}

func (m *MockAccessService) FilterIncludes(roles []string, includes []string, relationEntities map[string]string) []string {
	return m.Called(roles, includes, relationEntities).Get(0).([]string)
}

func (m *MockAccessService) ScopeOwnership(session *models.Session, entity string, args *requests.FindArgs) *requests.FindArgs {
	return m.Called(session, entity, args).Get(0).(*requests.FindArgs)
}

func (m *MockAccessService) CheckOwnership(session *models.Session, entity, operation string, values map[string]string) error {
	return m.Called(session, entity, operation, values).Error(0)
}

type MockFailureLimiter struct {
	mock.Mock
}

func (m *MockFailureLimiter) Hit(ctx context.Context, in *ratelimiter.HitInput) (*ratelimiter.HitOutput, error) {
	called := m.Called(ctx, in)
	data, _ := called.Get(0).(*ratelimiter.HitOutput)
	return data, called.Error(1)
}

func (m *MockFailureLimiter) Exceeded(ctx context.Context, in *ratelimiter.HitInput) (bool, int, error) {
	called := m.Called(ctx, in)
	return called.Bool(0), called.Int(1), called.Error(2)
}

func (m *MockFailureLimiter) Reset(ctx context.Context, in *ratelimiter.HitInput) error {
	return m.Called(ctx, in).Error(0)
}

type authFixture struct {
	usecase  *authUsecase
	users    *MockUserRepository
	sessions *MockSessionService
	access   *MockAccessService
	limiter  *MockFailureLimiter
}

func newAuthFixture() *authFixture {
	internalConfig := &config.InternalConfig{
		App: config.App{LoginMaxFailedAttempts: 3, LoginFailureWindowInSecond: 60},
		JWT: config.AppJWT{Secret: "test-secret", ExpTimeInHour: 2},
	}
	fixture := &authFixture{
		users:    new(MockUserRepository),
		sessions: new(MockSessionService),
		access:   new(MockAccessService),
		limiter:  new(MockFailureLimiter),
	}
	fixture.usecase = NewAuthUsecase(fixture.users, fixture.sessions, fixture.access, fixture.limiter, internalConfig, zap.NewNop()).(*authUsecase)
	return fixture
}

func statusCode(t *testing.T, err error) int {
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "error should be a CustomError")
	return customErr.StatusCode
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("Secret#123")
	require.NoError(t, err)
	user := &models.User{ID: "user-1", Email: "doc@clinic.test", Role: constvars.RoleHealthcareProvider, TenantID: "tenant-1", PasswordHash: hash}

	t.Run("Valid Credentials Create Session", func(t *testing.T) {
		f := newAuthFixture()
		fixedNow := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		f.usecase.now = func() time.Time { return fixedNow }

		f.limiter.On("Exceeded", ctx, mock.Anything).Return(false, 0, nil)
		f.users.On("FindByEmail", ctx, "doc@clinic.test").Return(user, nil)
		f.limiter.On("Reset", ctx, mock.Anything).Return(nil)

		var stored *models.Session
		f.sessions.On("Create", ctx, mock.AnythingOfType("*models.Session"), 2*time.Hour).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Session) }).
			Return(nil)

		response, err := f.usecase.Login(ctx, &requests.LoginUser{Email: "doc@clinic.test", Password: "Secret#123"})
		require.NoError(t, err)

		require.NotNil(t, stored)
		assert.Equal(t, []string{constvars.RoleHealthcareProvider}, stored.Roles)
		assert.Equal(t, fixedNow.Add(2*time.Hour), response.ExpiresAt)

		sessionID, err := utils.ParseSessionJWTAt(response.Token, "test-secret", fixedNow.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, stored.SessionID, sessionID, "token subject should be the session id")

		_, err = utils.ParseSessionJWTAt(response.Token, "test-secret", fixedNow.Add(3*time.Hour))
		assert.Error(t, err, "token should expire with the session")
		f.sessions.AssertExpectations(t)
	})

	t.Run("Wrong Password Records Failure", func(t *testing.T) {
		f := newAuthFixture()

		f.limiter.On("Exceeded", ctx, mock.Anything).Return(false, 0, nil)
		f.users.On("FindByEmail", ctx, "doc@clinic.test").Return(user, nil)
		f.limiter.On("Hit", ctx, mock.MatchedBy(func(in *ratelimiter.HitInput) bool {
			return in.Subject == "doc@clinic.test" && in.MaxQuota == 3
		})).Return(&ratelimiter.HitOutput{Allowed: true}, nil)

		_, err := f.usecase.Login(ctx, &requests.LoginUser{Email: "doc@clinic.test", Password: "wrong"})

		assert.Equal(t, constvars.StatusUnauthorized, statusCode(t, err))
		f.limiter.AssertExpectations(t)
		f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Email Is Indistinguishable", func(t *testing.T) {
		f := newAuthFixture()

		f.limiter.On("Exceeded", ctx, mock.Anything).Return(false, 0, nil)
		f.users.On("FindByEmail", ctx, "ghost@clinic.test").Return(nil, nil)
		f.limiter.On("Hit", ctx, mock.Anything).Return(&ratelimiter.HitOutput{Allowed: true}, nil)

		_, err := f.usecase.Login(ctx, &requests.LoginUser{Email: "ghost@clinic.test", Password: "whatever"})

		assert.Equal(t, constvars.StatusUnauthorized, statusCode(t, err))
	})

	t.Run("Blocked Account Skips Lookup", func(t *testing.T) {
		f := newAuthFixture()

		f.limiter.On("Exceeded", ctx, mock.Anything).Return(true, 30, nil)

		_, err := f.usecase.Login(ctx, &requests.LoginUser{Email: "doc@clinic.test", Password: "Secret#123"})

		assert.Equal(t, constvars.StatusTooManyRequests, statusCode(t, err))
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_ResolveSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Token Returns Session", func(t *testing.T) {
		f := newAuthFixture()
		token, err := utils.GenerateSessionJWT("session-1", "test-secret", time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		f.sessions.On("Get", ctx, "session-1").Return(&models.Session{SessionID: "session-1", UserID: "user-1"}, nil)

		session, err := f.usecase.ResolveSession(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", session.UserID)
	})

	t.Run("Expired Session Is Unauthorized", func(t *testing.T) {
		f := newAuthFixture()
		token, err := utils.GenerateSessionJWT("session-2", "test-secret", time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		f.sessions.On("Get", ctx, "session-2").Return(nil, nil)

		_, err = f.usecase.ResolveSession(ctx, token)
		assert.Equal(t, constvars.StatusUnauthorized, statusCode(t, err))
	})

	t.Run("Foreign Token Is Rejected", func(t *testing.T) {
		f := newAuthFixture()
		token, err := utils.GenerateSessionJWT("session-3", "other-secret", time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = f.usecase.ResolveSession(ctx, token)
		assert.Equal(t, constvars.StatusUnauthorized, statusCode(t, err))
		f.sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_Profile(t *testing.T) {
	ctx := context.Background()
	first, last := "Ana", "Lim"

	f := newAuthFixture()
	session := &models.Session{SessionID: "s-1", UserID: "user-1", Roles: []string{constvars.RolePatient}}

	f.users.On("FindFirst", ctx, mock.MatchedBy(func(args *requests.FindArgs) bool {
		return args.Where["id"] == "user-1"
	})).Return(&models.User{ID: "user-1", Email: "ana@clinic.test", FirstName: &first, LastName: &last}, nil)
	f.access.On("Abilities", session.Roles).Return(map[string][]string{constvars.EntityAppointment: {"create", "read"}}, nil)

	profile, err := f.usecase.Profile(ctx, session)
	require.NoError(t, err)

	assert.Equal(t, "Ana Lim", profile.Name)
	assert.Equal(t, []string{"create", "read"}, profile.Abilities[constvars.EntityAppointment])
}
