package clinics

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/app/services/shared/querycache"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockClinicRepository struct {
	mock.Mock
}

func (m *MockClinicRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Clinic, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).([]models.Clinic)
	return data, called.Error(1)
}

func (m *MockClinicRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	called := m.Called(ctx, args)
	return called.Int(0), called.Error(1)
}

func (m *MockClinicRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Clinic, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).(*models.Clinic)
	return data, called.Error(1)
}

func (m *MockClinicRepository) Create(ctx context.Context, entity *models.Clinic) (*models.Clinic, error) {
	called := m.Called(ctx, entity)
	data, _ := called.Get(0).(*models.Clinic)
	return data, called.Error(1)
}

func (m *MockClinicRepository) Update(ctx context.Context, entity *models.Clinic) (*models.Clinic, error) {
	called := m.Called(ctx, entity)
	data, _ := called.Get(0).(*models.Clinic)
	return data, called.Error(1)
}

func (m *MockClinicRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClinicRepository) CountRelations(ctx context.Context, ids []string) (map[string]map[string]int, error) {
	called := m.Called(ctx, ids)
	data, _ := called.Get(0).(map[string]map[string]int)
	return data, called.Error(1)
}

type MockUserSource struct {
	mock.Mock
}

func (m *MockUserSource) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.User, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).([]models.User)
	return data, called.Error(1)
}

func (m *MockUserSource) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	called := m.Called(ctx, args)
	return called.Int(0), called.Error(1)
}

func (m *MockUserSource) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.User, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).(*models.User)
	return data, called.Error(1)
}

// stubAccessService denies the operations listed in denied and hides the
// relations whose entity is listed in hidden.
type stubAccessService struct {
	denied map[string]bool
	hidden map[string]bool
}

func (s *stubAccessService) HasAccess(roles []string, entity, operation string) (bool, error) {
	return !s.denied[entity+":"+operation], nil
}

func (s *stubAccessService) Authorize(session *models.Session, entity, operation string) error {
	if s.denied[entity+":"+operation] {
		return exceptions.ErrPermissionDenied(session.Roles, operation, entity)
	}
	return nil
}

func (s *stubAccessService) Abilities(roles []string) (map[string][]string, error) {
	return map[string][]string{}, nil
}

func (s *stubAccessService) FilterIncludes(roles []string, includes []string, relationEntities map[string]string) []string {
	var allowed []string
	for _, include := range includes {
		if !s.hidden[relationEntities[include]] {
			allowed = append(allowed, include)
		}
	}
	return allowed
}

func (s *stubAccessService) ScopeOwnership(session *models.Session, entity string, args *requests.FindArgs) *requests.FindArgs {
	return args.Clone()
}

func (s *stubAccessService) CheckOwnership(session *models.Session, entity, operation string, values map[string]string) error {
	return nil
}

func (s *stubAccessService) RoleAbilities(roles []string) ([]responses.RoleAbilities, error) {
	return nil, nil
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, session *models.Session, entity, entityID, action string) {
	m.Called(ctx, session, entity, entityID, action)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Emit(ctx context.Context, session *models.Session, entity, action, entityID string, payload interface{}) {
	m.Called(ctx, session, entity, action, entityID, payload)
}

type memoryRedis struct {
	values map[string]string
}

func (m *memoryRedis) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = string(encoded)
	return nil
}

func (m *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memoryRedis) Increment(ctx context.Context, key string) (int64, error) {
	current, _ := strconv.ParseInt(m.values[key], 10, 64)
	current++
	m.values[key] = strconv.FormatInt(current, 10)
	return current, nil
}

func (m *memoryRedis) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return m.Increment(ctx, key)
}

func (m *memoryRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	return true, m.Set(ctx, key, value, exp)
}

type clinicUsecaseFixture struct {
	usecase *clinicUsecase
	repo    *MockClinicRepository
	users   *MockUserSource
	access  *stubAccessService
	audit   *MockAuditService
	events  *MockEventService
}

func newClinicUsecaseFixture() *clinicUsecaseFixture {
	repo := new(MockClinicRepository)
	users := new(MockUserSource)
	access := &stubAccessService{denied: map[string]bool{}, hidden: map[string]bool{}}
	audit := new(MockAuditService)
	events := new(MockEventService)
	redis := &memoryRedis{values: map[string]string{}}
	config := querycache.Config{Prefix: "query", TTL: time.Minute}
	clients := &querycache.QueryClients{
		Users:   querycache.NewQueryClient[models.User](redis, users, zap.NewNop(), config, constvars.EntityUser, "User"),
		Clinics: querycache.NewQueryClient[models.Clinic](redis, repo, zap.NewNop(), config, constvars.EntityClinic, "Clinic"),
	}

	usecase := NewClinicUsecase(repo, clients, access, audit, events, zap.NewNop()).(*clinicUsecase)
	return &clinicUsecaseFixture{usecase: usecase, repo: repo, users: users, access: access, audit: audit, events: events}
}

func staffSession() *models.Session {
	return &models.Session{
		SessionID: "session-1",
		UserID:    "staff-1",
		Roles:     []string{constvars.RoleMedicalStaff},
		TenantID:  "tenant-1",
	}
}

func TestClinicUsecase_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolves Owner Relation", func(t *testing.T) {
		fx := newClinicUsecaseFixture()
		fx.repo.On("FindFirst", mock.Anything, mock.Anything).Return(&models.Clinic{ID: "c-1", Name: "North", UserID: "u-1"}, nil)
		fx.users.On("FindMany", mock.Anything, mock.MatchedBy(func(args *requests.FindArgs) bool {
			ids, ok := args.Where["id"].([]string)
			return ok && len(ids) == 1 && ids[0] == "u-1"
		})).Return([]models.User{{ID: "u-1", Email: "owner@clinic.test"}}, nil)

		clinic, err := fx.usecase.FindByID(ctx, staffSession(), "c-1", []string{"user"})
		require.NoError(t, err)
		require.NotNil(t, clinic.User, "owner should be attached")
		assert.Equal(t, "owner@clinic.test", clinic.User.Email, "owner email should match")
	})

	t.Run("Hides Relation Without Read Access", func(t *testing.T) {
		fx := newClinicUsecaseFixture()
		fx.access.hidden[constvars.EntityUser] = true
		fx.repo.On("FindFirst", mock.Anything, mock.Anything).Return(&models.Clinic{ID: "c-1", UserID: "u-1"}, nil)

		clinic, err := fx.usecase.FindByID(ctx, staffSession(), "c-1", []string{"user"})
		require.NoError(t, err)
		assert.Nil(t, clinic.User, "owner should not be attached")
		fx.users.AssertNotCalled(t, "FindMany", mock.Anything, mock.Anything)
	})

	t.Run("Attaches Counts", func(t *testing.T) {
		fx := newClinicUsecaseFixture()
		fx.repo.On("FindFirst", mock.Anything, mock.Anything).Return(&models.Clinic{ID: "c-1", UserID: "u-1"}, nil)
		fx.repo.On("CountRelations", mock.Anything, []string{"c-1"}).
			Return(map[string]map[string]int{"c-1": {"appointment": 3, "billing": 1, "insurance": 0}}, nil)

		clinic, err := fx.usecase.FindByID(ctx, staffSession(), "c-1", []string{constvars.IncludeCount})
		require.NoError(t, err)
		assert.Equal(t, 3, clinic.Count["appointment"], "appointment count should be attached")
	})
}

func TestClinicUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Owner Returns Unprocessable", func(t *testing.T) {
		fx := newClinicUsecaseFixture()
		fx.repo.On("Create", mock.Anything, mock.Anything).Return(nil, exceptions.ErrRelatedResourceMissing(nil, "clinics_user_id_fkey"))

		_, err := fx.usecase.Create(ctx, staffSession(), &requests.CreateClinic{Name: "North", UserID: "u-404"})
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode, "should be unprocessable")
	})

	t.Run("Invalidates Cached Lists", func(t *testing.T) {
		fx := newClinicUsecaseFixture()
		fx.repo.On("FindMany", mock.Anything, mock.Anything).Return([]models.Clinic{}, nil).Twice()
		fx.repo.On("Count", mock.Anything, mock.Anything).Return(0, nil).Twice()
		fx.repo.On("Create", mock.Anything, mock.Anything).Return(&models.Clinic{ID: "c-2", Name: "South", UserID: "u-1"}, nil)
		fx.audit.On("Record", mock.Anything, mock.Anything, constvars.EntityClinic, "c-2", constvars.AuditActionCreate).Return()
		fx.events.On("Emit", mock.Anything, mock.Anything, constvars.EntityClinic, constvars.EventActionCreated, "c-2", mock.Anything).Return()

		_, err := fx.usecase.FindAll(ctx, staffSession(), &requests.FindArgs{})
		require.NoError(t, err)
		_, err = fx.usecase.Create(ctx, staffSession(), &requests.CreateClinic{Name: "South", UserID: "u-1"})
		require.NoError(t, err)
		_, err = fx.usecase.FindAll(ctx, staffSession(), &requests.FindArgs{})
		require.NoError(t, err)

		fx.repo.AssertExpectations(t)
	})
}

func TestClinicUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Denied Delete Returns Forbidden", func(t *testing.T) {
		fx := newClinicUsecaseFixture()
		fx.access.denied[constvars.EntityClinic+":"+constvars.AccessOperationDelete] = true

		err := fx.usecase.Delete(ctx, staffSession(), "c-1")
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.ErrClientNoPermissionToDelete, customErr.ClientMessage, "message should name the delete permission")
		fx.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
