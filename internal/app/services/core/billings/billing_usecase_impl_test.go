package billings

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/app/services/shared/querycache"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBillingRepository struct {
	mock.Mock
}

func (m *MockBillingRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Billing, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).([]models.Billing)
	return data, called.Error(1)
}

func (m *MockBillingRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	called := m.Called(ctx, args)
	return called.Int(0), called.Error(1)
}

func (m *MockBillingRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Billing, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).(*models.Billing)
	return data, called.Error(1)
}

func (m *MockBillingRepository) Create(ctx context.Context, entity *models.Billing) (*models.Billing, error) {
	called := m.Called(ctx, entity)
	data, _ := called.Get(0).(*models.Billing)
	return data, called.Error(1)
}

func (m *MockBillingRepository) Update(ctx context.Context, entity *models.Billing) (*models.Billing, error) {
	called := m.Called(ctx, entity)
	data, _ := called.Get(0).(*models.Billing)
	return data, called.Error(1)
}

func (m *MockBillingRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockInsuranceSource struct {
	mock.Mock
}

func (m *MockInsuranceSource) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Insurance, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).([]models.Insurance)
	return data, called.Error(1)
}

func (m *MockInsuranceSource) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	called := m.Called(ctx, args)
	return called.Int(0), called.Error(1)
}

func (m *MockInsuranceSource) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Insurance, error) {
	called := m.Called(ctx, args)
	data, _ := called.Get(0).(*models.Insurance)
	return data, called.Error(1)
}

// readOnlyAccess allows reads only and exposes just the insurance
// relation.
type readOnlyAccess struct{}

func (readOnlyAccess) HasAccess(roles []string, entity, operation string) (bool, error) {
	return operation == constvars.AccessOperationRead, nil
}

func (a readOnlyAccess) Authorize(session *models.Session, entity, operation string) error {
	if allowed, _ := a.HasAccess(session.Roles, entity, operation); !allowed {
		return exceptions.ErrPermissionDenied(session.Roles, operation, entity)
	}
	return nil
}

func (readOnlyAccess) Abilities(roles []string) (map[string][]string, error) {
	return map[string][]string{}, nil
}

func (readOnlyAccess) FilterIncludes(roles []string, includes []string, relationEntities map[string]string) []string {
	var allowed []string
	for _, include := range includes {
		if relationEntities[include] == constvars.EntityInsurance {
			allowed = append(allowed, include)
		}
	}
	return allowed
}

func (readOnlyAccess) ScopeOwnership(session *models.Session, entity string, args *requests.FindArgs) *requests.FindArgs {
	return args.Clone()
}

func (readOnlyAccess) CheckOwnership(session *models.Session, entity, operation string, values map[string]string) error {
	return nil
}

func (readOnlyAccess) RoleAbilities(roles []string) ([]responses.RoleAbilities, error) {
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

func TestBillingUsecase_ReadOnlyRole(t *testing.T) {
	ctx := context.Background()
	session := &models.Session{UserID: "insurer-1", Roles: []string{constvars.RoleInsuranceProvider}}

	repo := new(MockBillingRepository)
	insurances := new(MockInsuranceSource)
	redis := &memoryRedis{values: map[string]string{}}
	config := querycache.Config{Prefix: "query", TTL: time.Minute}
	clients := &querycache.QueryClients{
		Billings:   querycache.NewQueryClient[models.Billing](redis, repo, zap.NewNop(), config, constvars.EntityBilling, "Billing"),
		Insurances: querycache.NewQueryClient[models.Insurance](redis, insurances, zap.NewNop(), config, constvars.EntityInsurance, "Insurance"),
	}
	usecase := NewBillingUsecase(repo, clients, readOnlyAccess{}, new(MockAuditService), new(MockEventService), zap.NewNop())

	t.Run("View Shows Only Readable Relations", func(t *testing.T) {
		repo.On("FindFirst", mock.Anything, mock.Anything).Return(&models.Billing{
			ID:            "b-1",
			AmountDue:     120.5,
			PatientID:     "patient-1",
			ClinicID:      "clinic-1",
			InsuranceID:   "ins-1",
			AppointmentID: "appt-1",
		}, nil)
		insurances.On("FindMany", mock.Anything, mock.Anything).Return([]models.Insurance{{ID: "ins-1", InsuranceName: "Basic Care"}}, nil)

		billing, err := usecase.FindByID(ctx, session, "b-1", []string{"user", "clinic", "insurance", "appointment"})
		require.NoError(t, err)
		require.NotNil(t, billing.Insurance, "insurance should be attached")
		assert.Equal(t, "Basic Care", billing.Insurance.InsuranceName, "insurance name should match")
		assert.Nil(t, billing.User, "patient should be hidden")
		assert.Nil(t, billing.Clinic, "clinic should be hidden")
		assert.Nil(t, billing.Appointment, "appointment should be hidden")
	})

	t.Run("Update Is Forbidden", func(t *testing.T) {
		status := "paid"
		_, err := usecase.Update(ctx, session, "b-1", &requests.UpdateBilling{PaymentStatus: &status})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode, "should be forbidden")
		assert.Equal(t, "You don't have permissions to update this resource", customErr.ClientMessage, "message should name the update permission")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
