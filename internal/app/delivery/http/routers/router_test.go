package routers

import (
	"bytes"
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/delivery/http/controllers"
	"clinic-admin-service/internal/app/delivery/http/middlewares"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/app/services/core/access"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	clinicID        = "0b6f3e0a-4a57-4b0c-9d7e-3a2f1c5e8d01"
	medicalRecordID = "5c1d2e3f-8a9b-4c7d-a1e2-f3b4c5d6e7f8"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.LoginUser), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockAuthUsecase) Profile(ctx context.Context, session *models.Session) (*responses.Profile, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Profile), args.Error(1)
}

func (m *MockAuthUsecase) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

type MockClinicUsecase struct {
	mock.Mock
}

func (m *MockClinicUsecase) FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Clinic], error) {
	called := m.Called(ctx, session, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*responses.FindManyWithCount[models.Clinic]), called.Error(1)
}

func (m *MockClinicUsecase) FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Clinic, error) {
	called := m.Called(ctx, session, id, include)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*models.Clinic), called.Error(1)
}

func (m *MockClinicUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateClinic) (*models.Clinic, error) {
	called := m.Called(ctx, session, request)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*models.Clinic), called.Error(1)
}

func (m *MockClinicUsecase) Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateClinic) (*models.Clinic, error) {
	called := m.Called(ctx, session, id, request)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*models.Clinic), called.Error(1)
}

func (m *MockClinicUsecase) Delete(ctx context.Context, session *models.Session, id string) error {
	return m.Called(ctx, session, id).Error(0)
}

type MockAttachmentUsecase struct {
	mock.Mock
}

func (m *MockAttachmentUsecase) Upload(ctx context.Context, session *models.Session, request *requests.UploadAttachment) (*models.Attachment, error) {
	content, _ := io.ReadAll(request.Content)
	called := m.Called(ctx, session, request.MedicalRecordID, request.FileName, string(content))
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(*models.Attachment), called.Error(1)
}

func (m *MockAttachmentUsecase) FindAll(ctx context.Context, session *models.Session, medicalRecordID string) ([]models.Attachment, error) {
	called := m.Called(ctx, session, medicalRecordID)
	return called.Get(0).([]models.Attachment), called.Error(1)
}

func (m *MockAttachmentUsecase) Delete(ctx context.Context, session *models.Session, medicalRecordID, objectName string) error {
	return m.Called(ctx, session, medicalRecordID, objectName).Error(0)
}

type routerFixture struct {
	router     *chi.Mux
	auth       *MockAuthUsecase
	clinics    *MockClinicUsecase
	attachment *MockAttachmentUsecase
}

func newRouterFixture(t *testing.T, addOns ...string) *routerFixture {
	t.Helper()
	logger := zap.NewNop()

	enforcer, err := access.NewEnforcer("../../../../../resources/rbac_model.conf", "../../../../../resources/rbac_policy.csv")
	if err != nil {
		t.Skipf("Skipping test due to missing RBAC files: %v", err)
	}
	accessService := access.NewAccessService(enforcer, logger)

	tenant := config.NewTenantConfig()
	if addOns != nil {
		tenant.AddOns = addOns
	}
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "/api",
			Version:                    "v1",
			AllowedOrigins:             []string{"*"},
			MaxRequests:                1000,
			RequestTimeoutInSeconds:    5,
			RequestBodyLimitInMegabyte: 1,
			LoginRateLimitPerMinute:    60,
			LoginRateLimitBlockTime:    time.Minute,
		},
		Tenant: tenant,
		Minio:  config.AppMinio{AttachmentMaxUploadSizeInMB: 1},
	}

	fixture := &routerFixture{
		router:     chi.NewRouter(),
		auth:       new(MockAuthUsecase),
		clinics:    new(MockClinicUsecase),
		attachment: new(MockAttachmentUsecase),
	}

	fixture.auth.On("ResolveSession", mock.Anything, "patient-token").Return(&models.Session{
		SessionID: "s-patient", UserID: "patient-1", Roles: []string{constvars.RolePatient},
	}, nil)
	fixture.auth.On("ResolveSession", mock.Anything, "doctor-token").Return(&models.Session{
		SessionID: "s-doctor", UserID: "doctor-1", Roles: []string{constvars.RoleHealthcareProvider},
	}, nil)
	fixture.auth.On("ResolveSession", mock.Anything, "admin-token").Return(&models.Session{
		SessionID: "s-admin", UserID: "admin-1", Roles: []string{constvars.RoleSystemAdministrator},
	}, nil)

	middlewareInstance := middlewares.NewMiddlewares(logger, fixture.auth, accessService, internalConfig)

	SetupRoutes(fixture.router, internalConfig, middlewareInstance, &Controllers{
		Auth:          controllers.NewAuthController(logger, fixture.auth, internalConfig),
		AppConfig:     controllers.NewAppConfigController(logger, accessService, internalConfig),
		User:          controllers.NewUserController(logger, nil, internalConfig),
		Clinic:        controllers.NewClinicController(logger, fixture.clinics, internalConfig),
		Insurance:     controllers.NewInsuranceController(logger, nil, internalConfig),
		Appointment:   controllers.NewAppointmentController(logger, nil, internalConfig),
		Billing:       controllers.NewBillingController(logger, nil, internalConfig),
		MedicalRecord: controllers.NewMedicalRecordController(logger, nil, internalConfig),
		Attachment:    controllers.NewAttachmentController(logger, fixture.attachment, internalConfig),
		Notification:  controllers.NewNotificationController(logger, nil, internalConfig),
	})
	return fixture
}

func (f *routerFixture) do(method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "response should be JSON: %s", rr.Body.String())
	return body
}

func TestRouter_Public(t *testing.T) {
	fixture := newRouterFixture(t)

	t.Run("App Config Is Public", func(t *testing.T) {
		rr := fixture.do(http.MethodGet, "/api/v1/app-config", "", nil)

		assert.Equal(t, http.StatusOK, rr.Code, "app config should not need a session")
		data := decodeBody(t, rr)["data"].(map[string]interface{})
		assert.Equal(t, "Clinic", data["tenant_name"])
		assert.Equal(t, "Doctor Appointment System", data["application_name"])
	})

	t.Run("Unknown Route", func(t *testing.T) {
		rr := fixture.do(http.MethodGet, "/api/v1/wards", "", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, false, decodeBody(t, rr)["success"])
	})

	t.Run("Request ID Is Echoed", func(t *testing.T) {
		rr := fixture.do(http.MethodGet, "/api/v1/app-config", "", nil)

		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestRouter_Auth(t *testing.T) {
	fixture := newRouterFixture(t)
	expiresAt := time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)

	t.Run("Login Normalizes Email", func(t *testing.T) {
		fixture.auth.On("Login", mock.Anything, &requests.LoginUser{Email: "doctor@clinic.test", Password: "Secret#123"}).
			Return(&responses.LoginUser{Token: "jwt-token", ExpiresAt: expiresAt}, nil).Once()

		rr := fixture.do(http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(`{"email":"  Doctor@Clinic.test ","password":"Secret#123"}`))

		assert.Equal(t, http.StatusOK, rr.Code, "login should succeed: %s", rr.Body.String())
		data := decodeBody(t, rr)["data"].(map[string]interface{})
		assert.Equal(t, "jwt-token", data["token"])
	})

	t.Run("Login With Broken JSON", func(t *testing.T) {
		rr := fixture.do(http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(`{"email":`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Login Without Password", func(t *testing.T) {
		rr := fixture.do(http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(`{"email":"doctor@clinic.test"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "password is required", decodeBody(t, rr)["message"])
	})

	t.Run("Wrong Credentials", func(t *testing.T) {
		fixture.auth.On("Login", mock.Anything, &requests.LoginUser{Email: "doctor@clinic.test", Password: "nope"}).
			Return(nil, exceptions.ErrInvalidUsernameOrPassword(nil)).Once()

		rr := fixture.do(http.MethodPost, "/api/v1/auth/login", "", strings.NewReader(`{"email":"doctor@clinic.test","password":"nope"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, constvars.ErrClientInvalidUsernameOrPassword, decodeBody(t, rr)["message"])
	})

	t.Run("Logout Needs A Session", func(t *testing.T) {
		rr := fixture.do(http.MethodPost, "/api/v1/auth/logout", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		fixture.auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})

	t.Run("Logout", func(t *testing.T) {
		fixture.auth.On("Logout", mock.Anything, mock.MatchedBy(func(session *models.Session) bool {
			return session.SessionID == "s-patient"
		})).Return(nil).Once()

		rr := fixture.do(http.MethodPost, "/api/v1/auth/logout", "patient-token", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRouter_Clinics(t *testing.T) {
	fixture := newRouterFixture(t)

	t.Run("List Needs A Session", func(t *testing.T) {
		rr := fixture.do(http.MethodGet, "/api/v1/clinics", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("List With Pagination", func(t *testing.T) {
		fixture.clinics.On("FindAll", mock.Anything, mock.Anything, mock.MatchedBy(func(args *requests.FindArgs) bool {
			return args.Page == 2 && args.PageSize == 1 && args.HasInclude("user") && args.Where["name"] == "North"
		})).Return(&responses.FindManyWithCount[models.Clinic]{
			Data:  []models.Clinic{{ID: clinicID, Name: "North"}},
			Count: 3,
		}, nil).Once()

		rr := fixture.do(http.MethodGet, "/api/v1/clinics?page=2&page_size=1&include=user&name=North", "patient-token", nil)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		body := decodeBody(t, rr)
		pagination := body["pagination"].(map[string]interface{})
		assert.Equal(t, float64(3), pagination["total"])
		assert.Equal(t, "/api/v1/clinics?page=3&page_size=1", pagination["next_url"])
		assert.Len(t, body["data"], 1)
	})

	t.Run("Unknown Include", func(t *testing.T) {
		rr := fixture.do(http.MethodGet, "/api/v1/clinics?include=owner", "patient-token", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Detail Rejects Malformed ID", func(t *testing.T) {
		rr := fixture.do(http.MethodGet, "/api/v1/clinics/not-a-uuid", "patient-token", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Detail Not Found", func(t *testing.T) {
		fixture.clinics.On("FindByID", mock.Anything, mock.Anything, clinicID, []string(nil)).
			Return(nil, exceptions.ErrResourceNotExist(nil, constvars.EntityClinic)).Once()

		rr := fixture.do(http.MethodGet, "/api/v1/clinics/"+clinicID, "patient-token", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Patient Cannot Edit", func(t *testing.T) {
		rr := fixture.do(http.MethodPut, "/api/v1/clinics/"+clinicID, "patient-token", strings.NewReader(`{"name":"South"}`))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "You don't have permissions to update this resource", decodeBody(t, rr)["message"])
		fixture.clinics.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Admin Creates", func(t *testing.T) {
		fixture.clinics.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(request *requests.CreateClinic) bool {
			return request.Name == "East" && request.UserID == clinicID
		})).Return(&models.Clinic{ID: clinicID, Name: "East"}, nil).Once()

		rr := fixture.do(http.MethodPost, "/api/v1/clinics", "admin-token", strings.NewReader(`{"name":"East","user_id":"`+clinicID+`"}`))

		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.Equal(t, "clinic created successfully", decodeBody(t, rr)["message"])
	})

	t.Run("Create Validation", func(t *testing.T) {
		rr := fixture.do(http.MethodPost, "/api/v1/clinics", "admin-token", strings.NewReader(`{"user_id":"`+clinicID+`"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "name is required", decodeBody(t, rr)["message"])
	})

	t.Run("Still Referenced On Delete", func(t *testing.T) {
		fixture.clinics.On("Delete", mock.Anything, mock.Anything, clinicID).
			Return(exceptions.ErrResourceStillReferenced(nil, constvars.EntityClinic, "appointments_clinic_id_fkey")).Once()

		rr := fixture.do(http.MethodDelete, "/api/v1/clinics/"+clinicID, "admin-token", nil)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestRouter_Attachments(t *testing.T) {
	t.Run("Doctor Uploads", func(t *testing.T) {
		fixture := newRouterFixture(t)
		fixture.attachment.On("Upload", mock.Anything, mock.Anything, medicalRecordID, "lab.pdf", "%PDF-1.4").
			Return(&models.Attachment{ObjectName: "medical-records/" + medicalRecordID + "/x-lab.pdf", FileName: "lab.pdf"}, nil).Once()

		body := new(bytes.Buffer)
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile(constvars.FormFieldFile, "lab.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/medical-records/"+medicalRecordID+"/attachments", body)
		req.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())
		req.Header.Set(constvars.HeaderAuthorization, "Bearer doctor-token")
		rr := httptest.NewRecorder()
		fixture.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		fixture.attachment.AssertExpectations(t)
	})

	t.Run("Patient Cannot Upload", func(t *testing.T) {
		fixture := newRouterFixture(t)

		rr := fixture.do(http.MethodPost, "/api/v1/medical-records/"+medicalRecordID+"/attachments", "patient-token", strings.NewReader("x"))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Delete Builds Object Name", func(t *testing.T) {
		fixture := newRouterFixture(t)
		objectName := "medical-records/" + medicalRecordID + "/abc-lab.pdf"
		fixture.attachment.On("Delete", mock.Anything, mock.Anything, medicalRecordID, objectName).Return(nil).Once()

		rr := fixture.do(http.MethodDelete, "/api/v1/medical-records/"+medicalRecordID+"/attachments/abc-lab.pdf", "doctor-token", nil)

		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		fixture.attachment.AssertExpectations(t)
	})

	t.Run("Disabled Add-On", func(t *testing.T) {
		fixture := newRouterFixture(t, config.AddOnChat)

		rr := fixture.do(http.MethodGet, "/api/v1/medical-records/"+medicalRecordID+"/attachments", "doctor-token", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, "attachments should not be routed without the add-on")

		rr = fixture.do(http.MethodGet, "/api/v1/notifications", "doctor-token", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, "notifications should not be routed without the add-on")
	})
}
