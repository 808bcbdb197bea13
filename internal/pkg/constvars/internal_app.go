package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResourceAuth           = "auth"
	ResourceAppConfig      = "app-config"
	ResourceRoles          = "roles"
	ResourceUsers          = "users"
	ResourceClinics        = "clinics"
	ResourceInsurances     = "insurances"
	ResourceAppointments   = "appointments"
	ResourceBillings       = "billings"
	ResourceMedicalRecords = "medical-records"
	ResourceNotifications  = "notifications"
	ResourceAttachments    = "attachments"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	DefaultPage            = 1
	DefaultPageSize        = 10
	MaxPageSize            = 100
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	BearerPrefix = "Bearer "
)

const (
	RegexContainAtLeastOneSpecialChar = `[!@#~$%^&*()+|_.,<>?{}\[\]\-=/\\:;'"]`
	RegexContainAtLeastOneUppercase   = `[A-Z]`
)
