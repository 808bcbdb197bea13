package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"email":         "must be a valid email",
	"alphanum":      "must contain only alphanumeric characters",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"eqfield":       "must match %s",
	"password":      "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"numeric":       "must be a number",
	"len":           "must be %s characters long",
	"oneof":         "must be one of [%s]",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"url":           "must be a valid URL",
	"uuid":          "must be a valid UUID",
	"gtefield":      "must be on or after %s",
	"tenant_role":   "must be one of the tenant roles",
	"required_if":   "is required when %s is %s",
	"required_with": "is required when %s is present",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":           true,
	"max":           true,
	"len":           true,
	"eqfield":       true,
	"gt":            true,
	"gte":           true,
	"lt":            true,
	"lte":           true,
	"oneof":         true,
	"gtefield":      true,
	"required_if":   true,
	"required_with": true,
}

// Error messages for clients
const (
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidUsernameOrPassword     = "invalid email or password"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientResourceNotFound              = "the requested data could not be found"
	ErrClientNoPermissionToUpdate          = "You don't have permissions to update this resource"
	ErrClientNoPermissionToCreate          = "You don't have permissions to create this resource"
	ErrClientNoPermissionToDelete          = "You don't have permissions to delete this resource"
	ErrClientRelatedResourceMissing        = "one of the referenced records does not exist"
	ErrClientFileTooLarge                  = "the file you uploaded is too large"
	ErrClientTooManyRequests               = "too many requests, please try again later"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevInvalidFormat            = "invalid %s format"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevBuildRequest             = "encountering error while building request DTO"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevInvalidCredentials       = "invalid credentials"
	ErrDevEmailAlreadyExists       = "email already exists"
	ErrDevResourceNotExists        = "%s with given id does not exist"
	ErrDevForeignKeyViolation      = "foreign key violation on %s"

	// Validation messages
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"
	ErrDevQueryParamValidationFailed = "query parameter %s validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthPermissionDenied      = "permission denied, role %v cannot %s %s"
	ErrDevAuthGenerateToken         = "failed to generate token"

	// Database messages
	ErrDevDBFailedToFindData        = "failed when do find data on postgres database"
	ErrDevDBFailedToInsertData      = "failed to insert data into postgres database"
	ErrDevDBFailedToUpdateData      = "failed to update data into postgres database"
	ErrDevDBFailedToDeleteData      = "failed when do delete data on postgres database"
	ErrDevDBFailedToIterateDataset  = "failed when iterating dataset from postgres database"
	ErrDevDBFailedToInsertDocument  = "failed to insert document into mongo database"
	ErrDevDBFailedToUpdateDocument  = "failed to update document into mongo database"
	ErrDevDBFailedToDeleteDocument  = "failed to delete documents from mongo database"
	ErrDevDBFailedToCreateIndex     = "failed to create indexes in mongo database"
	ErrDevDBFailedToFindDocument    = "failed when do find document on mongo database"
	ErrDevDBFailedToIterateDocument = "failed when iterating documents from mongo database"
	ErrDevDBStringNotObjectID       = "given ID is not valid object ID"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"
	ErrDevMinioFailedToListObjects           = "failed to list objects from minio storage with bucket name '%s'"
	ErrDevMinioFailedToRemoveObject          = "failed to remove object from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData        = "failed to SET data into redis"
	ErrDevRedisGetData        = "failed to GET data from redis"
	ErrDevRedisDeleteData     = "failed to DELETE data from redis"
	ErrDevRedisIncrementValue = "failed to INCR data in redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into rabbitmq queue '%s'"

	// Authorization engine messages
	ErrDevCasbinEnforce = "failed to enforce policy for role %s"

	// Server messages
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerParseSessionData = "failed to parse session data"
	ErrDevFileTooLarge           = "uploaded file size %d exceeds limit %d"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)

const (
	ErrClientResourceStillReferenced = "the record is still used by other records"
	ErrDevResourceStillReferenced    = "%s is referenced by %s"
	ErrDevUnknownColumn              = "unknown column in query arguments"
)
