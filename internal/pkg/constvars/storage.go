package constvars

const (
	RedisKeySessionPrefix    = "session:"
	RedisKeyCachePrefix      = "query"
	RedisKeyGenerationSuffix = "generation"
)

const (
	MongoCollectionAuditLogs     = "audit_logs"
	MongoCollectionNotifications = "notifications"
)

const (
	MinioMedicalRecordPrefix = "medical-records"
)

const MB = 1 << 20

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionAttach = "attach"
	AuditActionDetach = "detach"
)

const (
	EventActionCreated = "created"
	EventActionUpdated = "updated"
	EventActionDeleted = "deleted"
)
