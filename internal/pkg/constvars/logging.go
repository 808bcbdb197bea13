package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingEntityKey         = "entity"
	LoggingEntityIDKey       = "entity_id"
	LoggingUserIDKey         = "user_id"
	LoggingRolesKey          = "roles"
	LoggingCacheKey          = "cache_key"
	LoggingResultCountKey    = "result_count"
	LoggingTotalKey          = "total"
	LoggingEventKey          = "event"
	LoggingQueueKey          = "queue"
	LoggingObjectKey         = "object_key"
	LoggingSessionIDKey      = "session_id"
	LoggingNotificationIDKey = "notification_id"
)
