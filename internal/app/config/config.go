package config

import (
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:            utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:            utils.GetEnvString("POSTGRES_PORT", "5432"),
			DbName:          utils.GetEnvString("POSTGRES_DB_NAME", "clinic"),
			Username:        utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:        utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			SslMode:         utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns:    utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: utils.GetEnvDuration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			AllowedOrigins:             utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 50),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			LoginRateLimitPerMinute:    utils.GetEnvInt("APP_LOGIN_RATE_LIMIT_PER_MINUTE", 10),
			LoginRateLimitBlockTime:    utils.GetEnvDuration("APP_LOGIN_RATE_LIMIT_BLOCK_TIME", 5*time.Minute),
			LoginMaxFailedAttempts:     utils.GetEnvInt("APP_LOGIN_MAX_FAILED_ATTEMPTS", 5),
			LoginFailureWindowInSecond: utils.GetEnvInt("APP_LOGIN_FAILURE_WINDOW_IN_SECOND", 900),
			MigrationDir:               utils.GetEnvString("APP_MIGRATION_DIR", "internal/migration"),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 12),
		},
		Tenant: NewTenantConfig(),
		RBAC: AppRBAC{
			ModelPath:  utils.GetEnvString("RBAC_MODEL_PATH", "resources/rbac_model.conf"),
			PolicyPath: utils.GetEnvString("RBAC_POLICY_PATH", "resources/rbac_policy.csv"),
		},
		Cache: AppCache{
			Prefix: utils.GetEnvString("CACHE_PREFIX", constvars.RedisKeyCachePrefix),
			TTL:    utils.GetEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Minio: AppMinio{
			BucketName:                        utils.GetEnvString("MINIO_BUCKET_NAME", "clinic-attachments"),
			AttachmentMaxUploadSizeInMB:       utils.GetEnvInt64("MINIO_ATTACHMENT_MAX_UPLOAD_SIZE_IN_MB", 10),
			PreSignedUrlObjectExpiryInMinutes: utils.GetEnvInt("MINIO_PRE_SIGNED_URL_EXPIRY_IN_MINUTES", 15),
		},
		RabbitMQ: AppRabbitMQ{
			EventQueue:     utils.GetEnvString("RABBITMQ_EVENT_QUEUE", "clinic.events"),
			WorkerPrefetch: utils.GetEnvInt("RABBITMQ_WORKER_PREFETCH", 10),
		},
		MongoDB: AppMongoDB{
			DbName: utils.GetEnvString("MONGODB_DB_NAME", "clinic"),
		},
		Notification: AppNotification{
			RetentionInDays: utils.GetEnvInt("NOTIFICATION_RETENTION_IN_DAYS", 30),
			PurgeCronSpec:   utils.GetEnvString("NOTIFICATION_PURGE_CRON_SPEC", "@daily"),
		},
	}
}
