package config

import "time"

type InternalConfig struct {
	App          App             `mapstructure:"app"`
	JWT          AppJWT          `mapstructure:"jwt"`
	Tenant       AppTenant       `mapstructure:"tenant"`
	RBAC         AppRBAC         `mapstructure:"rbac"`
	Cache        AppCache        `mapstructure:"cache"`
	Minio        AppMinio        `mapstructure:"minio"`
	RabbitMQ     AppRabbitMQ     `mapstructure:"rabbitmq"`
	MongoDB      AppMongoDB      `mapstructure:"mongodb"`
	Notification AppNotification `mapstructure:"notification"`
}

type App struct {
	Env                        string        `mapstructure:"env"`
	Port                       string        `mapstructure:"port"`
	Version                    string        `mapstructure:"version"`
	Address                    string        `mapstructure:"address"`
	EndpointPrefix             string        `mapstructure:"endpoint_prefix"`
	AllowedOrigins             []string      `mapstructure:"allowed_origins"`
	MaxRequests                int           `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int           `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int           `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int           `mapstructure:"request_body_limit_in_megabyte"`
	LoginRateLimitPerMinute    int           `mapstructure:"login_rate_limit_per_minute"`
	LoginRateLimitBlockTime    time.Duration `mapstructure:"login_rate_limit_block_time"`
	LoginMaxFailedAttempts     int           `mapstructure:"login_max_failed_attempts"`
	LoginFailureWindowInSecond int           `mapstructure:"login_failure_window_in_second"`
	MigrationDir               string        `mapstructure:"migration_dir"`
}

func (a App) RequestTimeout() time.Duration {
	return time.Duration(a.RequestTimeoutInSeconds) * time.Second
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

type AppRBAC struct {
	ModelPath  string `mapstructure:"model_path"`
	PolicyPath string `mapstructure:"policy_path"`
}

type AppCache struct {
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type AppMinio struct {
	BucketName                        string `mapstructure:"bucket_name"`
	AttachmentMaxUploadSizeInMB       int64  `mapstructure:"attachment_max_upload_size_in_mb"`
	PreSignedUrlObjectExpiryInMinutes int    `mapstructure:"pre_signed_url_object_expiry_in_minutes"`
}

type AppRabbitMQ struct {
	EventQueue     string `mapstructure:"event_queue"`
	WorkerPrefetch int    `mapstructure:"worker_prefetch"`
}

type AppNotification struct {
	RetentionInDays int    `mapstructure:"retention_in_days"`
	PurgeCronSpec   string `mapstructure:"purge_cron_spec"`
}

func (n AppNotification) Retention() time.Duration {
	return time.Duration(n.RetentionInDays) * 24 * time.Hour
}

type AppMongoDB struct {
	DbName string `mapstructure:"db_name"`
}
