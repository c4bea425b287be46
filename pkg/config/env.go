package config

const (
	EnvPrefix = "SHOPTODO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "SHOPTODO_APP_ENV"
	EnvPort     = "SHOPTODO_APP_PORT"
	EnvLogLevel = "SHOPTODO_LOG_LEVEL"

	EnvDBDSN    = "SHOPTODO_DB_DSN"
	EnvDBDriver = "SHOPTODO_DB_DRIVER"
	EnvDBPath   = "SHOPTODO_DB_PATH"

	EnvRedisURL  = "SHOPTODO_REDIS_URL"
	EnvRedisAddr = "SHOPTODO_REDIS_ADDR"

	EnvStorageDriver    = "SHOPTODO_STORAGE_DRIVER"
	EnvStorageNamespace = "SHOPTODO_STORAGE_NAMESPACE"
	EnvStorageRetry     = "SHOPTODO_STORAGE_RETRY_AFTER"

	EnvJWTSecret              = "SHOPTODO_JWT_SECRET"
	EnvJWTIssuer              = "SHOPTODO_JWT_ISSUER"
	EnvJWTExpMins             = "SHOPTODO_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "SHOPTODO_REFRESH_TOKEN_TTL_MINUTES"

	EnvDemoUsername = "SHOPTODO_DEMO_USERNAME"
	EnvDemoPassword = "SHOPTODO_DEMO_PASSWORD"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	StorageDriverDB     = "db"
	StorageDriverRedis  = "redis"
	StorageDriverMemory = "memory"
)
