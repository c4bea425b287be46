package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Storage       StorageConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Demo          DemoConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"SHOPTODO_APP_ENV" required:"true"`
	Port            string        `envconfig:"SHOPTODO_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"SHOPTODO_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"SHOPTODO_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"SHOPTODO_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins     []string      `envconfig:"SHOPTODO_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"SHOPTODO_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SHOPTODO_DB_DSN"`
	// Path is the sqlite file used when no DSN is supplied.
	Path string `envconfig:"SHOPTODO_DB_PATH" default:"shoptodo.db"`

	MaxOpenConns    int           `envconfig:"SHOPTODO_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHOPTODO_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPTODO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPTODO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPTODO_REDIS_URL"`
	Address      string        `envconfig:"SHOPTODO_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPTODO_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPTODO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPTODO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPTODO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPTODO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPTODO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPTODO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// StorageConfig selects the transport behind the snapshot persistence adapter.
type StorageConfig struct {
	Driver    string `envconfig:"SHOPTODO_STORAGE_DRIVER" default:"db"`
	Namespace string `envconfig:"SHOPTODO_STORAGE_NAMESPACE" default:"shoptodo"`
	// RetryAfter spaces out retries of a store that failed and left a shop
	// writing to memory.
	RetryAfter time.Duration `envconfig:"SHOPTODO_STORAGE_RETRY_AFTER" default:"30s"`
}

func (s StorageConfig) normalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

func (s StorageConfig) validate(redis RedisConfig) error {
	switch s.normalizedDriver() {
	case StorageDriverDB, StorageDriverMemory:
		return nil
	case StorageDriverRedis:
		if !redis.Enabled() {
			return fmt.Errorf("%s=redis requires %s or %s", EnvStorageDriver, EnvRedisURL, EnvRedisAddr)
		}
		return nil
	}
	return fmt.Errorf("unsupported storage driver %q", s.Driver)
}

// Kind returns the normalized driver name.
func (s StorageConfig) Kind() string {
	return s.normalizedDriver()
}

type JWTConfig struct {
	Secret                 string `envconfig:"SHOPTODO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SHOPTODO_JWT_ISSUER" default:"shoptodo"`
	ExpirationMinutes      int    `envconfig:"SHOPTODO_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"SHOPTODO_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPTODO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPTODO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPTODO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPTODO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPTODO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"SHOPTODO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"SHOPTODO_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"SHOPTODO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"SHOPTODO_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"SHOPTODO_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"SHOPTODO_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// DemoConfig holds the single demo credential accepted by the headless shop.
type DemoConfig struct {
	Username string `envconfig:"SHOPTODO_DEMO_USERNAME" default:"demo"`
	Password string `envconfig:"SHOPTODO_DEMO_PASSWORD" default:"password123"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPTODO_AUTO_MIGRATE" default:"true"`
	Metrics     bool `envconfig:"SHOPTODO_METRICS_ENABLED" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if strings.TrimSpace(db.DSN) != "" {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DBDriverSQLite:
		if strings.TrimSpace(db.Path) == "" {
			return fmt.Errorf("either %s or %s is required for sqlite", EnvDBDSN, EnvDBPath)
		}
		db.DSN = fmt.Sprintf("file:%s?_foreign_keys=on", db.Path)
		return nil
	case DBDriverPostgres:
		return fmt.Errorf("%s is required for postgres", EnvDBDSN)
	}
	return fmt.Errorf("unsupported db driver %q", db.Driver)
}
