package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Bag          BagConfig
	Checkout     CheckoutConfig
	Locale       LocaleConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SILLAGE_APP_ENV" required:"true"`
	Port         string `envconfig:"SILLAGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SILLAGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SILLAGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SILLAGE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SILLAGE_DB_DSN"`
	Driver string `envconfig:"SILLAGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SILLAGE_DB_HOST"`
	LegacyPort     int    `envconfig:"SILLAGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SILLAGE_DB_USER"`
	LegacyPassword string `envconfig:"SILLAGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SILLAGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SILLAGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SILLAGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SILLAGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SILLAGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SILLAGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SILLAGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SILLAGE_REDIS_ADDR"`
	Password     string        `envconfig:"SILLAGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SILLAGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SILLAGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SILLAGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SILLAGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SILLAGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SILLAGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SILLAGE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SILLAGE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SILLAGE_JWT_EXPIRATION_MINUTES" required:"true"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type BagConfig struct {
	SessionTTL time.Duration `envconfig:"SILLAGE_BAG_SESSION_TTL" default:"720h"`
}

type CheckoutConfig struct {
	IdempotencyTTL  time.Duration `envconfig:"SILLAGE_CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
	RateLimitWindow time.Duration `envconfig:"SILLAGE_CHECKOUT_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int64         `envconfig:"SILLAGE_CHECKOUT_RATE_LIMIT_MAX" default:"10"`
}

type LocaleConfig struct {
	Default string `envconfig:"SILLAGE_DEFAULT_LOCALE" default:"en-US"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SILLAGE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SILLAGE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
