package config

// EnvPrefix is the envconfig prefix shared by every variable below.
const EnvPrefix = "SILLAGE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "SILLAGE_APP_ENV"
	EnvPort       = "SILLAGE_APP_PORT"
	EnvLogLevel   = "SILLAGE_LOG_LEVEL"
	EnvDBDSN      = "SILLAGE_DB_DSN"
	EnvDBHost     = "SILLAGE_DB_HOST"
	EnvDBUser     = "SILLAGE_DB_USER"
	EnvDBName     = "SILLAGE_DB_NAME"
	EnvRedisURL   = "SILLAGE_REDIS_URL"
	EnvJWTSecret  = "SILLAGE_JWT_SECRET"
	EnvJWTIssuer  = "SILLAGE_JWT_ISSUER"
	EnvJWTExpMins = "SILLAGE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
