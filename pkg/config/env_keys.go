package config

// EnvPrefix is empty because every variable already carries the FARMLINK_ prefix.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "FARMLINK_APP_ENV"
	EnvPort     = "FARMLINK_APP_PORT"
	EnvLogLevel = "FARMLINK_LOG_LEVEL"

	EnvDBDSN  = "FARMLINK_DB_DSN"
	EnvDBHost = "FARMLINK_DB_HOST"
	EnvDBUser = "FARMLINK_DB_USER"
	EnvDBName = "FARMLINK_DB_NAME"

	EnvRedisURL = "FARMLINK_REDIS_URL"

	EnvJWTSecret  = "FARMLINK_JWT_SECRET"
	EnvJWTIssuer  = "FARMLINK_JWT_ISSUER"
	EnvJWTExpMins = "FARMLINK_JWT_EXPIRATION_MINUTES"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
