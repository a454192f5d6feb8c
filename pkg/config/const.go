package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for struct-derived fallbacks.
const EnvPrefix = "NUTRIMART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "NUTRIMART_APP_ENV"
	EnvPort     = "NUTRIMART_APP_PORT"
	EnvDBDSN    = "NUTRIMART_DB_DSN"
	EnvDBHost   = "NUTRIMART_DB_HOST"
	EnvDBUser   = "NUTRIMART_DB_USER"
	EnvDBName   = "NUTRIMART_DB_NAME"
	EnvRedisURL = "NUTRIMART_REDIS_URL"

	EnvJWTSecret              = "NUTRIMART_JWT_SECRET"
	EnvJWTIssuer              = "NUTRIMART_JWT_ISSUER"
	EnvJWTExpMins             = "NUTRIMART_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "NUTRIMART_REFRESH_TOKEN_TTL_MINUTES"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
