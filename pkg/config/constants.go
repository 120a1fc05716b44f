package config

const (
	EnvPrefix = "tradehub"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "TRADEHUB_APP_ENV"
	EnvPort                   = "TRADEHUB_APP_PORT"
	EnvDBDSN                  = "TRADEHUB_DB_DSN"
	EnvDBHost                 = "TRADEHUB_DB_HOST"
	EnvDBUser                 = "TRADEHUB_DB_USER"
	EnvDBName                 = "TRADEHUB_DB_NAME"
	EnvRedisURL               = "TRADEHUB_REDIS_URL"
	EnvJWTSecret              = "TRADEHUB_JWT_SECRET"
	EnvJWTIssuer              = "TRADEHUB_JWT_ISSUER"
	EnvJWTExpMins             = "TRADEHUB_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "TRADEHUB_REFRESH_TOKEN_TTL_MINUTES"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
