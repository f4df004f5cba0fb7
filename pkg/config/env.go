package config

const EnvPrefix = "APERTURE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "APERTURE_APP_ENV"
	EnvPort                   = "APERTURE_APP_PORT"
	EnvDBDSN                  = "APERTURE_DB_DSN"
	EnvDBHost                 = "APERTURE_DB_HOST"
	EnvDBUser                 = "APERTURE_DB_USER"
	EnvDBName                 = "APERTURE_DB_NAME"
	EnvDBPassword             = "APERTURE_DB_PASSWORD"
	EnvRedisURL               = "APERTURE_REDIS_URL"
	EnvJWTSecret              = "APERTURE_JWT_SECRET"
	EnvJWTIssuer              = "APERTURE_JWT_ISSUER"
	EnvJWTExpMins             = "APERTURE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "APERTURE_REFRESH_TOKEN_TTL_MINUTES"
	EnvGCPProjectID           = "APERTURE_GCP_PROJECT_ID"
	EnvPubSubOrdersTopic      = "APERTURE_PUBSUB_ORDERS_TOPIC"
	EnvPubSubWalletTopic      = "APERTURE_PUBSUB_WALLET_TOPIC"
	EnvStoreCODLimit          = "APERTURE_STORE_COD_LIMIT"
	EnvStoreMaxItemQuantity   = "APERTURE_STORE_MAX_ITEM_QUANTITY"
	EnvReportsTimezone        = "APERTURE_REPORTS_TIMEZONE"
	EnvOutboxRetentionDays    = "APERTURE_OUTBOX_RETENTION_DAYS"
	EnvCORSOrigins            = "APERTURE_CORS_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
