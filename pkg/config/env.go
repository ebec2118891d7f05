package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "SHOPCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "SHOPCART_APP_ENV"
	EnvPort     = "SHOPCART_APP_PORT"
	EnvLogLevel = "SHOPCART_LOG_LEVEL"

	EnvDBDSN      = "SHOPCART_DB_DSN"
	EnvDBHost     = "SHOPCART_DB_HOST"
	EnvDBPort     = "SHOPCART_DB_PORT"
	EnvDBUser     = "SHOPCART_DB_USER"
	EnvDBPassword = "SHOPCART_DB_PASSWORD"
	EnvDBName     = "SHOPCART_DB_NAME"

	EnvRedisURL = "SHOPCART_REDIS_URL"

	EnvGCPProjectID = "SHOPCART_GCP_PROJECT_ID"

	EnvPubSubBasketTopic = "SHOPCART_PUBSUB_BASKET_TOPIC"
	EnvPubSubBasketSub   = "SHOPCART_PUBSUB_BASKET_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
