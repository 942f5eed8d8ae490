package config

const (
	EnvPrefix = "HARPS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "HARPS_DB_DSN"
	EnvDBHost = "HARPS_DB_HOST"
	EnvDBUser = "HARPS_DB_USER"
	EnvDBName = "HARPS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
