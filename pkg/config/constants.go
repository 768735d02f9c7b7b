package config

// EnvPrefix is empty because every field spells out its full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SHREEMOBILES_DB_DSN"
	EnvDBHost = "SHREEMOBILES_DB_HOST"
	EnvDBUser = "SHREEMOBILES_DB_USER"
	EnvDBName = "SHREEMOBILES_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
