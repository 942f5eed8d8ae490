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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Company      CompanyConfig
	Mailer       MailerConfig
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
	Env          string `envconfig:"HARPS_APP_ENV" required:"true"`
	Port         string `envconfig:"HARPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HARPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HARPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HARPS_DB_DSN"`
	Driver string `envconfig:"HARPS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HARPS_DB_HOST"`
	LegacyPort     int    `envconfig:"HARPS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HARPS_DB_USER"`
	LegacyPassword string `envconfig:"HARPS_DB_PASSWORD"`
	LegacyName     string `envconfig:"HARPS_DB_NAME"`
	LegacySSLMode  string `envconfig:"HARPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HARPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HARPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HARPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HARPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HARPS_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"HARPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HARPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HARPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HARPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HARPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HARPS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HARPS_JWT_ISSUER" default:"harps-portal"`
	ExpirationMinutes int    `envconfig:"HARPS_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// CompanyConfig holds the issuer identity printed on exported invoices.
type CompanyConfig struct {
	Name      string `envconfig:"HARPS_COMPANY_NAME" default:"HARPS Global Kft."`
	Address   string `envconfig:"HARPS_COMPANY_ADDRESS" default:"1044 Budapest, Ezred utca 2."`
	TaxNumber string `envconfig:"HARPS_COMPANY_TAX_NUMBER" default:"25487770-2-41"`
	Email     string `envconfig:"HARPS_COMPANY_EMAIL" default:"office@harps.hu"`
}

type MailerConfig struct {
	APIKey      string        `envconfig:"HARPS_RESEND_API_KEY"`
	BaseURL     string        `envconfig:"HARPS_RESEND_BASE_URL" default:"https://api.resend.com"`
	From        string        `envconfig:"HARPS_MAIL_FROM" default:"HARPS Global <office@harps.hu>"`
	OfficeEmail string        `envconfig:"HARPS_MAIL_OFFICE_EMAIL" default:"office@harps.hu"`
	SendTimeout time.Duration `envconfig:"HARPS_MAIL_SEND_TIMEOUT" default:"10s"`
}

// Enabled reports whether outbound mail is configured at all. Without an
// API key notifications are skipped, never failed.
func (m MailerConfig) Enabled() bool {
	return strings.TrimSpace(m.APIKey) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HARPS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HARPS_AUTO_MIGRATE" default:"false"`
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
