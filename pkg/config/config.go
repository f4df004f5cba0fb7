package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	Store         StoreConfig
	Reports       ReportsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"APERTURE_APP_ENV" required:"true"`
	Port         string `envconfig:"APERTURE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"APERTURE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"APERTURE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  string `envconfig:"APERTURE_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AllowedOrigins splits the comma separated CORS origin list.
func (a AppConfig) AllowedOrigins() []string {
	origins := []string{}
	for _, origin := range strings.Split(a.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

type ServiceConfig struct {
	Kind string `envconfig:"APERTURE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"APERTURE_DB_DSN"`
	Driver string `envconfig:"APERTURE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"APERTURE_DB_HOST"`
	LegacyPort     int    `envconfig:"APERTURE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"APERTURE_DB_USER"`
	LegacyPassword string `envconfig:"APERTURE_DB_PASSWORD"`
	LegacyName     string `envconfig:"APERTURE_DB_NAME"`
	LegacySSLMode  string `envconfig:"APERTURE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"APERTURE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"APERTURE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"APERTURE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"APERTURE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"APERTURE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"APERTURE_REDIS_ADDR"`
	Password     string        `envconfig:"APERTURE_REDIS_PASSWORD"`
	DB           int           `envconfig:"APERTURE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"APERTURE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"APERTURE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"APERTURE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"APERTURE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"APERTURE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"APERTURE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"APERTURE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"APERTURE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"APERTURE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"APERTURE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"APERTURE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"APERTURE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"APERTURE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"APERTURE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"APERTURE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"APERTURE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"APERTURE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"APERTURE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"APERTURE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"APERTURE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"APERTURE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"APERTURE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"APERTURE_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"APERTURE_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"APERTURE_PUBSUB_ORDERS_TOPIC" default:"aperture-order-events"`
	WalletTopic string `envconfig:"APERTURE_PUBSUB_WALLET_TOPIC" default:"aperture-wallet-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"APERTURE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"APERTURE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"APERTURE_OUTBOX_MAX_ATTEMPTS" default:"10"`
	RetentionDays  int `envconfig:"APERTURE_OUTBOX_RETENTION_DAYS" default:"30"`
}

// StoreConfig holds storefront business limits.
type StoreConfig struct {
	CODLimit        int `envconfig:"APERTURE_STORE_COD_LIMIT" default:"5000"`
	MaxItemQuantity int `envconfig:"APERTURE_STORE_MAX_ITEM_QUANTITY" default:"5"`
	PageLimit       int `envconfig:"APERTURE_STORE_PAGE_LIMIT" default:"12"`
	RelatedLimit    int `envconfig:"APERTURE_STORE_RELATED_LIMIT" default:"8"`
	HomeLimit       int `envconfig:"APERTURE_STORE_HOME_LIMIT" default:"12"`
}

func (s StoreConfig) validate() error {
	if s.CODLimit <= 0 {
		return fmt.Errorf("%s must be positive", EnvStoreCODLimit)
	}
	if s.MaxItemQuantity <= 0 {
		return fmt.Errorf("%s must be positive", EnvStoreMaxItemQuantity)
	}
	return nil
}

type ReportsConfig struct {
	PDFFontPath string `envconfig:"APERTURE_REPORTS_PDF_FONT_PATH"`
	Timezone    string `envconfig:"APERTURE_REPORTS_TIMEZONE" default:"Asia/Kolkata"`
}

// Location resolves the reporting timezone, falling back to UTC.
func (r ReportsConfig) Location() *time.Location {
	if strings.TrimSpace(r.Timezone) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
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
