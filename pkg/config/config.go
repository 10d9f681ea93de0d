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
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Cache        CacheConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"FARMLINK_APP_ENV" required:"true"`
	Port         string `envconfig:"FARMLINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FARMLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FARMLINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FARMLINK_DB_DSN"`
	Driver string `envconfig:"FARMLINK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FARMLINK_DB_HOST"`
	Port     int    `envconfig:"FARMLINK_DB_PORT" default:"5432"`
	User     string `envconfig:"FARMLINK_DB_USER"`
	Password string `envconfig:"FARMLINK_DB_PASSWORD"`
	Name     string `envconfig:"FARMLINK_DB_NAME"`
	SSLMode  string `envconfig:"FARMLINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FARMLINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FARMLINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FARMLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FARMLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FARMLINK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FARMLINK_REDIS_ADDR"`
	Password     string        `envconfig:"FARMLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"FARMLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FARMLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FARMLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FARMLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FARMLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FARMLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FARMLINK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FARMLINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FARMLINK_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FARMLINK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FARMLINK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FARMLINK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FARMLINK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FARMLINK_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FARMLINK_AUTO_MIGRATE" default:"false"`
}

type CacheConfig struct {
	BrowseTTL time.Duration `envconfig:"FARMLINK_CACHE_BROWSE_TTL" default:"60s"`
	Enabled   bool          `envconfig:"FARMLINK_CACHE_ENABLED" default:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FARMLINK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
