package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Session  SessionConfig
	Admin    AdminConfig
	Uploads  UploadsConfig
	GCS      GCSConfig
	PubSub   PubSubConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HOMESTYLE_APP_ENV" default:"dev"`
	Port         string `envconfig:"HOMESTYLE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"HOMESTYLE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOMESTYLE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"HOMESTYLE_REDIS_URL"`
	Address      string        `envconfig:"HOMESTYLE_REDIS_ADDR"`
	Password     string        `envconfig:"HOMESTYLE_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOMESTYLE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOMESTYLE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOMESTYLE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOMESTYLE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOMESTYLE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOMESTYLE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any redis endpoint was provided. When neither is
// set the process falls back to the in-memory session store.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type SessionConfig struct {
	CookieName string        `envconfig:"HOMESTYLE_SESSION_COOKIE" default:"hf_session"`
	TTL        time.Duration `envconfig:"HOMESTYLE_SESSION_TTL" default:"72h"`
	Secret     string        `envconfig:"HOMESTYLE_SESSION_SECRET" required:"true"`
	Issuer     string        `envconfig:"HOMESTYLE_SESSION_ISSUER" default:"homestyle-foods"`
}

type AdminConfig struct {
	Email    string `envconfig:"HOMESTYLE_ADMIN_EMAIL" default:"admin@example.com"`
	Name     string `envconfig:"HOMESTYLE_ADMIN_NAME" default:"Admin"`
	Password string `envconfig:"HOMESTYLE_ADMIN_PASSWORD" default:"admin123"`
}

type UploadsConfig struct {
	Dir               string   `envconfig:"HOMESTYLE_UPLOAD_DIR" default:"static/images"`
	AllowedExtensions []string `envconfig:"HOMESTYLE_UPLOAD_EXTENSIONS" default:"png,jpg,jpeg,gif"`
	MaxUploadMB       int      `envconfig:"HOMESTYLE_MAX_UPLOAD_MB" default:"8"`
}

// AllowsExtension reports whether ext (without the dot, any case) is in the
// upload allowlist.
func (u UploadsConfig) AllowsExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	for _, allowed := range u.AllowedExtensions {
		if strings.ToLower(strings.TrimSpace(allowed)) == ext {
			return true
		}
	}
	return false
}

type GCSConfig struct {
	BucketName string `envconfig:"HOMESTYLE_GCS_BUCKET_NAME"`
	Prefix     string `envconfig:"HOMESTYLE_GCS_PREFIX" default:"images"`
}

// Configured reports whether uploads should target GCS instead of local disk.
func (g GCSConfig) Configured() bool {
	return g.BucketName != ""
}

type PubSubConfig struct {
	ProjectID    string `envconfig:"HOMESTYLE_GCP_PROJECT_ID"`
	OrderTopic   string `envconfig:"HOMESTYLE_PUBSUB_ORDER_TOPIC" default:"hf-order-events"`
	ContactTopic string `envconfig:"HOMESTYLE_PUBSUB_CONTACT_TOPIC" default:"hf-contact-messages"`
}

// Configured reports whether the notification publisher should be started.
func (p PubSubConfig) Configured() bool {
	return p.ProjectID != ""
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HOMESTYLE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HOMESTYLE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HOMESTYLE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HOMESTYLE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HOMESTYLE_ARGON_KEY_LEN" default:"32"`
}
