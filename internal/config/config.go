package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/labfetch/labfetch-api/internal/address"
)

type Config struct {
	Environment   string              `mapstructure:"environment"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Validation    ValidationConfig    `mapstructure:"validation"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Mail          MailConfig          `mapstructure:"mail"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	ExposeErrors    bool          `mapstructure:"expose_errors"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	HSTS            bool          `mapstructure:"hsts"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrateOnStart  bool          `mapstructure:"migrate_on_start"`
}

// DSN returns url when set, otherwise a DSN built from the discrete fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Host == "" || d.Name == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type StorageConfig struct {
	UploadDir       string        `mapstructure:"upload_dir"`
	PublicPrefix    string        `mapstructure:"public_prefix"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
	CleanupSchedule string        `mapstructure:"cleanup_schedule"`
	CleanupGrace    time.Duration `mapstructure:"cleanup_grace"`
}

type NotificationsConfig struct {
	ClientBuffer int           `mapstructure:"client_buffer"`
	KeepAlive    time.Duration `mapstructure:"keep_alive"`
	SinkBuffer   int           `mapstructure:"sink_buffer"`
	SinkTimeout  time.Duration `mapstructure:"sink_timeout"`
}

type ValidationConfig struct {
	LetterMode string `mapstructure:"letter_mode"`
	Timezone   string `mapstructure:"timezone"`
}

// Location loads the timezone used to decide what "today" is.
func (v ValidationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(v.Timezone)
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	RPS     float64       `mapstructure:"rps"`
	Burst   int           `mapstructure:"burst"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type CacheConfig struct {
	PublicSettingTTL time.Duration `mapstructure:"public_setting_ttl"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	Channel      string        `mapstructure:"channel"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type MailConfig struct {
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.expose_errors", false)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.hsts", false)

	// Keys without a real default are still registered so that
	// AutomaticEnv picks them up during Unmarshal.
	for _, key := range []string{
		"database.url", "database.host", "database.user", "database.password", "database.name",
		"jwt.secret", "log.file", "redis.url",
		"mail.host", "mail.username", "mail.password", "mail.from",
	} {
		v.SetDefault(key, "")
	}
	v.SetDefault("mail.to", []string{})
	v.SetDefault("log.compress", false)
	v.SetDefault("redis.min_idle_conns", 0)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.migrate_on_start", true)

	v.SetDefault("jwt.expiry", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.public_prefix", "/uploads")
	v.SetDefault("storage.max_upload_mb", 25)
	v.SetDefault("storage.cleanup_schedule", "@daily")
	v.SetDefault("storage.cleanup_grace", time.Hour)

	v.SetDefault("notifications.client_buffer", 32)
	v.SetDefault("notifications.keep_alive", 25*time.Second)
	v.SetDefault("notifications.sink_buffer", 64)
	v.SetDefault("notifications.sink_timeout", 10*time.Second)

	v.SetDefault("validation.letter_mode", string(address.LetterModeLoose))
	v.SetDefault("validation.timezone", "America/Bogota")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 0.5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.ttl", 10*time.Minute)

	v.SetDefault("cache.public_setting_ttl", time.Minute)

	v.SetDefault("redis.channel", "labfetch:pickups")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("mail.port", 587)

	v.SetDefault("metrics.namespace", "labfetch")
}

// deployment names used by the existing container setup
var envAliases = map[string]string{
	"server.port":  "PORT",
	"database.url": "DATABASE_URL",
	"jwt.secret":   "JWT_SECRET",
	"environment":  "APP_ENV",
}

// Load reads .env, then the YAML file at path (or config/config.yaml when
// path is empty), then LABFETCH_* environment variables.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("LABFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, "LABFETCH_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var problems []string
	if c.JWT.Secret == "" {
		problems = append(problems, "jwt.secret is required")
	}
	if c.Database.DSN() == "" {
		problems = append(problems, "database.url (or database.host and database.name) is required")
	}
	if !address.LetterMode(c.Validation.LetterMode).Valid() {
		problems = append(problems, fmt.Sprintf("validation.letter_mode %q is not loose or strict", c.Validation.LetterMode))
	}
	if _, err := c.Validation.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("validation.timezone: %v", err))
	}
	if c.Server.Port <= 0 {
		problems = append(problems, "server.port must be positive")
	}
	if c.Storage.MaxUploadMB <= 0 {
		problems = append(problems, "storage.max_upload_mb must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
