package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout int    `mapstructure:"CONTEXT_TIMEOUT"`

	MongoURI string `mapstructure:"MONGO_URI"`
	DBName   string `mapstructure:"DB_NAME"`

	JWTSecret       string `mapstructure:"JWT_SECRET"`
	TokenExpiryHour int    `mapstructure:"TOKEN_EXPIRY_HOUR"`
	FrontendURL     string `mapstructure:"FRONTEND_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	OTPTTLMinutes       int `mapstructure:"OTP_TTL_MINUTES"`
	OnlineWindowSeconds int `mapstructure:"ONLINE_WINDOW_SECONDS"`

	StorageEndpoint  string `mapstructure:"STORAGE_ENDPOINT"`
	StorageAccessKey string `mapstructure:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `mapstructure:"STORAGE_SECRET_KEY"`
	StorageBucket    string `mapstructure:"STORAGE_BUCKET"`
	StorageRegion    string `mapstructure:"STORAGE_REGION"`
	StorageUseSSL    bool   `mapstructure:"STORAGE_USE_SSL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`

	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogEncoding string `mapstructure:"LOG_ENCODING"`

	RateLimitPerMinute int `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	SeedEmail    string `mapstructure:"SEED_EMAIL"`
	SeedPassword string `mapstructure:"SEED_PASSWORD"`
}

var envDefaults = map[string]interface{}{
	"APP_ENV":               "development",
	"SERVER_ADDRESS":        ":5000",
	"CONTEXT_TIMEOUT":       5,
	"MONGO_URI":             "mongodb://localhost:27017",
	"DB_NAME":               "auth_admin",
	"JWT_SECRET":            "",
	"TOKEN_EXPIRY_HOUR":     24,
	"FRONTEND_URL":          "http://localhost:3000",
	"REDIS_ADDR":            "localhost:6379",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"OTP_TTL_MINUTES":       10,
	"ONLINE_WINDOW_SECONDS": 60,
	"STORAGE_ENDPOINT":      "",
	"STORAGE_ACCESS_KEY":    "",
	"STORAGE_SECRET_KEY":    "",
	"STORAGE_BUCKET":        "profile-images",
	"STORAGE_REGION":        "",
	"STORAGE_USE_SSL":       true,
	"SMTP_HOST":             "",
	"SMTP_PORT":             587,
	"SMTP_USERNAME":         "",
	"SMTP_PASSWORD":         "",
	"MAIL_FROM":             "no-reply@localhost",
	"LOG_LEVEL":             "info",
	"LOG_ENCODING":          "json",
	"RATE_LIMIT_PER_MINUTE": 10,
	"SEED_EMAIL":            "",
	"SEED_PASSWORD":         "",
}

// NewEnv reads configFile (optional) and the process environment. Environment
// variables win over the file.
func NewEnv(configFile string) (*Env, error) {
	v := viper.New()
	for key, value := range envDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
			}
		}
	}

	env := &Env{}
	if err := v.Unmarshal(env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Env) validate() error {
	if e.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if e.ContextTimeout <= 0 {
		return fmt.Errorf("CONTEXT_TIMEOUT must be positive, got %d", e.ContextTimeout)
	}
	return nil
}

func (e *Env) IsProduction() bool { return e.AppEnv == "production" }

func (e *Env) Timeout() time.Duration { return time.Duration(e.ContextTimeout) * time.Second }

func (e *Env) TokenExpiry() time.Duration { return time.Duration(e.TokenExpiryHour) * time.Hour }

func (e *Env) OTPTTL() time.Duration { return time.Duration(e.OTPTTLMinutes) * time.Minute }

func (e *Env) OnlineWindow() time.Duration {
	return time.Duration(e.OnlineWindowSeconds) * time.Second
}
