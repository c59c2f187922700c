package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	BaseURL     string `yaml:"base_url"`
	FrontendURL string `yaml:"frontend_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret       string `yaml:"secret"`
	Issuer       string `yaml:"issuer"`
	AccessTTL    string `yaml:"access_ttl"`
	OTPTTL       string `yaml:"otp_session_ttl"`
	ResetTTL     string `yaml:"reset_session_ttl"`
	CookieSecure bool   `yaml:"cookie_secure"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type OAuthConfig struct {
	GoogleClientID     string `yaml:"google_client_id"`
	GoogleClientSecret string `yaml:"google_client_secret"`
	RedirectURL        string `yaml:"redirect_url"`
}

type RateLimitConfig struct {
	AuthPerMinute int `yaml:"auth_per_minute"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Mail      MailConfig      `yaml:"mail"`
	OAuth     OAuthConfig     `yaml:"oauth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type Config struct {
	Port          string
	GinMode       string
	BaseURL       string
	FrontendURL   string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	JWTIssuer     string
	AccessTTL     time.Duration
	OTPSessionTTL time.Duration
	ResetTTL      time.Duration
	CookieSecure  bool
	MailHost      string
	MailPort      int
	MailUsername  string
	MailPassword  string
	MailFrom      string
	GoogleID      string
	GoogleSecret  string
	OAuthRedirect string
	AuthRPM       int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads config/config.yml when present and falls back to environment
// variables otherwise, so the service runs in containers without a mounted
// config file.
func Load() (*Config, error) {
	configFile, err := loadConfigFile("config/config.yml")
	if err != nil {
		configFile = fromEnv()
	}

	accTTL, err := time.ParseDuration(defaultString(configFile.JWT.AccessTTL, "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	otpTTL, err := time.ParseDuration(defaultString(configFile.JWT.OTPTTL, "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP session TTL: %w", err)
	}
	resetTTL, err := time.ParseDuration(defaultString(configFile.JWT.ResetTTL, "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid reset session TTL: %w", err)
	}

	if configFile.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	port := configFile.App.Port
	if port == 0 {
		port = 3000
	}

	return &Config{
		Port:          fmt.Sprintf("%d", port),
		GinMode:       defaultString(configFile.App.GinMode, "release"),
		BaseURL:       defaultString(configFile.App.BaseURL, "http://localhost:3000"),
		FrontendURL:   defaultString(configFile.App.FrontendURL, "http://localhost:3000"),
		DSN:           configFile.Database.DSN,
		RedisAddr:     defaultString(configFile.Redis.Addr, "localhost:6379"),
		RedisPassword: configFile.Redis.Password,
		RedisDB:       configFile.Redis.DB,
		JWTSecret:     configFile.JWT.Secret,
		JWTIssuer:     defaultString(configFile.JWT.Issuer, "todo-list"),
		AccessTTL:     accTTL,
		OTPSessionTTL: otpTTL,
		ResetTTL:      resetTTL,
		CookieSecure:  configFile.JWT.CookieSecure,
		MailHost:      configFile.Mail.Host,
		MailPort:      configFile.Mail.Port,
		MailUsername:  configFile.Mail.Username,
		MailPassword:  configFile.Mail.Password,
		MailFrom:      configFile.Mail.From,
		GoogleID:      configFile.OAuth.GoogleClientID,
		GoogleSecret:  configFile.OAuth.GoogleClientSecret,
		OAuthRedirect: configFile.OAuth.RedirectURL,
		AuthRPM:       configFile.RateLimit.AuthPerMinute,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}

func fromEnv() *ConfigFile {
	return &ConfigFile{
		App: AppConfig{
			Port:        envInt("PORT", 3000),
			GinMode:     env("GIN_MODE", "release"),
			BaseURL:     env("BASE_URL", ""),
			FrontendURL: env("FRONTEND_URL", ""),
		},
		Database: DatabaseConfig{DSN: env("DATABASE_DSN", "")},
		Redis: RedisConfig{
			Addr:     env("REDIS_ADDR", ""),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:       env("JWT_SECRET", ""),
			Issuer:       env("JWT_ISSUER", ""),
			AccessTTL:    env("JWT_ACCESS_TTL", ""),
			OTPTTL:       env("JWT_OTP_SESSION_TTL", ""),
			ResetTTL:     env("JWT_RESET_SESSION_TTL", ""),
			CookieSecure: env("COOKIE_SECURE", "false") == "true",
		},
		Mail: MailConfig{
			Host:     env("MAIL_HOST", ""),
			Port:     envInt("MAIL_PORT", 587),
			Username: env("MAIL_USERNAME", ""),
			Password: env("MAIL_PASSWORD", ""),
			From:     env("MAIL_FROM", ""),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     env("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: env("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:        env("OAUTH_REDIRECT_URL", ""),
		},
		RateLimit: RateLimitConfig{AuthPerMinute: envInt("AUTH_RATE_LIMIT_RPM", 0)},
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
