package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
	BDTPerCredit decimal.Decimal

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ReconcileCron  string
	RateLimitRPS   float64
	RateLimitBurst int
	LogLevel       string

	// Empty CORSOrigins allows any origin without credentials.
	CORSOrigins    []string
	TrustedProxies []string

	OwnerMobile   string
	OwnerPassword string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "gymcredit")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", 30*24*time.Hour)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("BDT_PER_CREDIT", "150")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RECONCILE_CRON", "0 3 * * *")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("OWNER_MOBILE", "+8801700000000")
	v.SetDefault("OWNER_PASSWORD", "")

	bdt, err := decimal.NewFromString(strings.TrimSpace(v.GetString("BDT_PER_CREDIT")))
	if err != nil || !bdt.IsPositive() {
		logrus.Warnf("Invalid BDT_PER_CREDIT %q, falling back to 150", v.GetString("BDT_PER_CREDIT"))
		bdt = decimal.NewFromInt(150)
	}

	return &Config{
		Env:            v.GetString("ENV"),
		Port:           v.GetString("PORT"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		BcryptCost:     v.GetInt("BCRYPT_COST"),
		BDTPerCredit:   bdt,
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		ReconcileCron:  v.GetString("RECONCILE_CRON"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		CORSOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		OwnerMobile:    v.GetString("OWNER_MOBILE"),
		OwnerPassword:  v.GetString("OWNER_PASSWORD"),
	}
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
