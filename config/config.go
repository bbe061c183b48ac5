package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	ServerPort  int

	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int

	AdminUser     string
	AdminPass     string
	AdminPassHash string

	AdminEmail      string
	FromEmail       string
	BccArchiveEmail string

	SESEndpoint  string
	SESAccessKey string
	SESSecretKey string

	RateLimitMax       int
	RateLimitStrictMax int
	RateLimitWindow    int // seconds
}

func InitConfig() (Config, error) {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", 3000)
	viper.SetDefault("DATABASE_DB_PATH", "data/db.sqlite")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("FROM_EMAIL", "noreply@tahoenightnurse.com")
	viper.SetDefault("SES_ENDPOINT", "https://email.us-east-1.amazonaws.com")
	viper.SetDefault("RATE_LIMIT_MAX", 10)
	viper.SetDefault("RATE_LIMIT_STRICT_MAX", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW", 60)

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	// .env is optional; environment variables still apply without it
	_ = viper.ReadInConfig()
	viper.AutomaticEnv()

	config := Config{
		Environment:          viper.GetString("ENVIRONMENT"),
		ServerPort:           viper.GetInt("SERVER_PORT"),
		DatabaseDbPath:       viper.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress: viper.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:    viper.GetInt("DATABASE_CACHE_PORT"),
		AdminUser:            viper.GetString("BASIC_AUTH_USER"),
		AdminPass:            viper.GetString("BASIC_AUTH_PASS"),
		AdminPassHash:        viper.GetString("BASIC_AUTH_PASS_HASH"),
		AdminEmail:           viper.GetString("ADMIN_EMAIL"),
		FromEmail:            viper.GetString("FROM_EMAIL"),
		BccArchiveEmail:      viper.GetString("BCC_ARCHIVE_EMAIL"),
		SESEndpoint:          viper.GetString("SES_ENDPOINT"),
		SESAccessKey:         viper.GetString("SES_ACCESS_KEY"),
		SESSecretKey:         viper.GetString("SES_SECRET_KEY"),
		RateLimitMax:         viper.GetInt("RATE_LIMIT_MAX"),
		RateLimitStrictMax:   viper.GetInt("RATE_LIMIT_STRICT_MAX"),
		RateLimitWindow:      viper.GetInt("RATE_LIMIT_WINDOW"),
	}

	if config.DatabaseDbPath == "" {
		return Config{}, fmt.Errorf("DATABASE_DB_PATH must not be empty")
	}

	return config, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
