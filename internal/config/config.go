package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// BaseURL is the public origin short links are served from,
	// e.g. https://atm.zr; short URLs are BaseURL + "/" + code.
	BaseURL string `mapstructure:"BASE_URL"`

	// Redis (daily quotas + resolve cache)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Creation quotas, per identity per calendar day
	DailyLinkLimit int `mapstructure:"DAILY_LINK_LIMIT"`
	DailyBulkLimit int `mapstructure:"DAILY_BULK_LIMIT"`

	// Click tracking pipeline
	ClickWorkers    int `mapstructure:"CLICK_WORKERS"`
	ClickBufferSize int `mapstructure:"CLICK_BUFFER_SIZE"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("DAILY_LINK_LIMIT", 10)
	viper.SetDefault("DAILY_BULK_LIMIT", 50)
	viper.SetDefault("CLICK_WORKERS", 4)
	viper.SetDefault("CLICK_BUFFER_SIZE", 1024)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}
