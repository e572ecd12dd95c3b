package config

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"goflare.io/merchant/driver"
	"goflare.io/merchant/handlers"
	"goflare.io/merchant/password"
	"goflare.io/merchant/token"
)

const (
	ServerStartPort = ":8080"
)

type Config struct {
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

type AuthConfig struct {
	Secret       string        `mapstructure:"secret"`
	Issuer       string        `mapstructure:"issuer"`
	AccessTTL    time.Duration `mapstructure:"access_ttl"`
	RefreshTTL   time.Duration `mapstructure:"refresh_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

func ProvideApplicationConfig() (*Config, error) {

	viper.SetConfigFile("./config.yaml")
	viper.SetConfigType("yaml")

	viper.SetDefault("auth.issuer", "goflare.io/merchant")
	viper.SetDefault("auth.access_ttl", 15*time.Minute)
	viper.SetDefault("auth.refresh_ttl", 7*24*time.Hour)
	viper.SetDefault("auth.secure_cookie", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func ProvidePostgresConn(appConfig *Config) (driver.PostgresPool, error) {

	conn, err := driver.ConnectSQL(appConfig.Postgres.URL)
	if err != nil {
		return nil, err
	}

	return conn.Pool, nil
}

func ProvideRedis(appConfig *Config) (*redis.Client, error) {
	return driver.ConnectRedis(appConfig.Redis.Addr, appConfig.Redis.Password, 0)
}

func ProvideTokenManager(appConfig *Config) (*token.Manager, error) {
	return token.NewManager(token.Config{
		Secret:     []byte(appConfig.Auth.Secret),
		Issuer:     appConfig.Auth.Issuer,
		AccessTTL:  appConfig.Auth.AccessTTL,
		RefreshTTL: appConfig.Auth.RefreshTTL,
	})
}

func ProvidePasswordHasher() *password.Hasher {
	return password.NewHasher()
}

func ProvideCookieConfig(appConfig *Config) handlers.CookieConfig {
	return handlers.CookieConfig{
		Secure:     appConfig.Auth.SecureCookie,
		AccessTTL:  appConfig.Auth.AccessTTL,
		RefreshTTL: appConfig.Auth.RefreshTTL,
	}
}

func NewLogger() *zap.Logger {

	logger, _ := zap.NewProduction()
	return logger
}
