package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Github struct {
		ClientID     string        `mapstructure:"client_id"`
		ClientSecret string        `mapstructure:"client_secret"`
		CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"github"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

// LoadConfig reads config.yaml (if present) layered under environment
// variables. The path argument lets tests load config from the repo root.
func LoadConfig(path ...string) (cfg Config, err error) {
	if err = godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using environment variables only.")
	}

	if len(path) > 0 {
		viper.AddConfigPath(path[0])
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, reading environment only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("github.client_id", "GITHUB_CLIENT_ID")
	viper.BindEnv("github.client_secret", "GITHUB_CLIENT_SECRET")
	viper.BindEnv("github.cache_ttl", "GITHUB_CACHE_TTL")
	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	viper.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")

	viper.SetDefault("app.port", "5000")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("auth.token_lifespan", "24h")
	viper.SetDefault("github.cache_ttl", "10m")

	err = viper.Unmarshal(&cfg)
	return
}
