// Package config loads process configuration, following the teacher's
// viper-based LoadConfig shape: defaults set, environment variables read
// automatically, an optional YAML file layered on top, fatal only if the
// final unmarshal fails.
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values for a simulation run.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	RunLength        int     `mapstructure:"RUN_LENGTH"`
	WarmUp           int     `mapstructure:"WARM_UP"`
	PropCarveOut     float64 `mapstructure:"PROP_CARVE_OUT"`
	PropHighPriority float64 `mapstructure:"PROP_HIGH_PRIORITY"`
	AnnualDemand     int     `mapstructure:"ANNUAL_DEMAND"`

	MongoURL         string `mapstructure:"MONGO_URL"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSeedCacheDB int    `mapstructure:"REDIS_SEED_CACHE_DB"`
	RedisQueueDB     int    `mapstructure:"REDIS_QUEUE_DB"`

	WorkerConcurrency int     `mapstructure:"WORKER_CONCURRENCY"`
	RunRatePerSecond  float64 `mapstructure:"RUN_RATE_PER_SECOND"`
}

// AppConfig is the process-wide configuration instance.
var AppConfig Config

// LoadConfig initializes viper to load config values from env, file, or
// defaults.
func LoadConfig() {
	viper.SetConfigName("triagesim")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RUN_LENGTH", 365)
	viper.SetDefault("WARM_UP", 0)
	viper.SetDefault("PROP_CARVE_OUT", 0.15)
	viper.SetDefault("PROP_HIGH_PRIORITY", 0.2)
	viper.SetDefault("ANNUAL_DEMAND", 1000)
	viper.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SEED_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("WORKER_CONCURRENCY", 4)
	viper.SetDefault("RUN_RATE_PER_SECOND", 2.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("no config file found, using environment variables and defaults only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
}

// GetEnv returns the application environment.
func GetEnv() string {
	return AppConfig.Env
}

// IsProduction reports whether the configured environment is production.
func IsProduction() bool {
	return GetEnv() == "production"
}
