package config

import (
	"time"
	_ "time/tzdata"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

const (
	DefaultAlertScheduleTime = "07:00"
	DefaultTimezone          = "UTC"
	DefaultJWTTTLHours       = 24
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTTTLHours          int    `mapstructure:"JWT_TTL_HOURS"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	AlertScheduleTime    string `mapstructure:"ALERT_SCHEDULE_TIME"`
	Timezone             string `mapstructure:"TIMEZONE"`
}

var ConfigInstance Config

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
	"CORS_ALLOW_ORIGINS",
	"JWT_SECRET", "JWT_TTL_HOURS",
	"SCHEDULER_ENABLED", "ALERT_SCHEDULE_TIME", "TIMEZONE",
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("JWT_TTL_HOURS", DefaultJWTTTLHours)
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("ALERT_SCHEDULE_TIME", DefaultAlertScheduleTime)
	viper.SetDefault("TIMEZONE", DefaultTimezone)

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"timezone", config.Timezone,
		"schedulerEnabled", config.SchedulerEnabled,
	)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

// Location resolves TIMEZONE, falling back to UTC when unset.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) JWTTTL() time.Duration {
	if c.JWTTTLHours <= 0 {
		return DefaultJWTTTLHours * time.Hour
	}
	return time.Duration(c.JWTTTLHours) * time.Hour
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 || config.ServerPort > 65535 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.JWTSecret == "" {
		return log.ErrMsg("Fatal error: JWT_SECRET is required")
	}

	if config.AlertScheduleTime != "" {
		if _, err := time.Parse("15:04", config.AlertScheduleTime); err != nil {
			return log.Err(
				"Fatal error: ALERT_SCHEDULE_TIME must be HH:MM",
				err,
				"value", config.AlertScheduleTime,
			)
		}
	}

	if config.Timezone != "" {
		if _, err := time.LoadLocation(config.Timezone); err != nil {
			return log.Err("Fatal error: unknown TIMEZONE", err, "value", config.Timezone)
		}
	}

	ConfigInstance = config
	return nil
}
