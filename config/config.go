package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Schedule ScheduleConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// GridConfig describes the fixed time axis of one schedule kind.
type GridConfig struct {
	OpenTime    string
	CloseTime   string
	SlotMinutes int
	BufferSlots int
}

// ScheduleConfig holds the grid settings for both booking domains.
type ScheduleConfig struct {
	RF      GridConfig
	Therapy GridConfig
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// The .env file is optional; env vars and defaults carry the
	// configuration in container environments.
	_ = viper.ReadInConfig()

	setDefaults()

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Schedule: ScheduleConfig{
			RF: GridConfig{
				OpenTime:    viper.GetString("RF_OPEN_TIME"),
				CloseTime:   viper.GetString("RF_CLOSE_TIME"),
				SlotMinutes: viper.GetInt("RF_SLOT_MINUTES"),
				BufferSlots: viper.GetInt("RF_BUFFER_SLOTS"),
			},
			Therapy: GridConfig{
				OpenTime:    viper.GetString("THERAPY_OPEN_TIME"),
				CloseTime:   viper.GetString("THERAPY_CLOSE_TIME"),
				SlotMinutes: viper.GetInt("THERAPY_SLOT_MINUTES"),
				BufferSlots: viper.GetInt("THERAPY_BUFFER_SLOTS"),
			},
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")

	// RF treatment rooms keep one turnover slot after every booking.
	viper.SetDefault("RF_OPEN_TIME", "09:00")
	viper.SetDefault("RF_CLOSE_TIME", "17:00")
	viper.SetDefault("RF_SLOT_MINUTES", 30)
	viper.SetDefault("RF_BUFFER_SLOTS", 1)

	// Manual-therapy sessions run back-to-back, no buffer.
	viper.SetDefault("THERAPY_OPEN_TIME", "09:00")
	viper.SetDefault("THERAPY_CLOSE_TIME", "18:00")
	viper.SetDefault("THERAPY_SLOT_MINUTES", 30)
	viper.SetDefault("THERAPY_BUFFER_SLOTS", 0)
}
