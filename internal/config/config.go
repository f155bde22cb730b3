package config

import (
	"os"
	"strconv"
	"time"

	"github.com/schtekar/wells-fug/internal/models"
)

// Config содержит конфигурацию приложения
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string
	DataDir     string
	Offline     bool

	Server   ServerConfig
	Tracking TrackingConfig
	BW       BarentswatchConfig
	KDH      KystdataConfig
	Sodir    SodirConfig
	MySQL    MySQLConfig
	Redis    RedisConfig
}

// ServerConfig конфигурация HTTP сервера отображения
type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// TrackingConfig параметры движка отслеживания
type TrackingConfig struct {
	StationaryThresholdM float64
	OnsiteThresholdM     float64
	ReferenceHorizon     models.Horizon
	MaxHistoryLength     int
	MaxHistoryAge        time.Duration
	GeohashPrecision     int
}

// BarentswatchConfig доступ к Live AIS API BarentsWatch
type BarentswatchConfig struct {
	TokenURL     string
	APIURL       string
	ClientID     string
	ClientSecret string
	WindowMinutes int
}

// KystdataConfig доступ к историческому AIS API Kystdatahuset
type KystdataConfig struct {
	AuthURL  string
	APIURL   string
	Username string
	Password string
}

// SodirConfig доступ к FeatureServer реестра скважин SODIR
type SodirConfig struct {
	BaseURL      string
	LayerID      int
	PageSize     int
	LookbackDays int
	RatePerSec   float64
}

// MySQLConfig конфигурация архива AIS в MySQL (опционально)
type MySQLConfig struct {
	DSN          string
	MaxIdleConns int
	MaxOpenConns int
}

// RedisConfig конфигурация зеркала документов в Redis (опционально)
type RedisConfig struct {
	URL          string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		DataDir:     getEnv("DATA_DIR", "data"),
		Offline:     getBool("OFFLINE", false),
		Server: ServerConfig{
			Address:      getEnv("SERVER_ADDRESS", ":8090"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Tracking: TrackingConfig{
			StationaryThresholdM: getFloat("STATIONARY_THRESHOLD_M", 50),
			OnsiteThresholdM:     getFloat("ONSITE_THRESHOLD_M", 100),
			ReferenceHorizon:     models.Horizon(getEnv("REFERENCE_HORIZON", "12h")),
			MaxHistoryLength:     getInt("MAX_HISTORY_LENGTH", 12),
			MaxHistoryAge:        getDuration("MAX_HISTORY_AGE", 12*time.Hour),
			GeohashPrecision:     getInt("GEOHASH_PRECISION", 7),
		},
		BW: BarentswatchConfig{
			TokenURL:      getEnv("BW_TOKEN_URL", "https://id.barentswatch.no/connect/token"),
			APIURL:        getEnv("BW_API_URL", "https://live.ais.barentswatch.no/live/v1/latest/ais"),
			ClientID:      getEnv("BW_CLIENT_ID", ""),
			ClientSecret:  getEnv("BW_CLIENT_SECRET", ""),
			WindowMinutes: getInt("FETCH_WINDOW_MINUTES", 10),
		},
		KDH: KystdataConfig{
			AuthURL:  getEnv("KDH_AUTH_URL", "https://kystdatahuset.no/ws/api/auth/login"),
			APIURL:   getEnv("KDH_API_URL", "https://kystdatahuset.no/ws/api/ais/positions/for-mmsis-time"),
			Username: getEnv("KDH_USERNAME", ""),
			Password: getEnv("KDH_PASSWORD", ""),
		},
		Sodir: SodirConfig{
			BaseURL:      getEnv("SODIR_BASE_URL", "https://factmaps.sodir.no/api/rest/services/Factmaps/FactMapsWGS84/FeatureServer"),
			LayerID:      getInt("SODIR_LAYER_ID", 201),
			PageSize:     getInt("SODIR_PAGE_SIZE", 1000),
			LookbackDays: getInt("SODIR_LOOKBACK_DAYS", 100),
			RatePerSec:   getFloat("SODIR_RATE_PER_SEC", 2),
		},
		MySQL: MySQLConfig{
			DSN:          getEnv("MYSQL_DSN", ""),
			MaxIdleConns: getInt("MYSQL_MAX_IDLE_CONNS", 2),
			MaxOpenConns: getInt("MYSQL_MAX_OPEN_CONNS", 10),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getInt("REDIS_DB", 0),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
		},
	}

	if !cfg.Tracking.ReferenceHorizon.Valid() {
		cfg.Tracking.ReferenceHorizon = models.Horizon12h
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt возвращает целое значение переменной окружения
func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getFloat возвращает вещественное значение переменной окружения
func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBool возвращает булево значение переменной окружения
func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDuration возвращает длительность из переменной окружения
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
