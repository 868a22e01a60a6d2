package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported values of STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port    string
	GinMode string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SQLitePath    string

	RedisHost     string
	RedisPort     string
	SessionSecret string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration

	RequestTimeout time.Duration
	MetricsEnabled bool

	LogLevel      string
	LogEncoding   string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxAgeDays int
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "7070"),
		GinMode: getEnv("GIN_MODE", "debug"),

		StoreDriver:   getEnv("STORE_DRIVER", StoreMongo),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "TodoAppDb"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "taskuser"),
		DBPassword:    getEnv("DB_PASSWORD", "taskpassword"),
		DBName:        getEnv("DB_NAME", "task_management"),
		SQLitePath:    getEnv("SQLITE_PATH", "tasktrack.db"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),

		JWTSecret:   getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		JWTIssuer:   getEnv("JWT_ISSUER", "TodoApp"),
		JWTAudience: getEnv("JWT_AUDIENCE", "TodoApp"),
		JWTExpiry:   getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogEncoding:   getEnv("LOG_ENCODING", "json"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),
	}
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
