package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"mealplanner/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver   string // "postgres" | "sqlite"
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret []byte
	JWTTTL    time.Duration

	MealDBBaseURL string
	MealDBTimeout time.Duration

	AWSRegion   string
	S3Bucket    string
	S3PublicURL string
	SESEmail    string
	SNSFCMArn   string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		GinMode:       os.Getenv("GIN_MODE"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		DBDriver:      getenv("DB_DRIVER", "postgres"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		SQLitePath:    getenv("SQLITE_PATH", "mealplanner.db"),
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		MealDBBaseURL: getenv("MEALDB_BASE_URL", "https://www.themealdb.com/api/json/v1/1"),
		AWSRegion:     os.Getenv("AWS_REGION"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3PublicURL:   os.Getenv("S3_PUBLIC_URL"),
		SESEmail:      os.Getenv("SES_EMAIL"),
		SNSFCMArn:     os.Getenv("SNS_FCM_ARN"),
	}

	ttlHours, err := strconv.Atoi(getenv("JWT_TTL_HOURS", "72"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_HOURS %q", os.Getenv("JWT_TTL_HOURS"))
	}
	cfg.JWTTTL = time.Duration(ttlHours) * time.Hour

	timeout, err := strconv.Atoi(getenv("MEALDB_TIMEOUT_SECONDS", "10"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid MEALDB_TIMEOUT_SECONDS %q", os.Getenv("MEALDB_TIMEOUT_SECONDS"))
	}
	cfg.MealDBTimeout = time.Duration(timeout) * time.Second

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN is the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// OpenDB connects to the configured database without migrating it.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RevokedToken{},
		&models.SavedMeal{},
		&models.Todo{},
		&models.FavoriteMeal{},
		&models.UserDevice{},
	)
	if err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// InitDB opens and migrates the database.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
