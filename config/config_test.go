package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("MEALDB_TIMEOUT_SECONDS", "")
	t.Setenv("MEALDB_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Second, cfg.MealDBTimeout)
	assert.Equal(t, "https://www.themealdb.com/api/json/v1/1", cfg.MealDBBaseURL)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET not set")

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_HOURS", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "meal", DBPassword: "pw", DBName: "plans", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=meal password=pw dbname=plans port=5432 sslmode=disable", cfg.DSN())
}

func TestInitDBSQLite(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "dev.db")}
	db, err := InitDB(cfg)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("saved_meals"))
	assert.True(t, db.Migrator().HasTable("favorite_meals"))

	_, err = OpenDB(&Config{DBDriver: "mysql"})
	assert.Error(t, err)
}
