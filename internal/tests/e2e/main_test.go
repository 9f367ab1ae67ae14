//go:build e2e

package e2e

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"sequoiacare/cmd/bootstrap"
	"sequoiacare/config"
	"sequoiacare/internal/infrastructure/database"
	"sequoiacare/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Port: "0", Env: "test", LogLevel: "warn"},
		DB: config.DBConfig{
			Host:     envOr("E2E_DB_HOST", "localhost"),
			Port:     envOr("E2E_DB_PORT", "5432"),
			User:     envOr("E2E_DB_USER", "postgres"),
			Password: envOr("E2E_DB_PASSWORD", "postgres"),
			Name:     envOr("E2E_DB_NAME", "sequoiacare_test"),
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		JWT: config.JWTConfig{
			Secret:        "e2e-secret",
			AccessExpiry:  30 * time.Minute,
			DefaultExpiry: 15 * time.Minute,
		},
		Bcrypt: config.BcryptConfig{Cost: 4},
	}
}

type env struct {
	server *httptest.Server
	db     *gorm.DB
	cfg    *config.Config
	log    *logrus.Logger
}

func setup(t *testing.T) *env {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := testConfig()

	require.NoError(t, database.MigrateUp(cfg.DB, log))

	db, err := database.NewPostgresConnection(cfg.DB, log, false)
	require.NoError(t, err)

	require.NoError(t, db.Exec(`TRUNCATE audit_logs, provider_idioma, provider_subespecialidade,
		providers, idiomas, subespecialidades, users RESTART IDENTITY CASCADE`).Error)

	handler := bootstrap.NewHTTPHandler(cfg, db, service.NewMemoryTokenStore(), log)
	srv := httptest.NewServer(handler)

	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &env{server: srv, db: db, cfg: cfg, log: log}
}

func (e *env) client() *http.Client {
	return e.server.Client()
}
