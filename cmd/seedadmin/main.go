// Command seedadmin creates an admin account or resets its password.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/labfetch/labfetch-api/internal/repository"
	"github.com/labfetch/labfetch-api/internal/repository/postgres"
	"github.com/labfetch/labfetch-api/pkg/logger"
	"github.com/labfetch/labfetch-api/pkg/security"
)

type seedConfig struct {
	Username    string `envconfig:"SEED_USERNAME" required:"true"`
	Password    string `envconfig:"SEED_PASSWORD" required:"true"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	BcryptCost  int    `envconfig:"SEED_BCRYPT_COST" default:"10"`
	Migrate     bool   `envconfig:"SEED_MIGRATE" default:"true"`
}

func main() {
	l := logger.New(logger.Config{Level: "info", Format: "console", Service: "seedadmin"})

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		l.Fatal().Err(err).Msg("failed to read .env")
	}

	var cfg seedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		l.Fatal().Err(err).Msg("invalid environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, cfg, l); err != nil {
		l.Fatal().Err(err).Msg("seeding admin failed")
	}
}

func seed(ctx context.Context, cfg seedConfig, l zerolog.Logger) error {
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(cfg.Password)
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(ctx, postgres.Config{URL: cfg.DatabaseURL, MaxOpenConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Migrate {
		if err := postgres.Migrate(db.DB); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return upsertAdmin(ctx, postgres.NewAdminRepository(postgres.NewBaseRepository(db, nil)), cfg.Username, hash, l)
}

func upsertAdmin(ctx context.Context, admins repository.AdminRepository, username, hash string, l zerolog.Logger) error {
	admin, err := admins.Upsert(ctx, username, hash)
	if err != nil {
		return err
	}
	l.Info().Int64("admin_id", admin.ID).Str("username", admin.Username).Msg("admin ready")
	return nil
}
