// Command seed registers the demo account in the users table so the
// configured demo credentials work against the REST backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/shoptodo/shoptodo-backend/internal/auth"
	"github.com/shoptodo/shoptodo-backend/pkg/config"
	"github.com/shoptodo/shoptodo-backend/pkg/db"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"github.com/shoptodo/shoptodo-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	if err := seed(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	svc, err := auth.NewRegisterService(auth.RegisterServiceParams{DB: dbClient, PasswordConfig: cfg.Password})
	if err != nil {
		return err
	}

	user, err := svc.Register(ctx, auth.RegisterRequest{
		Username: cfg.Demo.Username,
		Password: cfg.Demo.Password,
	})
	switch {
	case pkgerrors.HasCode(err, pkgerrors.CodeConflict):
		logg.Info(logg.WithUsername(ctx, cfg.Demo.Username), "demo user already present")
		return nil
	case err != nil:
		return fmt.Errorf("register demo user: %w", err)
	}
	logg.Info(logg.WithUsername(ctx, user.Username), "demo user created")
	return nil
}
