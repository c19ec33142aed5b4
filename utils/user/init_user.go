// Command init_user creates a web viewer account, or resets the password of
// an existing one.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/enzococca/pyarchinit-webapp/src/config"
	"github.com/enzococca/pyarchinit-webapp/src/db"
	"github.com/enzococca/pyarchinit-webapp/src/logging"
	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/enzococca/pyarchinit-webapp/src/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	username := pflag.StringP("username", "u", "admin", "account name")
	password := pflag.StringP("password", "p", "", "account password (required)")
	email := pflag.String("email", "", "contact email")
	fullName := pflag.String("full-name", "", "display name")
	role := pflag.String("role", models.RoleAdmin, "role: admin or user")
	pflag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "--password is required")
		pflag.Usage()
		os.Exit(2)
	}
	if *role != models.RoleAdmin && *role != models.RoleUser {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.LogLevel, "console")

	database, err := db.Connect(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate user model")
	}

	ctx := context.Background()
	users := services.NewUserService(database, cfg.SecretKey, cfg.TokenTTL())

	req := models.CreateUserRequest{Username: *username, Password: *password, Role: *role}
	if *email != "" {
		req.Email = email
	}
	if *fullName != "" {
		req.FullName = fullName
	}

	if _, err := users.CreateUser(ctx, req); err != nil {
		if !errors.Is(err, services.ErrUsernameTaken) {
			log.Fatal().Err(err).Msg("failed to create user")
		}
		if _, err := users.SetPassword(ctx, *username, *password, *role); err != nil {
			log.Fatal().Err(err).Msg("failed to update user")
		}
		log.Info().Str("username", *username).Msg("user updated")
		return
	}
	log.Info().Str("username", *username).Str("role", *role).Msg("user created")
}
