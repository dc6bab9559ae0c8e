// Seeds the initial dashboard admin accounts. Safe to run repeatedly.
package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"parlour.service/internal/config"
	"parlour.service/internal/core/model"
	"parlour.service/internal/ports/repository"
	"parlour.service/pkg/database"
	"parlour.service/pkg/logger"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     model.Role
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}
	logger.Setup(cfg.IsLocalDev)

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL()); err != nil {
		log.Fatal().Err(err).Msg("Could not run database migrations")
	}

	users := []seedUser{
		{name: "Super Admin", email: "superadmin@parlour.com", password: "superadmin123", role: model.RoleSuperAdmin},
		{name: "Admin", email: "admin@parlour.com", password: "admin123", role: model.RoleAdmin},
	}

	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	for _, u := range users {
		existing, err := repo.GetByEmail(ctx, u.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("Lookup failed")
		}
		if existing != nil {
			log.Info().Str("email", u.email).Msg("User already exists")
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("Hashing failed")
		}

		err = repo.Create(ctx, &model.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
		})
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("Create failed")
		}
		log.Info().Str("email", u.email).Msg("Created user")
	}
}
