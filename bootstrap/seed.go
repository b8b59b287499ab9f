package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/amitshekhariitbhu/go-auth-admin/domain/domain_auth"
	"github.com/amitshekhariitbhu/go-auth-admin/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// SeedAdmin creates the first admin from SEED_EMAIL/SEED_PASSWORD when the user
// collection is empty. It is a no-op when either value is unset.
func SeedAdmin(ctx context.Context, repo domain_auth.UserRepository, env *Env, log *zap.Logger) error {
	email := strings.TrimSpace(env.SeedEmail)
	if email == "" || env.SeedPassword == "" {
		return nil
	}

	count, err := repo.Count(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		log.Debug("Users exist, skipping admin seed", zap.Int64("count", count))
		return nil
	}

	hash, err := usecase.HashPassword(env.SeedPassword)
	if err != nil {
		return err
	}
	admin := &domain_auth.User{
		FirstName: "Admin",
		LastName:  "User",
		Email:     email,
		Password:  hash,
		Role:      domain_auth.RoleAdmin,
		Status:    domain_auth.StatusActive,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Info("Seeded initial admin", zap.String("email", email))
	return nil
}
