package services

import (
	"context"
	"errors"
	"log"

	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/adapters/persistence/repositories"
	"yorkhub/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService handles account administration (root only at the boundary)
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns all accounts with the password hash excluded from
// the projection
func (s *UserService) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

// UpdateRole sets a user's role. Root accounts are immutable once
// assigned; setting a role to its current value is an idempotent
// success.
func (s *UserService) UpdateRole(ctx context.Context, id, newRole string) error {
	role, ok := models.ParseRole(newRole)
	if !ok {
		return domain.ErrInvalidRole
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	target, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return err
	}

	if target.Role == models.RoleRoot {
		return domain.ErrRootImmutable
	}

	matched, err := s.userRepo.SetRole(ctx, oid, role)
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrNotFound
	}

	log.Printf("✅ Role of %s set to %s", target.Username, role)
	return nil
}
