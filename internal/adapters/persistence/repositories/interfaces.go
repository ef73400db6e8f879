package repositories

import (
	"context"
	"time"

	"yorkhub/internal/adapters/persistence/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines user data access operations. Write methods
// that target a predicate report the matched count so callers can map
// zero matched to not-found instead of silent success.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByMinRole(ctx context.Context, min models.Role) ([]*models.User, error)
	SetVerified(ctx context.Context, email string) (int64, error)
	SetPasswordHash(ctx context.Context, email, hash string) (int64, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (int64, error)
}

// ResourceRepository defines resource data access operations
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error)
	// List returns resources matching status; empty status matches all
	List(ctx context.Context, status models.ResourceStatus) ([]*models.Resource, error)
	// SetReview records a review decision. An empty reason clears any
	// previously stored rejection reason.
	SetReview(ctx context.Context, id primitive.ObjectID, status models.ResourceStatus, reviewer string, at time.Time, reason string) (int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, patch *models.ResourceUpdate) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}
