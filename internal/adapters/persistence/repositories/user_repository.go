package repositories

import (
	"context"

	"yorkhub/internal/adapters/persistence/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// userRepository implements UserRepository interface
type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection("users")}
}

// Create inserts a new user and assigns the generated ID
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	result, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	user.Normalize()
	return &user, nil
}

// ExistsByUsername checks if username exists
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"username": username})
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email})
	return count > 0, err
}

// List lists all users
func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.findMany(ctx, bson.M{})
}

// ListByMinRole lists users whose role is at least min
func (r *userRepository) ListByMinRole(ctx context.Context, min models.Role) ([]*models.User, error) {
	roles := []models.Role{}
	for _, role := range []models.Role{models.RoleUser, models.RoleAdmin, models.RoleRoot} {
		if role.AtLeast(min) {
			roles = append(roles, role)
		}
	}
	return r.findMany(ctx, bson.M{"role": bson.M{"$in": roles}})
}

func (r *userRepository) findMany(ctx context.Context, filter bson.M) ([]*models.User, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*models.User{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		user.Normalize()
		users = append(users, &user)
	}
	return users, cursor.Err()
}

// SetVerified marks the account verified; repeat calls are harmless
func (r *userRepository) SetVerified(ctx context.Context, email string) (int64, error) {
	result, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"verified": true}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// SetPasswordHash replaces the stored password hash
func (r *userRepository) SetPasswordHash(ctx context.Context, email, hash string) (int64, error) {
	result, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password_hash": hash}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// SetRole sets the role unconditionally
func (r *userRepository) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) (int64, error) {
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}
