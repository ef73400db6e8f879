package repositories

import (
	"context"
	"time"

	"yorkhub/internal/adapters/persistence/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// resourceRepository implements ResourceRepository interface
type resourceRepository struct {
	col *mongo.Collection
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *mongo.Database) ResourceRepository {
	return &resourceRepository{col: db.Collection("resources")}
}

// Create inserts a new resource and assigns the generated ID
func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	result, err := r.col.InsertOne(ctx, resource)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		resource.ID = oid
	}
	return nil
}

// GetByID gets a resource by ID
func (r *resourceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	var resource models.Resource
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&resource); err != nil {
		return nil, err
	}
	resource.Normalize()
	return &resource, nil
}

// List returns resources matching status; empty status matches all
func (r *resourceRepository) List(ctx context.Context, status models.ResourceStatus) ([]*models.Resource, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	resources := []*models.Resource{}
	for cursor.Next(ctx) {
		var resource models.Resource
		if err := cursor.Decode(&resource); err != nil {
			return nil, err
		}
		resource.Normalize()
		resources = append(resources, &resource)
	}
	return resources, cursor.Err()
}

// SetReview records a review decision. reviewed_by and reviewed_at are
// overwritten on every call; rejection_reason is cleared unless a
// reason is supplied.
func (r *resourceRepository) SetReview(ctx context.Context, id primitive.ObjectID, status models.ResourceStatus, reviewer string, at time.Time, reason string) (int64, error) {
	set := bson.M{
		"status":      status,
		"reviewed_by": reviewer,
		"reviewed_at": at,
	}
	update := bson.M{"$set": set}
	if reason != "" {
		set["rejection_reason"] = reason
	} else {
		update["$unset"] = bson.M{"rejection_reason": ""}
	}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// UpdateFields applies a partial field merge; the identity is never
// part of the patch
func (r *resourceRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, patch *models.ResourceUpdate) (int64, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.OfferedBy != nil {
		set["offered_by"] = *patch.OfferedBy
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Link != nil {
		set["link"] = *patch.Link
	}
	if len(set) == 0 {
		return 0, nil
	}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// Delete removes a resource
func (r *resourceRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
