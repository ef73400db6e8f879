package services

import (
	"context"
	"errors"
	"log"
	"time"

	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/adapters/persistence/repositories"
	"yorkhub/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ResourceService is the moderation engine for the resource lifecycle:
// pending -> approved|rejected, with admin re-review in both
// directions. It receives already-resolved identities; it never talks
// to the authenticator.
type ResourceService struct {
	resourceRepo repositories.ResourceRepository
}

// NewResourceService creates a new resource service
func NewResourceService(resourceRepo repositories.ResourceRepository) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo}
}

// ResourceInput represents the caller-supplied descriptive fields.
// Status and review fields deliberately have no place here; the engine
// decides them.
type ResourceInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	OfferedBy   string `json:"offered_by"`
	Location    string `json:"location"`
	Link        string `json:"link"`
}

// Suggest files a resource suggestion. Status is forced to pending and
// provenance is stamped from the acting identity, whatever the caller
// supplied.
func (s *ResourceService) Suggest(ctx context.Context, actor *models.User, input *ResourceInput) (*models.Resource, error) {
	now := time.Now().UTC()
	resource := &models.Resource{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		OfferedBy:   input.OfferedBy,
		Location:    input.Location,
		Link:        input.Link,
		Status:      models.StatusPending,
		SuggestedBy: actor.Username,
		SuggestedAt: &now,
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}

	log.Printf("📥 Resource suggested by %s: %s", actor.Username, resource.Name)
	return resource, nil
}

// Review records a moderation decision. Only approved and rejected are
// valid targets; reviewed_by/reviewed_at are overwritten on every
// call, including re-reviews that reverse an earlier decision.
func (s *ResourceService) Review(ctx context.Context, actor *models.User, id, newStatus, reason string) (*models.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	status, ok := models.ParseStatus(newStatus)
	if !ok || status == models.StatusPending {
		return nil, domain.ErrInvalidTransition
	}

	if status != models.StatusRejected {
		reason = "" // a reason only accompanies a rejection
	}

	matched, err := s.resourceRepo.SetReview(ctx, oid, status, actor.Username, time.Now().UTC(), reason)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrNotFound
	}

	log.Printf("⚖️ Resource %s %s by %s", id, status, actor.Username)
	return s.getByID(ctx, oid)
}

// AdminCreate creates a resource that skips moderation: it is born
// approved with the acting identity as both suggester and reviewer.
func (s *ResourceService) AdminCreate(ctx context.Context, actor *models.User, input *ResourceInput) (*models.Resource, error) {
	now := time.Now().UTC()
	resource := &models.Resource{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		OfferedBy:   input.OfferedBy,
		Location:    input.Location,
		Link:        input.Link,
		Status:      models.StatusApproved,
		SuggestedBy: actor.Username,
		SuggestedAt: &now,
		ReviewedBy:  actor.Username,
		ReviewedAt:  &now,
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}

	log.Printf("✅ Resource created by %s: %s", actor.Username, resource.Name)
	return resource, nil
}

// AdminUpdate applies a partial field merge. An empty patch or a
// missing target both fail as not found.
func (s *ResourceService) AdminUpdate(ctx context.Context, actor *models.User, id string, patch *models.ResourceUpdate) (*models.Resource, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if patch.IsEmpty() {
		return nil, domain.ErrNotFound
	}

	matched, err := s.resourceRepo.UpdateFields(ctx, oid, patch)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrNotFound
	}

	log.Printf("✏️ Resource %s updated by %s", id, actor.Username)
	return s.getByID(ctx, oid)
}

// AdminDelete removes a resource
func (s *ResourceService) AdminDelete(ctx context.Context, actor *models.User, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	deleted, err := s.resourceRepo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}

	log.Printf("🗑️ Resource %s deleted by %s", id, actor.Username)
	return nil
}

// List applies the visibility rule: anyone below admin sees only
// approved resources no matter what filter they ask for; admins get
// the filter they request, or everything when no filter is given.
func (s *ResourceService) List(ctx context.Context, actor *models.User, statusFilter string) ([]*models.Resource, error) {
	if actor == nil || !actor.Role.AtLeast(models.RoleAdmin) {
		return s.resourceRepo.List(ctx, models.StatusApproved)
	}

	if statusFilter == "" {
		return s.resourceRepo.List(ctx, "")
	}

	status, ok := models.ParseStatus(statusFilter)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	return s.resourceRepo.List(ctx, status)
}

func (s *ResourceService) getByID(ctx context.Context, oid primitive.ObjectID) (*models.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return resource, nil
}
