package services

import (
	"context"
	"testing"

	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleInput(name string) *ResourceInput {
	return &ResourceInput{
		Name:        name,
		Category:    "Academic",
		Description: "Drop-in tutoring for first-year calculus",
		OfferedBy:   "Bethune College",
		Location:    "Keele Campus",
		Link:        "https://example.yorku.ca/tutoring",
	}
}

func TestSuggestForcesPending(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo())
	actor := testActor("alice", models.RoleUser)

	resource, err := svc.Suggest(context.Background(), actor, sampleInput("Calc Tutoring"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, resource.Status)
	assert.Equal(t, "alice", resource.SuggestedBy)
	require.NotNil(t, resource.SuggestedAt)
	assert.Empty(t, resource.ReviewedBy)
	assert.Nil(t, resource.ReviewedAt)
	assert.Empty(t, resource.RejectionReason)
}

func TestReviewApprove(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := NewResourceService(repo)
	ctx := context.Background()

	suggested, err := svc.Suggest(ctx, testActor("alice", models.RoleUser), sampleInput("Calc Tutoring"))
	require.NoError(t, err)

	admin := testActor("mod", models.RoleAdmin)
	reviewed, err := svc.Review(ctx, admin, suggested.ID.Hex(), "approved", "")
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, reviewed.Status)
	assert.Equal(t, "mod", reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, "alice", reviewed.SuggestedBy)
}

func TestReviewRejectCarriesReason(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := NewResourceService(repo)
	ctx := context.Background()

	suggested, err := svc.Suggest(ctx, testActor("alice", models.RoleUser), sampleInput("Calc Tutoring"))
	require.NoError(t, err)

	admin := testActor("mod", models.RoleAdmin)
	reviewed, err := svc.Review(ctx, admin, suggested.ID.Hex(), "rejected", "duplicate of an existing listing")
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, reviewed.Status)
	assert.Equal(t, "duplicate of an existing listing", reviewed.RejectionReason)
}

func TestReviewInvalidTargets(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo())
	ctx := context.Background()
	admin := testActor("mod", models.RoleAdmin)

	suggested, err := svc.Suggest(ctx, testActor("alice", models.RoleUser), sampleInput("Calc Tutoring"))
	require.NoError(t, err)

	// pending is never a valid review target, nor is an unknown status
	_, err = svc.Review(ctx, admin, suggested.ID.Hex(), "pending", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = svc.Review(ctx, admin, suggested.ID.Hex(), "archived", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Review(ctx, admin, primitive.NewObjectID().Hex(), "approved", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Review(ctx, admin, "not-a-hex-id", "approved", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReReviewOverwritesDecision(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo())
	ctx := context.Background()

	suggested, err := svc.Suggest(ctx, testActor("alice", models.RoleUser), sampleInput("Calc Tutoring"))
	require.NoError(t, err)
	id := suggested.ID.Hex()

	first := testActor("mod1", models.RoleAdmin)
	_, err = svc.Review(ctx, first, id, "approved", "")
	require.NoError(t, err)

	second := testActor("mod2", models.RoleAdmin)
	reviewed, err := svc.Review(ctx, second, id, "rejected", "out of date")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, reviewed.Status)
	assert.Equal(t, "mod2", reviewed.ReviewedBy)
	assert.Equal(t, "out of date", reviewed.RejectionReason)

	// Re-approving clears the stale rejection reason
	reviewed, err = svc.Review(ctx, first, id, "approved", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, reviewed.Status)
	assert.Equal(t, "mod1", reviewed.ReviewedBy)
	assert.Empty(t, reviewed.RejectionReason)
}

func TestAdminCreateBornApproved(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo())
	admin := testActor("mod", models.RoleAdmin)

	resource, err := svc.AdminCreate(context.Background(), admin, sampleInput("Health Center"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, resource.Status)
	assert.Equal(t, "mod", resource.SuggestedBy)
	assert.Equal(t, "mod", resource.ReviewedBy)
	assert.NotNil(t, resource.ReviewedAt)
}

func TestAdminUpdate(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo())
	ctx := context.Background()
	admin := testActor("mod", models.RoleAdmin)

	resource, err := svc.AdminCreate(ctx, admin, sampleInput("Health Center"))
	require.NoError(t, err)

	name := "Health and Wellness Center"
	location := "Glendon Campus"
	updated, err := svc.AdminUpdate(ctx, admin, resource.ID.Hex(), &models.ResourceUpdate{
		Name:     &name,
		Location: &location,
	})
	require.NoError(t, err)
	assert.Equal(t, "Health and Wellness Center", updated.Name)
	assert.Equal(t, "Glendon Campus", updated.Location)
	assert.Equal(t, resource.Category, updated.Category)

	// An empty patch and a missing target both fail as not found
	_, err = svc.AdminUpdate(ctx, admin, resource.ID.Hex(), &models.ResourceUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.AdminUpdate(ctx, admin, primitive.NewObjectID().Hex(), &models.ResourceUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminDelete(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := NewResourceService(repo)
	ctx := context.Background()
	admin := testActor("mod", models.RoleAdmin)

	resource, err := svc.AdminCreate(ctx, admin, sampleInput("Health Center"))
	require.NoError(t, err)

	require.NoError(t, svc.AdminDelete(ctx, admin, resource.ID.Hex()))
	assert.ErrorIs(t, svc.AdminDelete(ctx, admin, resource.ID.Hex()), domain.ErrNotFound)
	assert.ErrorIs(t, svc.AdminDelete(ctx, admin, "not-a-hex-id"), domain.ErrNotFound)
}

func TestListVisibility(t *testing.T) {
	svc := NewResourceService(newFakeResourceRepo())
	ctx := context.Background()
	admin := testActor("mod", models.RoleAdmin)
	alice := testActor("alice", models.RoleUser)

	approved, err := svc.AdminCreate(ctx, admin, sampleInput("Health Center"))
	require.NoError(t, err)
	pending, err := svc.Suggest(ctx, alice, sampleInput("Calc Tutoring"))
	require.NoError(t, err)
	rejectable, err := svc.Suggest(ctx, alice, sampleInput("Midnight Karaoke"))
	require.NoError(t, err)
	_, err = svc.Review(ctx, admin, rejectable.ID.Hex(), "rejected", "not a campus service")
	require.NoError(t, err)

	// Anonymous callers see approved only
	listed, err := svc.List(ctx, nil, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, approved.ID, listed[0].ID)

	// Regular users see approved only, even when they ask for pending
	listed, err = svc.List(ctx, alice, "pending")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, models.StatusApproved, listed[0].Status)

	// Admins with no filter see everything
	listed, err = svc.List(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	// Admins with a filter get exactly that slice
	listed, err = svc.List(ctx, admin, "pending")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, pending.ID, listed[0].ID)

	// A bogus admin filter is an error, not an empty list
	_, err = svc.List(ctx, admin, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// Root shares the admin view
	listed, err = svc.List(ctx, testActor("boss", models.RoleRoot), "")
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}
