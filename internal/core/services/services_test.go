package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/config"
	"yorkhub/internal/core/domain"
	"yorkhub/internal/pkg/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ============================================================
// In-memory fakes shared by the service tests
// ============================================================

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	users := []*models.User{}
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}

func (r *fakeUserRepo) ListByMinRole(_ context.Context, min models.Role) ([]*models.User, error) {
	users := []*models.User{}
	for _, user := range r.users {
		if user.Role.AtLeast(min) {
			clone := *user
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, email string) (int64, error) {
	for _, user := range r.users {
		if user.Email == email {
			user.Verified = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeUserRepo) SetPasswordHash(_ context.Context, email, hash string) (int64, error) {
	for _, user := range r.users {
		if user.Email == email {
			user.PasswordHash = hash
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id primitive.ObjectID, role models.Role) (int64, error) {
	if user, ok := r.users[id]; ok {
		user.Role = role
		return 1, nil
	}
	return 0, nil
}

type fakeResourceRepo struct {
	resources map[primitive.ObjectID]*models.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{resources: map[primitive.ObjectID]*models.Resource{}}
}

func (r *fakeResourceRepo) Create(_ context.Context, resource *models.Resource) error {
	resource.ID = primitive.NewObjectID()
	clone := *resource
	r.resources[resource.ID] = &clone
	return nil
}

func (r *fakeResourceRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Resource, error) {
	if resource, ok := r.resources[id]; ok {
		clone := *resource
		return &clone, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeResourceRepo) List(_ context.Context, status models.ResourceStatus) ([]*models.Resource, error) {
	resources := []*models.Resource{}
	for _, resource := range r.resources {
		if status == "" || resource.Status == status {
			clone := *resource
			resources = append(resources, &clone)
		}
	}
	return resources, nil
}

func (r *fakeResourceRepo) SetReview(_ context.Context, id primitive.ObjectID, status models.ResourceStatus, reviewer string, at time.Time, reason string) (int64, error) {
	resource, ok := r.resources[id]
	if !ok {
		return 0, nil
	}
	resource.Status = status
	resource.ReviewedBy = reviewer
	resource.ReviewedAt = &at
	resource.RejectionReason = reason
	return 1, nil
}

func (r *fakeResourceRepo) UpdateFields(_ context.Context, id primitive.ObjectID, patch *models.ResourceUpdate) (int64, error) {
	resource, ok := r.resources[id]
	if !ok || patch.IsEmpty() {
		return 0, nil
	}
	if patch.Name != nil {
		resource.Name = *patch.Name
	}
	if patch.Category != nil {
		resource.Category = *patch.Category
	}
	if patch.Description != nil {
		resource.Description = *patch.Description
	}
	if patch.OfferedBy != nil {
		resource.OfferedBy = *patch.OfferedBy
	}
	if patch.Location != nil {
		resource.Location = *patch.Location
	}
	if patch.Link != nil {
		resource.Link = *patch.Link
	}
	return 1, nil
}

func (r *fakeResourceRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := r.resources[id]; !ok {
		return 0, nil
	}
	delete(r.resources, id)
	return 1, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(to, subject, body string, html bool) error {
	if m.fail {
		return fmt.Errorf("%w: dial tcp: connection refused", domain.ErrDeliveryFailure)
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body, HTML: html})
	return nil
}

// lastToken pulls the token query parameter out of the most recently
// mailed link
func (m *fakeMailer) lastToken() string {
	if len(m.sent) == 0 {
		return ""
	}
	body := m.sent[len(m.sent)-1].Body
	idx := strings.Index(body, "token=")
	if idx < 0 {
		return ""
	}
	rest := body[idx+len("token="):]
	if end := strings.Index(rest, `"`); end >= 0 {
		return rest[:end]
	}
	return rest
}

// ============================================================
// Shared test fixtures
// ============================================================

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		BaseURL: "http://localhost:5173",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			Issuer:           "yorkhub-test",
			SessionTokenMins: 30,
			ActionTokenMins:  60,
		},
		Email: config.EmailConfig{
			AllowedDomains: []string{"@yorku.ca", "@my.yorku.ca"},
		},
	}
}

func testCodec() *token.Codec {
	return token.NewCodec("test-secret", "yorkhub-test")
}

func testActor(username string, role models.Role) *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Email:    username + "@yorku.ca",
		Username: username,
		Role:     role,
		Verified: true,
	}
}
