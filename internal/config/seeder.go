package config

import (
	"context"
	"log"
	"time"

	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/pkg/password"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Seeder handles database seeding
type Seeder struct {
	db  *mongo.Database
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *mongo.Database, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedRootUser(ctx); err != nil {
		log.Printf("⚠️ Root seeder skipped: %v", err)
	}
	if err := s.seedSampleResources(ctx); err != nil {
		log.Printf("⚠️ Resource seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedRootUser creates the bootstrap root account from configuration.
// Root accounts cannot be created through the API; this is the only
// entry point.
func (s *Seeder) seedRootUser(ctx context.Context) error {
	root := s.cfg.Root
	if root.Email == "" || root.Username == "" || root.Password == "" {
		return nil // no bootstrap account configured
	}

	users := s.db.Collection("users")
	count, err := users.CountDocuments(ctx, bson.M{"role": models.RoleRoot})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // root already exists
	}

	hashed, err := password.Hash(root.Password)
	if err != nil {
		return err
	}

	_, err = users.InsertOne(ctx, &models.User{
		Email:        root.Email,
		Username:     root.Username,
		PasswordHash: hashed,
		Role:         models.RoleRoot,
		Verified:     true,
		Disabled:     false,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	log.Printf("🌱 Root account created: %s", root.Username)
	return nil
}

// seedSampleResources inserts a starter set of approved resources so a
// fresh install has something to browse
func (s *Seeder) seedSampleResources(ctx context.Context) error {
	resources := s.db.Collection("resources")
	count, err := resources.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // already populated
	}

	samples := []interface{}{
		&models.Resource{
			Name:        "Academic Counseling",
			Category:    "ACADEMIC",
			Description: "Get help with academic planning and advice.",
			OfferedBy:   "University Academic Services",
			Location:    "Building A, Room 101",
			Link:        "http://example.com/academic-counseling",
			Status:      models.StatusApproved,
		},
		&models.Resource{
			Name:        "Health Center",
			Category:    "HEALTH",
			Description: "Access to health and wellness resources.",
			OfferedBy:   "University Health Center",
			Location:    "Building B, Room 202",
			Link:        "http://example.com/health-center",
			Status:      models.StatusApproved,
		},
		&models.Resource{
			Name:        "Administrative Office",
			Category:    "ADMINISTRATIVE",
			Description: "Assistance with administrative tasks.",
			OfferedBy:   "University Administration",
			Location:    "Building C, Room 303",
			Link:        "http://example.com/administrative-office",
			Status:      models.StatusApproved,
		},
		&models.Resource{
			Name:        "Student Life Services",
			Category:    "STUDENT LIFE",
			Description: "Support for student activities and engagement.",
			OfferedBy:   "Student Affairs",
			Location:    "Building D, Room 404",
			Status:      models.StatusApproved,
		},
	}

	result, err := resources.InsertMany(ctx, samples)
	if err != nil {
		return err
	}

	log.Printf("🌱 Inserted %d sample resources", len(result.InsertedIDs))
	return nil
}
