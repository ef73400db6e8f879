package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ============================================================
// Users
// ============================================================

// Role is the privilege level of a user. The ordering
// user < admin < root is total.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleRoot  Role = "root"
)

// Level maps a role onto the privilege ordering. Unknown roles rank
// below everything.
func (r Role) Level() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleRoot:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r carries at least the privilege of min
func (r Role) AtLeast(min Role) bool {
	return r.Level() > 0 && r.Level() >= min.Level()
}

// ParseRole validates a role string
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleRoot:
		return Role(s), true
	}
	return "", false
}

// User represents the users collection
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	Verified     bool               `bson:"verified" json:"verified"`
	Disabled     bool               `bson:"disabled" json:"disabled"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Normalize applies defaults for fields older records may lack.
// This is the only place store-level defaulting happens.
func (u *User) Normalize() {
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// UserResponse DTO - password hash is never part of the projection
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"verified"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		Verified:  u.Verified,
		Disabled:  u.Disabled,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Resources
// ============================================================

// ResourceStatus is the moderation lifecycle state of a resource
type ResourceStatus string

const (
	StatusPending  ResourceStatus = "pending"
	StatusApproved ResourceStatus = "approved"
	StatusRejected ResourceStatus = "rejected"
)

// ParseStatus validates a status string
func ParseStatus(s string) (ResourceStatus, bool) {
	switch ResourceStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return ResourceStatus(s), true
	}
	return "", false
}

// Resource represents the resources collection
type Resource struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Category        string             `bson:"category" json:"category"`
	Description     string             `bson:"description" json:"description"`
	OfferedBy       string             `bson:"offered_by" json:"offered_by"`
	Location        string             `bson:"location,omitempty" json:"location,omitempty"`
	Link            string             `bson:"link,omitempty" json:"link,omitempty"`
	Status          ResourceStatus     `bson:"status" json:"status"`
	SuggestedBy     string             `bson:"suggested_by,omitempty" json:"suggested_by,omitempty"`
	SuggestedAt     *time.Time         `bson:"suggested_at,omitempty" json:"suggested_at,omitempty"`
	ReviewedBy      string             `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time         `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	RejectionReason string             `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
}

// Normalize applies defaults for fields older records may lack
func (r *Resource) Normalize() {
	if r.Status == "" {
		r.Status = StatusPending
	}
}

// ResourceUpdate is a partial field merge for admin edits. Nil fields
// are left untouched; the identity is never part of the patch.
type ResourceUpdate struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	OfferedBy   *string `json:"offered_by"`
	Location    *string `json:"location"`
	Link        *string `json:"link"`
}

// IsEmpty reports whether the patch touches nothing
func (u *ResourceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Description == nil &&
		u.OfferedBy == nil && u.Location == nil && u.Link == nil
}
