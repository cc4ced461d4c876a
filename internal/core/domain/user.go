package domain

import (
	"errors"
	"time"
)

const (
	RoleMember    = "member"
	RoleOrganizer = "organizer"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered participant. Users are soft-deleted only;
// referential checks treat a soft-deleted user as absent.
type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	DisplayName  string     `json:"display_name" bson:"display_name"`
	Email        string     `json:"email,omitempty" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	RoleTag      string     `json:"role_tag" bson:"role_tag"`
	Role         string     `json:"role" bson:"role"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt    *time.Time `json:"-" bson:"deleted_at,omitempty"`
}
