package model

import "time"

// Staff roles carried in the JWT "role" claim.  ADMIN may additionally
// delete rooms/guests and write settings; STAFF covers day-to-day
// reception work.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User is a staff account used to authenticate against the mutating
// part of the API.  Passwords are stored as bcrypt hashes.  The json
// tags are omitted because handlers expose their own response types.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
