package model

import "time"

// Roles a user can hold.  The role is fixed when the account is created.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a student or administrator as stored in the `users`
// table.  The json tags are omitted because these structs are used
// internally by the repository and template layers.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Name         – display name.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hashed password.
//	Hostel       – residence building the user lives in.
//	RoomNo       – room inside the hostel.
//	Role         – student or admin.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Hostel       string    // users.hostel
	RoomNo       string    // users.room_no
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
