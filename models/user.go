package models

import "time"

// User represents an account of the trip log.
// The password hash never leaves the server.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique sign-in identifier.
	Email string `json:"email" validate:"required,email,max=254"`

	// Name is the display name of the user.
	Name string `json:"name" validate:"max=100"`

	// Password is the plaintext password. It is only ever set on sign-up,
	// sign-in and password change requests and is cleared before the user
	// is stored or returned.
	Password string `json:"password,omitempty"`

	// PasswordHash is the argon2id encoded hash stored by the server.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of u that is safe to serialize to clients.
func (u User) Public() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}

// UserUpdate is a partial update of the signed-in user.
type UserUpdate struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
}

// IsEmpty reports whether the update carries no field at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Name == nil && u.Password == nil
}
