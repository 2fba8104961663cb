package hasard

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// Permission levels, ordered. Higher levels subsume lower ones for the
// RequirePermission guard.
const (
	PermStudent = 0
	PermTeacher = 1
	PermAdmin   = 2
)

// User represents an account able to authenticate against the API.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Perm     int    `json:"perm"`

	// Classes the user may act on. Students hold exactly one entry.
	Classes []Class `json:"classes"`

	// bcrypt hash, never serialized.
	PasswordHash []byte `json:"-"`
}

// SetPassword hashes pwd and stores the hash on the user.
func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether pwd matches the stored hash.
func (u *User) CheckPassword(pwd string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd)) == nil
}

// IsTeacher reports whether the user holds at least teacher permission.
func (u *User) IsTeacher() bool {
	return u.Perm >= PermTeacher
}

// UserService represents a service which manages user accounts.
type UserService interface {
	// FindUserByUsername returns the user with the provided username along
	// with its accessible classes. Returns ENOTFOUND if no such user exists.
	FindUserByUsername(ctx context.Context, username string) (*User, error)
}
