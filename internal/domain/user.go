// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrUsernameAlreadyExists indicates the the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("Username already exists")
	// ErrEmailAlreadyExists indicates the the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("Email already exists")
	// ErrUserNotFound indicates the the user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("Wrong password")
)

// Role is the user role.
type Role string

// Supported roles.
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// UserStatus is the account status of a user.
type UserStatus string

// Supported user statuses.
const (
	UserActive    UserStatus = "Active"
	UserSuspended UserStatus = "Suspended"
)

// User holds platform account data. It never carries the password hash.
type User struct {
	ID            int64      `json:"id" db:"id"`
	FirstName     string     `json:"firstName" db:"first_name"`
	LastName      string     `json:"lastName" db:"last_name"`
	Email         string     `json:"email" db:"email"`
	Username      string     `json:"username" db:"username"`
	Role          Role       `json:"role" db:"role"`
	Status        UserStatus `json:"status" db:"status"`
	IsKycVerified bool       `json:"isKycVerified" db:"is_kyc_verified"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// UserWithPassword is User data plus the hashed password, used only to log in.
type UserWithPassword struct {
	User
	HashedPassword string `json:"-" db:"password"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	FirstName      string
	LastName       string
	Email          string
	Username       string
	HashedPassword string
	Role           Role
	Status         UserStatus
	IsKycVerified  bool
	CreatedAt      time.Time // zero means now
}

// Owner is the minimal projection of the user owning a transaction.
type Owner struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
}
