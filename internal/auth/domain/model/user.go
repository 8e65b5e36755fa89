package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account state errors surfaced by the auth usecase.
var (
	ErrUserExists       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrAccountLocked    = errors.New("account is locked")
	ErrAccountInactive  = errors.New("account is not verified")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUsernameInvalid  = errors.New("username is invalid")
	ErrUsernameReserved = errors.New("username is reserved")
)

// usernameRegex limits usernames to lowercase letters, digits, underscore and
// hyphen, at most 12 characters.
var (
	usernameRegex   = regexp.MustCompile(`^[a-z0-9_-]{1,12}$`)
	digitsOnlyRegex = regexp.MustCompile(`^[0-9]+$`)
)

// User represents an account in the system.
type User struct {
	ID             string             `json:"id" bson:"-"`
	ObjectID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Email          string             `json:"email" bson:"email"`
	Username       string             `json:"username" bson:"username"`
	HashedPassword string             `json:"-" bson:"hashed_password"`
	AvatarFilename string             `json:"avatar_filename,omitempty" bson:"avatar_filename,omitempty"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
	IsVerified     bool               `json:"is_verified" bson:"is_verified"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// NormalizeUsername lowercases and trims a candidate username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks a normalized username against the naming rules.
// All-digit usernames are reserved so they can never shadow numeric routes.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrUsernameInvalid
	}
	if digitsOnlyRegex.MatchString(username) {
		return ErrUsernameInvalid
	}
	return nil
}

// InitialUsername derives the placeholder username assigned at registration
// from the tail of the user's ID, which carries the random and counter bytes.
// Users are expected to pick a real one afterwards.
func InitialUsername(userID string) string {
	if len(userID) > 12 {
		return userID[len(userID)-12:]
	}
	return userID
}
