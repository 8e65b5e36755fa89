package model

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenPurpose distinguishes verification tokens from password reset tokens.
type TokenPurpose string

const (
	TokenPurposeVerify TokenPurpose = "verify"
	TokenPurposeReset  TokenPurpose = "reset"
)

var (
	ErrTokenNotFound = errors.New("email token not found")
	ErrTokenExpired  = errors.New("email token expired")
	ErrTokenUsed     = errors.New("email token already used")
	ErrTooManyTokens = errors.New("too many token requests")
)

// EmailToken is a single-use token mailed to a user for email verification or
// password reset.
type EmailToken struct {
	ID        string             `json:"id" bson:"-"`
	ObjectID  primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Purpose   TokenPurpose       `json:"purpose" bson:"purpose"`
	Token     string             `json:"-" bson:"token"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
	UsedAt    *time.Time         `json:"used_at,omitempty" bson:"used_at,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Usable reports whether the token can still be consumed at the given time.
func (t *EmailToken) Usable(now time.Time) error {
	if t.UsedAt != nil {
		return ErrTokenUsed
	}
	if now.After(t.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}
