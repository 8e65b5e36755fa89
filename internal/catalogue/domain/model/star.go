package model

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrCannotStarOwn = errors.New("cannot star your own content")

// StarTargetType distinguishes collection stars from item stars.
type StarTargetType string

const (
	StarTargetCollection StarTargetType = "collection"
	StarTargetItem       StarTargetType = "item"
)

// Star records one user starring one target. Unique per (user, target).
// OwnerID denormalizes the target's owner so earned-star totals and the
// leaderboard aggregate without joining collections and items.
type Star struct {
	ID         string             `json:"id" bson:"-"`
	ObjectID   primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UserID     string             `json:"user_id" bson:"user_id"`
	OwnerID    string             `json:"owner_id" bson:"owner_id"`
	TargetType StarTargetType     `json:"target_type" bson:"target_type"`
	TargetID   string             `json:"target_id" bson:"target_id"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// StarState is what the star endpoints respond with.
type StarState struct {
	Starred   bool  `json:"starred"`
	StarCount int64 `json:"star_count"`
}
