package model

import "time"

// Activity verbs.
const (
	VerbCreatedCollection = "created_collection"
	VerbDeletedCollection = "deleted_collection"
	VerbCreatedItem       = "created_item"
	VerbUpdatedItem       = "updated_item"
	VerbDeletedItem       = "deleted_item"
	VerbCapturedItem      = "captured_item"
	VerbStarredCollection = "starred_collection"
	VerbStarredItem       = "starred_item"
	VerbCreatedTemplate   = "created_template"
	VerbDeletedTemplate   = "deleted_template"
)

// ActivityEntry is one row of a user's activity feed. Feeds are capped at the
// newest 100 entries per user.
type ActivityEntry struct {
	ID            string    `json:"id"`
	ActorID       string    `json:"actor_id"`
	ActorUsername string    `json:"actor_username,omitempty"`
	Verb          string    `json:"verb"`
	TargetType    string    `json:"target_type"`
	TargetID      string    `json:"target_id"`
	TargetName    string    `json:"target_name,omitempty"`
	TargetPath    string    `json:"target_path,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
