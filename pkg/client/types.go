package client

import "time"

// User is the account shape returned by the auth endpoints.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	AvatarFilename string    `json:"avatar_filename,omitempty"`
	IsActive       bool      `json:"is_active"`
	IsVerified     bool      `json:"is_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// Collection is a user's collection.
type Collection struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionSummary is a collection with its counters.
type CollectionSummary struct {
	Collection
	ItemCount int64 `json:"item_count"`
	StarCount int64 `json:"star_count"`
}

// CollectionDetail is a collection with its schema attached.
type CollectionDetail struct {
	Collection
	Fields    []*FieldDefinition `json:"fields"`
	ItemCount int64              `json:"item_count"`
	StarCount int64              `json:"star_count"`
}

// FieldOptions carries the choices of a select field.
type FieldOptions struct {
	Options []string `json:"options"`
}

// FieldDefinition is one column of a collection's schema.
type FieldDefinition struct {
	ID           string        `json:"id"`
	CollectionID string        `json:"collection_id"`
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	IsRequired   bool          `json:"is_required"`
	IsPrivate    bool          `json:"is_private"`
	Options      *FieldOptions `json:"options,omitempty"`
	Position     int           `json:"position"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// FieldInput creates or patches a field definition.
type FieldInput struct {
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	IsRequired bool          `json:"is_required"`
	IsPrivate  bool          `json:"is_private"`
	Options    *FieldOptions `json:"options,omitempty"`
}

// Item is a catalogued object inside a collection.
type Item struct {
	ID           string                 `json:"id"`
	CollectionID string                 `json:"collection_id"`
	Name         string                 `json:"name"`
	Metadata     map[string]interface{} `json:"metadata"`
	Notes        string                 `json:"notes,omitempty"`
	IsFeatured   bool                   `json:"is_featured"`
	IsHighlight  bool                   `json:"is_highlight"`
	IsDraft      bool                   `json:"is_draft"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// ItemSummary is an item with its list decorations.
type ItemSummary struct {
	Item
	PrimaryImageID string `json:"primary_image_id,omitempty"`
	StarCount      int64  `json:"star_count"`
}

// ItemInput creates an item.
type ItemInput struct {
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Notes    string                 `json:"notes,omitempty"`
	IsDraft  bool                   `json:"is_draft,omitempty"`
}

// ItemPatch updates an item. Nil fields are left untouched; a nil value
// inside Metadata clears that key.
type ItemPatch struct {
	Name     *string                `json:"name,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Notes    *string                `json:"notes,omitempty"`
	IsDraft  *bool                  `json:"is_draft,omitempty"`
}

// ItemPage is one page of a collection's item list.
type ItemPage struct {
	Items  []*ItemSummary `json:"items"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// SearchHit is one result of a cross-collection search.
type SearchHit struct {
	Item
	CollectionName string `json:"collection_name"`
	PrimaryImageID string `json:"primary_image_id,omitempty"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items  []*SearchHit `json:"items"`
	Total  int64        `json:"total"`
	Offset int          `json:"offset"`
	Limit  int          `json:"limit"`
}

// ItemImage is one image attached to an item.
type ItemImage struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Filename  string    `json:"filename"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// StarState is the result of starring or unstarring a target.
type StarState struct {
	Starred   bool  `json:"starred"`
	StarCount int64 `json:"star_count"`
}

// SchemaTemplate is a reusable field layout.
type SchemaTemplate struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SchemaTemplateField is one field of a template.
type SchemaTemplateField struct {
	ID         string        `json:"id"`
	TemplateID string        `json:"template_id"`
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	IsRequired bool          `json:"is_required"`
	IsPrivate  bool          `json:"is_private"`
	Options    *FieldOptions `json:"options,omitempty"`
	Position   int           `json:"position"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// TemplateDetail is a template with its fields attached.
type TemplateDetail struct {
	SchemaTemplate
	Fields []*SchemaTemplateField `json:"fields"`
}

// ActivityEntry is one row of a user's activity feed.
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

// Profile is the caller's own profile.
type Profile struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	AvatarFilename string `json:"avatar_filename,omitempty"`
	StarsReceived  int64  `json:"stars_received"`
}

// PublicProfile is another user's public profile.
type PublicProfile struct {
	Username              string               `json:"username"`
	AvatarFilename        string               `json:"avatar_filename,omitempty"`
	StarsReceived         int64                `json:"stars_received"`
	StarRank              int64                `json:"star_rank"`
	PublicCollectionCount int64                `json:"public_collection_count"`
	PublicItemCount       int64                `json:"public_item_count"`
	Collections           []*CollectionSummary `json:"collections"`
}

// ListOptions are the shared query knobs of the item list endpoint.
type ListOptions struct {
	Search string
	// Filters are typed equality filters in "Field=Value" form.
	Filters []string
	// Sort is name, created_at, or metadata:<field>; a leading "-" flips
	// the direction.
	Sort   string
	Offset int
	Limit  int
}

// PageOptions are plain offset/limit paging knobs.
type PageOptions struct {
	Offset int
	Limit  int
}
