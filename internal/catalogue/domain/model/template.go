package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTemplateNotFound   = errors.New("schema template not found")
	ErrTemplateNameEmpty  = errors.New("template name is required")
	ErrTemplateNameTaken  = errors.New("template name already used")
	ErrSchemaNotEmpty     = errors.New("collection already has fields defined")
	ErrTemplateFieldTaken = errors.New("field name already used in this template")
)

// SchemaTemplate is an owner-scoped, reusable set of field definitions.
type SchemaTemplate struct {
	ID          string             `json:"id" bson:"-"`
	ObjectID    primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	OwnerID     string             `json:"owner_id" bson:"owner_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Validate checks the writable fields.
func (t *SchemaTemplate) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTemplateNameEmpty
	}
	return nil
}

// SchemaTemplateField mirrors FieldDefinition without a collection binding.
// Positions are dense, starting at 1.
type SchemaTemplateField struct {
	ID         string             `json:"id" bson:"-"`
	ObjectID   primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	TemplateID string             `json:"template_id" bson:"template_id"`
	Name       string             `json:"name" bson:"name"`
	Type       FieldType          `json:"type" bson:"type"`
	IsRequired bool               `json:"is_required" bson:"is_required"`
	IsPrivate  bool               `json:"is_private" bson:"is_private"`
	Options    *FieldOptions      `json:"options,omitempty" bson:"options,omitempty"`
	Position   int                `json:"position" bson:"position"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// Validate checks name, type and the options/type pairing.
func (f *SchemaTemplateField) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrFieldNameEmpty
	}
	if !ValidFieldType(f.Type) {
		return ErrFieldTypeInvalid
	}
	return ValidateOptions(f.Type, f.Options)
}

// CopyName derives the name for a duplicated template, appending "(Copy)" or
// "(Copy N)" until it avoids every name in taken.
func CopyName(base string, taken map[string]bool) string {
	candidate := base + " (Copy)"
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s (Copy %d)", base, n)
	}
	return candidate
}
