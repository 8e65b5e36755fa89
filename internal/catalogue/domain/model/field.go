package model

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldType enumerates the metadata value types a schema field can take.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeNumber    FieldType = "number"
	FieldTypeDate      FieldType = "date"
	FieldTypeTimestamp FieldType = "timestamp"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeSelect    FieldType = "select"
)

var (
	ErrFieldNotFound      = errors.New("field not found")
	ErrFieldNameEmpty     = errors.New("field name is required")
	ErrFieldNameTaken     = errors.New("field name already used in this collection")
	ErrFieldTypeInvalid   = errors.New("field type is invalid")
	ErrOptionsNotAllowed  = errors.New("options are only valid for select fields")
	ErrOptionsRequired    = errors.New("select fields require a non-empty options list")
	ErrFieldOrderMismatch = errors.New("field order must include every field exactly once")
)

// ValidFieldType reports whether t is one of the supported types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeTimestamp, FieldTypeCheckbox, FieldTypeSelect:
		return true
	}
	return false
}

// FieldOptions holds the choice list for select fields.
type FieldOptions struct {
	Options []string `json:"options" bson:"options"`
}

// FieldDefinition describes one typed attribute of a collection schema.
// Positions are dense, starting at 1.
type FieldDefinition struct {
	ID           string             `json:"id" bson:"-"`
	ObjectID     primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	CollectionID string             `json:"collection_id" bson:"collection_id"`
	Name         string             `json:"name" bson:"name"`
	Type         FieldType          `json:"type" bson:"type"`
	IsRequired   bool               `json:"is_required" bson:"is_required"`
	IsPrivate    bool               `json:"is_private" bson:"is_private"`
	Options      *FieldOptions      `json:"options,omitempty" bson:"options,omitempty"`
	Position     int                `json:"position" bson:"position"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Validate checks name, type and the options/type pairing.
func (f *FieldDefinition) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrFieldNameEmpty
	}
	if !ValidFieldType(f.Type) {
		return ErrFieldTypeInvalid
	}
	return ValidateOptions(f.Type, f.Options)
}

// ValidateOptions enforces that only select fields carry options and that a
// select field's option list is non-empty with non-blank entries.
func ValidateOptions(t FieldType, opts *FieldOptions) error {
	if t != FieldTypeSelect {
		if opts != nil {
			return ErrOptionsNotAllowed
		}
		return nil
	}
	if opts == nil || len(opts.Options) == 0 {
		return ErrOptionsRequired
	}
	for _, o := range opts.Options {
		if strings.TrimSpace(o) == "" {
			return ErrOptionsRequired
		}
	}
	return nil
}

// HasOption reports whether v is one of the select field's choices.
func (o *FieldOptions) HasOption(v string) bool {
	if o == nil {
		return false
	}
	for _, opt := range o.Options {
		if opt == v {
			return true
		}
	}
	return false
}
