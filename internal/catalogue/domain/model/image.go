package model

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrImageNotFound        = errors.New("image not found")
	ErrImagePositionInvalid = errors.New("image position is out of range")
	ErrImageTooLarge        = errors.New("image exceeds the size limit")
	ErrImageTypeInvalid     = errors.New("unsupported image type")
)

// ImageVariant names one stored rendition of an uploaded image.
type ImageVariant string

const (
	VariantOriginal ImageVariant = "original"
	VariantMedium   ImageVariant = "medium"
	VariantThumb    ImageVariant = "thumb"
)

// ValidImageVariant reports whether v is a stored rendition name.
func ValidImageVariant(v ImageVariant) bool {
	switch v {
	case VariantOriginal, VariantMedium, VariantThumb:
		return true
	}
	return false
}

// ItemImage is one photo attached to an item. Positions are dense, 0-based;
// the item's primary image is the lowest (position, id) pair.
type ItemImage struct {
	ID        string             `json:"id" bson:"-"`
	ObjectID  primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ItemID    string             `json:"item_id" bson:"item_id"`
	Filename  string             `json:"filename" bson:"filename"`
	Position  int                `json:"position" bson:"position"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
