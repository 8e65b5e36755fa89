package usecase

import (
	"context"
	"strings"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/logger"
)

// FieldInput carries the writable attributes of a field definition.
type FieldInput struct {
	Name       string              `json:"name"`
	Type       model.FieldType     `json:"type"`
	IsRequired bool                `json:"is_required"`
	IsPrivate  bool                `json:"is_private"`
	Options    *model.FieldOptions `json:"options,omitempty"`
}

// FieldUsecaseInterface defines schema field operations.
type FieldUsecaseInterface interface {
	Create(ctx context.Context, callerID, collectionID string, in FieldInput) (*model.FieldDefinition, error)
	Update(ctx context.Context, callerID, fieldID string, in FieldInput) (*model.FieldDefinition, error)
	Delete(ctx context.Context, callerID, fieldID string) error
	Reorder(ctx context.Context, callerID, collectionID string, orderedIDs []string) ([]*model.FieldDefinition, error)
}

// FieldUsecase implements schema field operations.
type FieldUsecase struct {
	collections repository.CollectionRepository
	fields      repository.FieldRepository
	logger      logger.Logger
}

// NewFieldUsecase creates a field usecase.
func NewFieldUsecase(collections repository.CollectionRepository, fields repository.FieldRepository, log logger.Logger) *FieldUsecase {
	return &FieldUsecase{
		collections: collections,
		fields:      fields,
		logger:      log.WithComponent("field_usecase"),
	}
}

// Create appends a field to the collection schema at max(position)+1.
func (uc *FieldUsecase) Create(ctx context.Context, callerID, collectionID string, in FieldInput) (*model.FieldDefinition, error) {
	if err := uc.requireOwned(ctx, callerID, collectionID); err != nil {
		return nil, err
	}

	existing, err := uc.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	field := &model.FieldDefinition{
		CollectionID: collectionID,
		Name:         strings.TrimSpace(in.Name),
		Type:         in.Type,
		IsRequired:   in.IsRequired,
		IsPrivate:    in.IsPrivate,
		Options:      in.Options,
		Position:     maxFieldPosition(existing) + 1,
	}
	if err := field.Validate(); err != nil {
		return nil, err
	}

	if err := uc.fields.Create(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

func maxFieldPosition(fields []*model.FieldDefinition) int {
	max := 0
	for _, f := range fields {
		if f.Position > max {
			max = f.Position
		}
	}
	return max
}

// Update changes name, required, private or options. The type is immutable
// once the field exists.
func (uc *FieldUsecase) Update(ctx context.Context, callerID, fieldID string, in FieldInput) (*model.FieldDefinition, error) {
	field, err := uc.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireOwned(ctx, callerID, field.CollectionID); err != nil {
		return nil, err
	}
	if in.Type != "" && in.Type != field.Type {
		return nil, model.ErrFieldTypeInvalid
	}

	field.Name = strings.TrimSpace(in.Name)
	field.IsRequired = in.IsRequired
	field.IsPrivate = in.IsPrivate
	field.Options = in.Options
	if err := field.Validate(); err != nil {
		return nil, err
	}

	if err := uc.fields.Update(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

// Delete removes a field and closes the position gap.
func (uc *FieldUsecase) Delete(ctx context.Context, callerID, fieldID string) error {
	field, err := uc.fields.GetByID(ctx, fieldID)
	if err != nil {
		return err
	}
	if err := uc.requireOwned(ctx, callerID, field.CollectionID); err != nil {
		return err
	}

	if err := uc.fields.Delete(ctx, fieldID); err != nil {
		return err
	}

	remaining, err := uc.fields.ListByCollection(ctx, field.CollectionID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(remaining))
	for _, f := range remaining {
		ids = append(ids, f.ID)
	}
	return uc.fields.SetPositions(ctx, field.CollectionID, ids)
}

// Reorder renumbers the schema following orderedIDs, which must be an exact
// permutation of the collection's field IDs.
func (uc *FieldUsecase) Reorder(ctx context.Context, callerID, collectionID string, orderedIDs []string) ([]*model.FieldDefinition, error) {
	if err := uc.requireOwned(ctx, callerID, collectionID); err != nil {
		return nil, err
	}

	existing, err := uc.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if !isPermutation(orderedIDs, fieldIDs(existing)) {
		return nil, model.ErrFieldOrderMismatch
	}

	if err := uc.fields.SetPositions(ctx, collectionID, orderedIDs); err != nil {
		return nil, err
	}
	return uc.fields.ListByCollection(ctx, collectionID)
}

func fieldIDs(fields []*model.FieldDefinition) []string {
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.ID)
	}
	return ids
}

// isPermutation reports whether got contains exactly the elements of want,
// each once, in any order.
func isPermutation(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]bool, len(want))
	for _, id := range want {
		seen[id] = true
	}
	for _, id := range got {
		if !seen[id] {
			return false
		}
		delete(seen, id)
	}
	return len(seen) == 0
}

func (uc *FieldUsecase) requireOwned(ctx context.Context, callerID, collectionID string) error {
	collection, err := uc.collections.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if collection.OwnerID != callerID {
		if !collection.IsPublic {
			return model.ErrCollectionNotFound
		}
		return model.ErrNotOwner
	}
	return nil
}

var _ FieldUsecaseInterface = (*FieldUsecase)(nil)
