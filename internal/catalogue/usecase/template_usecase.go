package usecase

import (
	"context"
	"strings"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"
)

// TemplateDetail is a template with its fields attached.
type TemplateDetail struct {
	*model.SchemaTemplate
	Fields []*model.SchemaTemplateField `json:"fields"`
}

// TemplateUsecaseInterface defines schema template operations.
type TemplateUsecaseInterface interface {
	Create(ctx context.Context, ownerID, name, description string) (*model.SchemaTemplate, error)
	Get(ctx context.Context, callerID, id string) (*TemplateDetail, error)
	ListOwn(ctx context.Context, ownerID string) ([]*model.SchemaTemplate, error)
	Update(ctx context.Context, callerID, id string, name, description *string) (*model.SchemaTemplate, error)
	Delete(ctx context.Context, callerID, id string) error

	FromCollection(ctx context.Context, callerID, collectionID string) (*TemplateDetail, error)
	ApplyToCollection(ctx context.Context, callerID, collectionID, templateID string) ([]*model.FieldDefinition, error)

	CreateField(ctx context.Context, callerID, templateID string, in FieldInput) (*model.SchemaTemplateField, error)
	UpdateField(ctx context.Context, callerID, fieldID string, in FieldInput) (*model.SchemaTemplateField, error)
	DeleteField(ctx context.Context, callerID, fieldID string) error
	ReplaceFields(ctx context.Context, callerID, templateID string, inputs []FieldInput) ([]*model.SchemaTemplateField, error)
	ReorderFields(ctx context.Context, callerID, templateID string, orderedIDs []string) ([]*model.SchemaTemplateField, error)
}

// TemplateUsecase implements schema template operations.
type TemplateUsecase struct {
	collections repository.CollectionRepository
	fields      repository.FieldRepository
	templates   repository.TemplateRepository
	bus         eventbus.EventBusInterface
	logger      logger.Logger
}

// NewTemplateUsecase creates a template usecase.
func NewTemplateUsecase(
	collections repository.CollectionRepository,
	fields repository.FieldRepository,
	templates repository.TemplateRepository,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *TemplateUsecase {
	return &TemplateUsecase{
		collections: collections,
		fields:      fields,
		templates:   templates,
		bus:         bus,
		logger:      log.WithComponent("template_usecase"),
	}
}

// Create makes an empty template.
func (uc *TemplateUsecase) Create(ctx context.Context, ownerID, name, description string) (*model.SchemaTemplate, error) {
	template := &model.SchemaTemplate{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(name),
		Description: description,
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}

	if err := uc.templates.Create(ctx, template); err != nil {
		return nil, err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeTemplateCreated, map[string]interface{}{
		"actor_id":      ownerID,
		"template_id":   template.ID,
		"template_name": template.Name,
	}))

	return template, nil
}

// Get returns a template with its fields. Templates are owner private.
func (uc *TemplateUsecase) Get(ctx context.Context, callerID, id string) (*TemplateDetail, error) {
	template, err := uc.requireOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	fields, err := uc.templates.ListFields(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TemplateDetail{SchemaTemplate: template, Fields: fields}, nil
}

// ListOwn returns the caller's templates, newest first.
func (uc *TemplateUsecase) ListOwn(ctx context.Context, ownerID string) ([]*model.SchemaTemplate, error) {
	return uc.templates.ListByOwner(ctx, ownerID)
}

// Update patches name and description.
func (uc *TemplateUsecase) Update(ctx context.Context, callerID, id string, name, description *string) (*model.SchemaTemplate, error) {
	template, err := uc.requireOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		template.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		template.Description = *description
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}

	if err := uc.templates.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// Delete removes a template and its fields.
func (uc *TemplateUsecase) Delete(ctx context.Context, callerID, id string) error {
	template, err := uc.requireOwned(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := uc.templates.Delete(ctx, id); err != nil {
		return err
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeTemplateDeleted, map[string]interface{}{
		"actor_id":      callerID,
		"template_id":   id,
		"template_name": template.Name,
	}))

	return nil
}

// FromCollection snapshots a collection's schema into a new template. Name
// collisions resolve to "X (Copy)", "X (Copy 2)" and so on.
func (uc *TemplateUsecase) FromCollection(ctx context.Context, callerID, collectionID string) (*TemplateDetail, error) {
	collection, err := uc.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if collection.OwnerID != callerID {
		if !collection.IsPublic {
			return nil, model.ErrCollectionNotFound
		}
		return nil, model.ErrNotOwner
	}

	existing, err := uc.templates.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	name := collection.Name
	for _, t := range existing {
		taken[t.Name] = true
		if t.Name == collection.Name {
			name = ""
		}
	}
	if name == "" {
		name = model.CopyName(collection.Name, taken)
	}

	template := &model.SchemaTemplate{
		OwnerID:     callerID,
		Name:        name,
		Description: collection.Description,
	}
	if err := uc.templates.Create(ctx, template); err != nil {
		return nil, err
	}

	sourceFields, err := uc.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	for _, f := range sourceFields {
		field := &model.SchemaTemplateField{
			TemplateID: template.ID,
			Name:       f.Name,
			Type:       f.Type,
			IsRequired: f.IsRequired,
			IsPrivate:  f.IsPrivate,
			Options:    f.Options,
			Position:   f.Position,
		}
		if err := uc.templates.CreateField(ctx, field); err != nil {
			return nil, err
		}
	}

	uc.bus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeTemplateCreated, map[string]interface{}{
		"actor_id":      callerID,
		"template_id":   template.ID,
		"template_name": template.Name,
	}))

	fields, err := uc.templates.ListFields(ctx, template.ID)
	if err != nil {
		return nil, err
	}
	return &TemplateDetail{SchemaTemplate: template, Fields: fields}, nil
}

// ApplyToCollection copies a template's fields onto a collection whose schema
// is still empty.
func (uc *TemplateUsecase) ApplyToCollection(ctx context.Context, callerID, collectionID, templateID string) ([]*model.FieldDefinition, error) {
	collection, err := uc.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if collection.OwnerID != callerID {
		if !collection.IsPublic {
			return nil, model.ErrCollectionNotFound
		}
		return nil, model.ErrNotOwner
	}
	if _, err := uc.requireOwned(ctx, callerID, templateID); err != nil {
		return nil, err
	}

	existing, err := uc.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, model.ErrSchemaNotEmpty
	}

	templateFields, err := uc.templates.ListFields(ctx, templateID)
	if err != nil {
		return nil, err
	}
	for i, tf := range templateFields {
		field := &model.FieldDefinition{
			CollectionID: collectionID,
			Name:         tf.Name,
			Type:         tf.Type,
			IsRequired:   tf.IsRequired,
			IsPrivate:    tf.IsPrivate,
			Options:      tf.Options,
			Position:     i + 1,
		}
		if err := uc.fields.Create(ctx, field); err != nil {
			return nil, err
		}
	}

	return uc.fields.ListByCollection(ctx, collectionID)
}

// CreateField appends a field to the template at max(position)+1.
func (uc *TemplateUsecase) CreateField(ctx context.Context, callerID, templateID string, in FieldInput) (*model.SchemaTemplateField, error) {
	if _, err := uc.requireOwned(ctx, callerID, templateID); err != nil {
		return nil, err
	}

	existing, err := uc.templates.ListFields(ctx, templateID)
	if err != nil {
		return nil, err
	}
	max := 0
	for _, f := range existing {
		if f.Position > max {
			max = f.Position
		}
	}

	field := &model.SchemaTemplateField{
		TemplateID: templateID,
		Name:       strings.TrimSpace(in.Name),
		Type:       in.Type,
		IsRequired: in.IsRequired,
		IsPrivate:  in.IsPrivate,
		Options:    in.Options,
		Position:   max + 1,
	}
	if err := field.Validate(); err != nil {
		return nil, err
	}

	if err := uc.templates.CreateField(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

// UpdateField mirrors the collection field rules; type stays immutable.
func (uc *TemplateUsecase) UpdateField(ctx context.Context, callerID, fieldID string, in FieldInput) (*model.SchemaTemplateField, error) {
	field, err := uc.templates.GetFieldByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.requireOwned(ctx, callerID, field.TemplateID); err != nil {
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

	if err := uc.templates.UpdateField(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

// DeleteField removes a field and closes the position gap.
func (uc *TemplateUsecase) DeleteField(ctx context.Context, callerID, fieldID string) error {
	field, err := uc.templates.GetFieldByID(ctx, fieldID)
	if err != nil {
		return err
	}
	if _, err := uc.requireOwned(ctx, callerID, field.TemplateID); err != nil {
		return err
	}

	if err := uc.templates.DeleteField(ctx, fieldID); err != nil {
		return err
	}

	remaining, err := uc.templates.ListFields(ctx, field.TemplateID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(remaining))
	for _, f := range remaining {
		ids = append(ids, f.ID)
	}
	return uc.templates.SetFieldPositions(ctx, field.TemplateID, ids)
}

// ReplaceFields swaps the template's field set wholesale, positions 1..n in
// input order.
func (uc *TemplateUsecase) ReplaceFields(ctx context.Context, callerID, templateID string, inputs []FieldInput) ([]*model.SchemaTemplateField, error) {
	if _, err := uc.requireOwned(ctx, callerID, templateID); err != nil {
		return nil, err
	}

	fields := make([]*model.SchemaTemplateField, 0, len(inputs))
	for i, in := range inputs {
		field := &model.SchemaTemplateField{
			TemplateID: templateID,
			Name:       strings.TrimSpace(in.Name),
			Type:       in.Type,
			IsRequired: in.IsRequired,
			IsPrivate:  in.IsPrivate,
			Options:    in.Options,
			Position:   i + 1,
		}
		if err := field.Validate(); err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	if err := uc.templates.ReplaceFields(ctx, templateID, fields); err != nil {
		return nil, err
	}
	return uc.templates.ListFields(ctx, templateID)
}

// ReorderFields renumbers the template's fields following orderedIDs, which
// must be an exact permutation of the template's field IDs.
func (uc *TemplateUsecase) ReorderFields(ctx context.Context, callerID, templateID string, orderedIDs []string) ([]*model.SchemaTemplateField, error) {
	if _, err := uc.requireOwned(ctx, callerID, templateID); err != nil {
		return nil, err
	}

	existing, err := uc.templates.ListFields(ctx, templateID)
	if err != nil {
		return nil, err
	}
	existingIDs := make([]string, 0, len(existing))
	for _, f := range existing {
		existingIDs = append(existingIDs, f.ID)
	}
	if !isPermutation(orderedIDs, existingIDs) {
		return nil, model.ErrFieldOrderMismatch
	}

	if err := uc.templates.SetFieldPositions(ctx, templateID, orderedIDs); err != nil {
		return nil, err
	}
	return uc.templates.ListFields(ctx, templateID)
}

func (uc *TemplateUsecase) requireOwned(ctx context.Context, callerID, templateID string) (*model.SchemaTemplate, error) {
	template, err := uc.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.OwnerID != callerID {
		return nil, model.ErrTemplateNotFound
	}
	return template, nil
}

var _ TemplateUsecaseInterface = (*TemplateUsecase)(nil)
