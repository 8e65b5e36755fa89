package usecase

import (
	"context"
	"os"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"

	"github.com/stretchr/testify/mock"
)

type mockCollectionRepo struct {
	mock.Mock
}

func (m *mockCollectionRepo) Create(ctx context.Context, collection *model.Collection) error {
	args := m.Called(ctx, collection)
	if args.Error(0) == nil && collection.ID == "" {
		collection.ID = "col-1"
	}
	return args.Error(0)
}

func (m *mockCollectionRepo) GetByID(ctx context.Context, id string) (*model.Collection, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*model.Collection), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollectionRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Collection, error) {
	args := m.Called(ctx, ownerID)
	if c := args.Get(0); c != nil {
		return c.([]*model.Collection), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollectionRepo) ListAll(ctx context.Context, offset, limit int) ([]*model.Collection, int64, error) {
	args := m.Called(ctx, offset, limit)
	if c := args.Get(0); c != nil {
		return c.([]*model.Collection), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockCollectionRepo) Update(ctx context.Context, collection *model.Collection) error {
	return m.Called(ctx, collection).Error(0)
}

func (m *mockCollectionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCollectionRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCollectionRepo) GetFeatured(ctx context.Context) (*model.Collection, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(*model.Collection), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollectionRepo) ClearFeatured(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCollectionRepo) DeleteByOwner(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFieldRepo struct {
	mock.Mock
}

func (m *mockFieldRepo) Create(ctx context.Context, field *model.FieldDefinition) error {
	args := m.Called(ctx, field)
	if args.Error(0) == nil && field.ID == "" {
		field.ID = "field-new"
	}
	return args.Error(0)
}

func (m *mockFieldRepo) GetByID(ctx context.Context, id string) (*model.FieldDefinition, error) {
	args := m.Called(ctx, id)
	if f := args.Get(0); f != nil {
		return f.(*model.FieldDefinition), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFieldRepo) ListByCollection(ctx context.Context, collectionID string) ([]*model.FieldDefinition, error) {
	args := m.Called(ctx, collectionID)
	if f := args.Get(0); f != nil {
		return f.([]*model.FieldDefinition), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFieldRepo) Update(ctx context.Context, field *model.FieldDefinition) error {
	return m.Called(ctx, field).Error(0)
}

func (m *mockFieldRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFieldRepo) SetPositions(ctx context.Context, collectionID string, orderedIDs []string) error {
	return m.Called(ctx, collectionID, orderedIDs).Error(0)
}

func (m *mockFieldRepo) DeleteByCollection(ctx context.Context, collectionID string) error {
	return m.Called(ctx, collectionID).Error(0)
}

type mockItemRepo struct {
	mock.Mock
}

func (m *mockItemRepo) Create(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil && item.ID == "" {
		item.ID = "item-new"
	}
	return args.Error(0)
}

func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*model.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) List(ctx context.Context, collectionID string, q model.ItemQuery) (*model.ItemPage, error) {
	args := m.Called(ctx, collectionID, q)
	if p := args.Get(0); p != nil {
		return p.(*model.ItemPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) SearchAcross(ctx context.Context, collectionIDs []string, search string, offset, limit int) (*model.ItemPage, error) {
	args := m.Called(ctx, collectionIDs, search, offset, limit)
	if p := args.Get(0); p != nil {
		return p.(*model.ItemPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, item *model.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockItemRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockItemRepo) DeleteByCollection(ctx context.Context, collectionID string) ([]string, error) {
	args := m.Called(ctx, collectionID)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockItemRepo) CountDrafts(ctx context.Context, collectionID string) (int64, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockItemRepo) DraftIDs(ctx context.Context, collectionID string) ([]string, error) {
	args := m.Called(ctx, collectionID)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) ClearFeatured(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockItemRepo) SetFeatured(ctx context.Context, collectionID string, itemIDs []string) error {
	return m.Called(ctx, collectionID, itemIDs).Error(0)
}

func (m *mockItemRepo) ListFeatured(ctx context.Context, collectionID string) ([]*model.Item, error) {
	args := m.Called(ctx, collectionID)
	if i := args.Get(0); i != nil {
		return i.([]*model.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) NewestNonDrafts(ctx context.Context, collectionID string, limit int) ([]*model.Item, error) {
	args := m.Called(ctx, collectionID, limit)
	if i := args.Get(0); i != nil {
		return i.([]*model.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockImageRepo struct {
	mock.Mock
}

func (m *mockImageRepo) Create(ctx context.Context, image *model.ItemImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *mockImageRepo) GetByID(ctx context.Context, id string) (*model.ItemImage, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*model.ItemImage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) ListByItem(ctx context.Context, itemID string) ([]*model.ItemImage, error) {
	args := m.Called(ctx, itemID)
	if i := args.Get(0); i != nil {
		return i.([]*model.ItemImage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockImageRepo) SetPositions(ctx context.Context, itemID string, orderedIDs []string) error {
	return m.Called(ctx, itemID, orderedIDs).Error(0)
}

func (m *mockImageRepo) DeleteByItem(ctx context.Context, itemID string) ([]*model.ItemImage, error) {
	args := m.Called(ctx, itemID)
	if i := args.Get(0); i != nil {
		return i.([]*model.ItemImage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) CountByItems(ctx context.Context, itemIDs []string) (int64, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockImageRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockStarRepo struct {
	mock.Mock
}

func (m *mockStarRepo) Add(ctx context.Context, star *model.Star) (bool, error) {
	args := m.Called(ctx, star)
	return args.Bool(0), args.Error(1)
}

func (m *mockStarRepo) Remove(ctx context.Context, userID string, targetType model.StarTargetType, targetID string) (bool, error) {
	args := m.Called(ctx, userID, targetType, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStarRepo) Exists(ctx context.Context, userID string, targetType model.StarTargetType, targetID string) (bool, error) {
	args := m.Called(ctx, userID, targetType, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStarRepo) Count(ctx context.Context, targetType model.StarTargetType, targetID string) (int64, error) {
	args := m.Called(ctx, targetType, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStarRepo) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStarRepo) RankByOwner(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStarRepo) DeleteByTarget(ctx context.Context, targetType model.StarTargetType, targetID string) error {
	return m.Called(ctx, targetType, targetID).Error(0)
}

func (m *mockStarRepo) DeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockTemplateRepo struct {
	mock.Mock
}

func (m *mockTemplateRepo) Create(ctx context.Context, template *model.SchemaTemplate) error {
	args := m.Called(ctx, template)
	if args.Error(0) == nil && template.ID == "" {
		template.ID = "tpl-new"
	}
	return args.Error(0)
}

func (m *mockTemplateRepo) GetByID(ctx context.Context, id string) (*model.SchemaTemplate, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*model.SchemaTemplate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTemplateRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.SchemaTemplate, error) {
	args := m.Called(ctx, ownerID)
	if t := args.Get(0); t != nil {
		return t.([]*model.SchemaTemplate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTemplateRepo) Update(ctx context.Context, template *model.SchemaTemplate) error {
	return m.Called(ctx, template).Error(0)
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTemplateRepo) CreateField(ctx context.Context, field *model.SchemaTemplateField) error {
	return m.Called(ctx, field).Error(0)
}

func (m *mockTemplateRepo) GetFieldByID(ctx context.Context, id string) (*model.SchemaTemplateField, error) {
	args := m.Called(ctx, id)
	if f := args.Get(0); f != nil {
		return f.(*model.SchemaTemplateField), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTemplateRepo) ListFields(ctx context.Context, templateID string) ([]*model.SchemaTemplateField, error) {
	args := m.Called(ctx, templateID)
	if f := args.Get(0); f != nil {
		return f.([]*model.SchemaTemplateField), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTemplateRepo) UpdateField(ctx context.Context, field *model.SchemaTemplateField) error {
	return m.Called(ctx, field).Error(0)
}

func (m *mockTemplateRepo) DeleteField(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTemplateRepo) ReplaceFields(ctx context.Context, templateID string, fields []*model.SchemaTemplateField) error {
	return m.Called(ctx, templateID, fields).Error(0)
}

func (m *mockTemplateRepo) SetFieldPositions(ctx context.Context, templateID string, orderedIDs []string) error {
	return m.Called(ctx, templateID, orderedIDs).Error(0)
}

type mockActivityStore struct {
	mock.Mock
}

func (m *mockActivityStore) Append(ctx context.Context, userID string, entry *model.ActivityEntry) error {
	return m.Called(ctx, userID, entry).Error(0)
}

func (m *mockActivityStore) List(ctx context.Context, userID string, limit int) ([]*model.ActivityEntry, error) {
	args := m.Called(ctx, userID, limit)
	if e := args.Get(0); e != nil {
		return e.([]*model.ActivityEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFileStore struct {
	mock.Mock
}

func (m *mockFileStore) RemoveItem(ownerID, collectionID, itemID string) error {
	return m.Called(ownerID, collectionID, itemID).Error(0)
}

func (m *mockFileStore) RemoveCollection(ownerID, collectionID string) error {
	return m.Called(ownerID, collectionID).Error(0)
}

type mockRenditionStore struct {
	mock.Mock
}

func (m *mockRenditionStore) Save(ownerID, collectionID, itemID, imageID string, data []byte) error {
	return m.Called(ownerID, collectionID, itemID, imageID, data).Error(0)
}

func (m *mockRenditionStore) Remove(ownerID, collectionID, itemID, imageID string) {
	m.Called(ownerID, collectionID, itemID, imageID)
}

func (m *mockRenditionStore) VariantPath(ownerID, collectionID, itemID, imageID string, variant model.ImageVariant) string {
	return m.Called(ownerID, collectionID, itemID, imageID, variant).String(0)
}

func (m *mockRenditionStore) Open(relPath string) (*os.File, error) {
	args := m.Called(relPath)
	if f := args.Get(0); f != nil {
		return f.(*os.File), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockImageUsecase struct {
	mock.Mock
}

func (m *mockImageUsecase) Upload(ctx context.Context, callerID, itemID, filename string, data []byte) (*model.ItemImage, error) {
	args := m.Called(ctx, callerID, itemID, filename, data)
	if i := args.Get(0); i != nil {
		return i.(*model.ItemImage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageUsecase) List(ctx context.Context, callerID, itemID string) ([]*model.ItemImage, error) {
	args := m.Called(ctx, callerID, itemID)
	if i := args.Get(0); i != nil {
		return i.([]*model.ItemImage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageUsecase) Reposition(ctx context.Context, callerID, imageID string, position int) ([]*model.ItemImage, error) {
	args := m.Called(ctx, callerID, imageID, position)
	if i := args.Get(0); i != nil {
		return i.([]*model.ItemImage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageUsecase) Delete(ctx context.Context, callerID, imageID string) error {
	return m.Called(ctx, callerID, imageID).Error(0)
}

func (m *mockImageUsecase) OpenVariant(ctx context.Context, callerID, imageID string, variant model.ImageVariant) (*os.File, error) {
	args := m.Called(ctx, callerID, imageID, variant)
	if f := args.Get(0); f != nil {
		return f.(*os.File), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ repository.CollectionRepository = (*mockCollectionRepo)(nil)
	_ repository.FieldRepository      = (*mockFieldRepo)(nil)
	_ repository.ItemRepository       = (*mockItemRepo)(nil)
	_ repository.ImageRepository      = (*mockImageRepo)(nil)
	_ repository.StarRepository       = (*mockStarRepo)(nil)
	_ repository.TemplateRepository   = (*mockTemplateRepo)(nil)
	_ repository.ActivityStore        = (*mockActivityStore)(nil)
	_ ImageFileStore                  = (*mockFileStore)(nil)
	_ ImageRenditionStore             = (*mockRenditionStore)(nil)
	_ ImageUsecaseInterface           = (*mockImageUsecase)(nil)
)
