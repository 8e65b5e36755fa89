package usecase

import (
	"context"
	"testing"

	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CollectionUsecaseTestSuite struct {
	suite.Suite
	collections *mockCollectionRepo
	fields      *mockFieldRepo
	items       *mockItemRepo
	images      *mockImageRepo
	stars       *mockStarRepo
	files       *mockFileStore
	uc          *CollectionUsecase
	ctx         context.Context
}

func (s *CollectionUsecaseTestSuite) SetupTest() {
	s.collections = new(mockCollectionRepo)
	s.fields = new(mockFieldRepo)
	s.items = new(mockItemRepo)
	s.images = new(mockImageRepo)
	s.stars = new(mockStarRepo)
	s.files = new(mockFileStore)
	log := logger.NewLogger()
	s.uc = NewCollectionUsecase(
		s.collections, s.fields, s.items, s.images, s.stars, s.files,
		eventbus.NewEventBus(log), log,
	)
	s.ctx = context.Background()
}

func (s *CollectionUsecaseTestSuite) TestCreate_Success() {
	s.collections.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Collection) bool {
		return c.OwnerID == "owner" && c.Name == "Coins" && c.IsPublic
	})).Return(nil)

	collection, err := s.uc.Create(s.ctx, "owner", "Coins", "Meiji era coins", true)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "col-1", collection.ID)
}

func (s *CollectionUsecaseTestSuite) TestCreate_RequiresName() {
	_, err := s.uc.Create(s.ctx, "owner", "   ", "", false)
	assert.ErrorIs(s.T(), err, model.ErrCollectionNameEmpty)
	s.collections.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *CollectionUsecaseTestSuite) TestGet_ReturnsSchemaAndCounts() {
	s.collections.On("GetByID", mock.Anything, "col-1").Return(&model.Collection{
		ID: "col-1", OwnerID: "owner", Name: "Coins", IsPublic: true,
	}, nil)
	s.fields.On("ListByCollection", mock.Anything, "col-1").Return([]*model.FieldDefinition{
		{ID: "f1", CollectionID: "col-1", Name: "Era", Type: model.FieldTypeText, Position: 1},
	}, nil)
	s.items.On("List", mock.Anything, "col-1", mock.Anything).Return(&model.ItemPage{Total: 12}, nil)
	s.stars.On("Count", mock.Anything, model.StarTargetCollection, "col-1").Return(int64(3), nil)

	detail, err := s.uc.Get(s.ctx, "stranger", "col-1")

	require.NoError(s.T(), err)
	assert.Len(s.T(), detail.Fields, 1)
	assert.Equal(s.T(), int64(12), detail.ItemCount)
	assert.Equal(s.T(), int64(3), detail.StarCount)
}

func (s *CollectionUsecaseTestSuite) TestGet_PrivateHiddenFromStrangers() {
	s.collections.On("GetByID", mock.Anything, "col-1").Return(&model.Collection{
		ID: "col-1", OwnerID: "owner", Name: "Coins", IsPublic: false,
	}, nil)

	_, err := s.uc.Get(s.ctx, "stranger", "col-1")
	assert.ErrorIs(s.T(), err, model.ErrCollectionNotFound)
}

func (s *CollectionUsecaseTestSuite) TestListOwn_AttachesCounts() {
	s.collections.On("ListByOwner", mock.Anything, "owner").Return([]*model.Collection{
		{ID: "col-1", OwnerID: "owner", Name: "Coins"},
		{ID: "col-2", OwnerID: "owner", Name: "Stamps"},
	}, nil)
	s.items.On("List", mock.Anything, "col-1", mock.Anything).Return(&model.ItemPage{Total: 12}, nil)
	s.items.On("List", mock.Anything, "col-2", mock.Anything).Return(&model.ItemPage{Total: 0}, nil)
	s.stars.On("Count", mock.Anything, model.StarTargetCollection, "col-1").Return(int64(5), nil)
	s.stars.On("Count", mock.Anything, model.StarTargetCollection, "col-2").Return(int64(0), nil)

	summaries, err := s.uc.ListOwn(s.ctx, "owner")

	require.NoError(s.T(), err)
	require.Len(s.T(), summaries, 2)
	assert.Equal(s.T(), int64(12), summaries[0].ItemCount)
	assert.Equal(s.T(), int64(5), summaries[0].StarCount)
	assert.Equal(s.T(), int64(0), summaries[1].ItemCount)
}

func (s *CollectionUsecaseTestSuite) TestUpdate_PatchesOnlyProvidedFields() {
	s.collections.On("GetByID", mock.Anything, "col-1").Return(&model.Collection{
		ID: "col-1", OwnerID: "owner", Name: "Coins", Description: "old", IsPublic: true,
	}, nil)
	s.collections.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Collection) bool {
		return c.Name == "Rare Coins" && c.Description == "old" && c.IsPublic
	})).Return(nil)

	name := "Rare Coins"
	collection, err := s.uc.Update(s.ctx, "owner", "col-1", &name, nil, nil)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Rare Coins", collection.Name)
	assert.Equal(s.T(), "old", collection.Description)
}

func (s *CollectionUsecaseTestSuite) TestUpdate_GoingPrivateDropsFeaturedFlag() {
	s.collections.On("GetByID", mock.Anything, "col-1").Return(&model.Collection{
		ID: "col-1", OwnerID: "owner", Name: "Coins", IsPublic: true, IsFeatured: true,
	}, nil)
	s.collections.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Collection) bool {
		return !c.IsPublic && !c.IsFeatured
	})).Return(nil)

	private := false
	collection, err := s.uc.Update(s.ctx, "owner", "col-1", nil, nil, &private)

	require.NoError(s.T(), err)
	assert.False(s.T(), collection.IsFeatured)
}

func (s *CollectionUsecaseTestSuite) TestUpdate_RejectsNonOwner() {
	s.collections.On("GetByID", mock.Anything, "col-1").Return(&model.Collection{
		ID: "col-1", OwnerID: "owner", Name: "Coins", IsPublic: true,
	}, nil)

	name := "Hijack"
	_, err := s.uc.Update(s.ctx, "stranger", "col-1", &name, nil, nil)
	assert.ErrorIs(s.T(), err, model.ErrNotOwner)
}

func (s *CollectionUsecaseTestSuite) TestDelete_CascadesItemsImagesStarsAndFiles() {
	s.collections.On("GetByID", mock.Anything, "col-1").Return(&model.Collection{
		ID: "col-1", OwnerID: "owner", Name: "Coins", IsPublic: true,
	}, nil)
	s.items.On("DeleteByCollection", mock.Anything, "col-1").Return([]string{"item-1", "item-2"}, nil)
	s.images.On("DeleteByItem", mock.Anything, "item-1").Return([]*model.ItemImage{}, nil)
	s.images.On("DeleteByItem", mock.Anything, "item-2").Return([]*model.ItemImage{}, nil)
	s.stars.On("DeleteByTarget", mock.Anything, model.StarTargetItem, "item-1").Return(nil)
	s.stars.On("DeleteByTarget", mock.Anything, model.StarTargetItem, "item-2").Return(nil)
	s.fields.On("DeleteByCollection", mock.Anything, "col-1").Return(nil)
	s.stars.On("DeleteByTarget", mock.Anything, model.StarTargetCollection, "col-1").Return(nil)
	s.files.On("RemoveCollection", "owner", "col-1").Return(nil)
	s.collections.On("Delete", mock.Anything, "col-1").Return(nil)

	err := s.uc.Delete(s.ctx, "owner", "col-1")

	require.NoError(s.T(), err)
	s.images.AssertExpectations(s.T())
	s.stars.AssertExpectations(s.T())
	s.files.AssertExpectations(s.T())
}

func (s *CollectionUsecaseTestSuite) TestDelete_FileRemovalFailureDoesNotAbort() {
	s.collections.On("GetByID", mock.Anything, "col-1").Return(&model.Collection{
		ID: "col-1", OwnerID: "owner", Name: "Coins", IsPublic: false,
	}, nil)
	s.items.On("DeleteByCollection", mock.Anything, "col-1").Return([]string{}, nil)
	s.fields.On("DeleteByCollection", mock.Anything, "col-1").Return(nil)
	s.stars.On("DeleteByTarget", mock.Anything, model.StarTargetCollection, "col-1").Return(nil)
	s.files.On("RemoveCollection", "owner", "col-1").Return(assert.AnError)
	s.collections.On("Delete", mock.Anything, "col-1").Return(nil)

	err := s.uc.Delete(s.ctx, "owner", "col-1")
	assert.NoError(s.T(), err)
}

func (s *CollectionUsecaseTestSuite) TestDelete_PrivateHiddenFromStrangers() {
	s.collections.On("GetByID", mock.Anything, "col-1").Return(&model.Collection{
		ID: "col-1", OwnerID: "owner", Name: "Coins", IsPublic: false,
	}, nil)

	err := s.uc.Delete(s.ctx, "stranger", "col-1")
	assert.ErrorIs(s.T(), err, model.ErrCollectionNotFound)
	s.items.AssertNotCalled(s.T(), "DeleteByCollection", mock.Anything, mock.Anything)
}

func TestCollectionUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionUsecaseTestSuite))
}
