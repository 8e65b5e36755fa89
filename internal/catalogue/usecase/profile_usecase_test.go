package usecase

import (
	"context"
	"os"
	"testing"

	authModel "curiovault/internal/auth/domain/model"
	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type mockAvatarStore struct {
	mock.Mock
}

func (m *mockAvatarStore) SaveAvatar(userID string, data []byte) (string, error) {
	args := m.Called(userID, data)
	return args.String(0), args.Error(1)
}

func (m *mockAvatarStore) Open(relPath string) (*os.File, error) {
	args := m.Called(relPath)
	if f := args.Get(0); f != nil {
		return f.(*os.File), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ AvatarStore = (*mockAvatarStore)(nil)

type ProfileUsecaseTestSuite struct {
	suite.Suite
	users       *mockUserRepo
	collections *mockCollectionRepo
	items       *mockItemRepo
	stars       *mockStarRepo
	avatars     *mockAvatarStore
	uc          *ProfileUsecase
	ctx         context.Context
}

func (s *ProfileUsecaseTestSuite) SetupTest() {
	s.users = new(mockUserRepo)
	s.collections = new(mockCollectionRepo)
	s.items = new(mockItemRepo)
	s.stars = new(mockStarRepo)
	s.avatars = new(mockAvatarStore)
	s.uc = NewProfileUsecase(
		s.users, s.collections, s.items, s.stars, s.avatars, 1024, logger.NewLogger(),
	)
	s.ctx = context.Background()
}

func (s *ProfileUsecaseTestSuite) expectNoStars(userID string) {
	s.stars.On("CountByOwner", mock.Anything, userID).Return(int64(0), nil)
}

func (s *ProfileUsecaseTestSuite) TestGet_TotalsStarsFromOwnerAggregate() {
	s.users.On("GetUserByID", mock.Anything, "user-1").Return(&authModel.User{
		ID: "user-1", Email: "u@example.com", Username: "grower",
	}, nil)
	// the total covers every starred item the user owns, however many; no
	// item listing is consulted, so no page size can truncate it
	s.stars.On("CountByOwner", mock.Anything, "user-1").Return(int64(150), nil)

	profile, err := s.uc.Get(s.ctx, "user-1")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "grower", profile.Username)
	assert.Equal(s.T(), int64(150), profile.StarsReceived)
	s.items.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ProfileUsecaseTestSuite) TestSetUsername_Success() {
	user := &authModel.User{ID: "user-1", Email: "u@example.com", Username: "old-name"}
	s.users.On("GetUserByID", mock.Anything, "user-1").Return(user, nil)
	s.users.On("GetUserByUsername", mock.Anything, "grower").Return(nil, authModel.ErrUserNotFound)
	s.users.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *authModel.User) bool {
		return u.Username == "grower"
	})).Return(nil)
	s.expectNoStars("user-1")

	profile, err := s.uc.SetUsername(s.ctx, "user-1", "  Grower  ")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "grower", profile.Username)
}

func (s *ProfileUsecaseTestSuite) TestSetUsername_AllDigitNamesAreReserved() {
	_, err := s.uc.SetUsername(s.ctx, "user-1", "12345")
	assert.ErrorIs(s.T(), err, authModel.ErrUsernameReserved)
	s.users.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (s *ProfileUsecaseTestSuite) TestSetUsername_OwnPlaceholderAllowed() {
	// the placeholder digits derived from the caller's own ID stay claimable
	userID := "aaaaaaaaaaaa123456789012"
	placeholder := authModel.InitialUsername(userID)
	require.Equal(s.T(), "123456789012", placeholder)

	user := &authModel.User{ID: userID, Username: "grower"}
	s.users.On("GetUserByID", mock.Anything, userID).Return(user, nil)
	s.users.On("GetUserByUsername", mock.Anything, placeholder).Return(nil, authModel.ErrUserNotFound)
	s.users.On("UpdateUser", mock.Anything, mock.Anything).Return(nil)
	s.expectNoStars(userID)

	profile, err := s.uc.SetUsername(s.ctx, userID, placeholder)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), placeholder, profile.Username)
}

func (s *ProfileUsecaseTestSuite) TestSetUsername_Taken() {
	s.users.On("GetUserByID", mock.Anything, "user-1").Return(&authModel.User{ID: "user-1"}, nil)
	s.users.On("GetUserByUsername", mock.Anything, "grower").Return(&authModel.User{ID: "user-2", Username: "grower"}, nil)

	_, err := s.uc.SetUsername(s.ctx, "user-1", "grower")
	assert.ErrorIs(s.T(), err, authModel.ErrUsernameTaken)
}

func (s *ProfileUsecaseTestSuite) TestSetUsername_KeepingOwnNameIsNotTaken() {
	user := &authModel.User{ID: "user-1", Username: "grower"}
	s.users.On("GetUserByID", mock.Anything, "user-1").Return(user, nil)
	s.users.On("GetUserByUsername", mock.Anything, "grower").Return(user, nil)
	s.users.On("UpdateUser", mock.Anything, mock.Anything).Return(nil)
	s.expectNoStars("user-1")

	_, err := s.uc.SetUsername(s.ctx, "user-1", "grower")
	assert.NoError(s.T(), err)
}

func (s *ProfileUsecaseTestSuite) TestSetUsername_InvalidFormat() {
	_, err := s.uc.SetUsername(s.ctx, "user-1", "has space")
	assert.ErrorIs(s.T(), err, authModel.ErrUsernameInvalid)
}

func (s *ProfileUsecaseTestSuite) TestSetAvatar_Success() {
	user := &authModel.User{ID: "user-1", Username: "grower"}
	s.users.On("GetUserByID", mock.Anything, "user-1").Return(user, nil)
	s.avatars.On("SaveAvatar", "user-1", jpegBytes).Return("user-1.jpg", nil)
	s.users.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *authModel.User) bool {
		return u.AvatarFilename == "user-1.jpg"
	})).Return(nil)
	s.expectNoStars("user-1")

	profile, err := s.uc.SetAvatar(s.ctx, "user-1", jpegBytes)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "user-1.jpg", profile.AvatarFilename)
}

func (s *ProfileUsecaseTestSuite) TestSetAvatar_TooLarge() {
	_, err := s.uc.SetAvatar(s.ctx, "user-1", make([]byte, 2048))
	assert.ErrorIs(s.T(), err, model.ErrImageTooLarge)
	s.avatars.AssertNotCalled(s.T(), "SaveAvatar", mock.Anything, mock.Anything)
}

func (s *ProfileUsecaseTestSuite) TestSetAvatar_RejectsNonImage() {
	_, err := s.uc.SetAvatar(s.ctx, "user-1", []byte("plain text, not an image"))
	assert.ErrorIs(s.T(), err, model.ErrImageTypeInvalid)
}

func (s *ProfileUsecaseTestSuite) TestGetPublic_ListsOnlyPublicCollections() {
	s.users.On("GetUserByUsername", mock.Anything, "grower").Return(&authModel.User{
		ID: "user-1", Username: "grower",
	}, nil)
	s.collections.On("ListByOwner", mock.Anything, "user-1").Return([]*model.Collection{
		{ID: "col-1", OwnerID: "user-1", Name: "Coins", IsPublic: true},
		{ID: "col-2", OwnerID: "user-1", Name: "Secret", IsPublic: false},
	}, nil)
	s.items.On("List", mock.Anything, "col-1", mock.MatchedBy(func(q model.ItemQuery) bool {
		return !q.IncludeDrafts
	})).Return(&model.ItemPage{Total: 7}, nil)
	s.items.On("List", mock.Anything, "col-1", mock.MatchedBy(func(q model.ItemQuery) bool {
		return q.IncludeDrafts
	})).Return(&model.ItemPage{Total: 9}, nil)
	s.stars.On("Count", mock.Anything, model.StarTargetCollection, "col-1").Return(int64(2), nil)
	s.stars.On("CountByOwner", mock.Anything, "user-1").Return(int64(2), nil)
	s.stars.On("RankByOwner", mock.Anything, "user-1").Return(int64(4), nil)

	public, err := s.uc.GetPublic(s.ctx, "Grower")

	require.NoError(s.T(), err)
	require.Len(s.T(), public.Collections, 1)
	assert.Equal(s.T(), "col-1", public.Collections[0].ID)
	assert.Equal(s.T(), int64(7), public.Collections[0].ItemCount)
	assert.Equal(s.T(), int64(2), public.StarsReceived)
	s.items.AssertNotCalled(s.T(), "List", mock.Anything, "col-2", mock.Anything)
}

func (s *ProfileUsecaseTestSuite) TestGetPublic_CountsAndRank() {
	s.users.On("GetUserByUsername", mock.Anything, "grower").Return(&authModel.User{
		ID: "user-1", Username: "grower",
	}, nil)
	s.collections.On("ListByOwner", mock.Anything, "user-1").Return([]*model.Collection{
		{ID: "col-1", OwnerID: "user-1", Name: "Coins", IsPublic: true},
		{ID: "col-2", OwnerID: "user-1", Name: "Stamps", IsPublic: true},
		{ID: "col-3", OwnerID: "user-1", Name: "Secret", IsPublic: false},
	}, nil)
	s.items.On("List", mock.Anything, "col-1", mock.MatchedBy(func(q model.ItemQuery) bool {
		return !q.IncludeDrafts
	})).Return(&model.ItemPage{Total: 7}, nil)
	// the public item total counts drafts too; the per-collection item
	// count does not
	s.items.On("List", mock.Anything, "col-1", mock.MatchedBy(func(q model.ItemQuery) bool {
		return q.IncludeDrafts
	})).Return(&model.ItemPage{Total: 9}, nil)
	s.items.On("List", mock.Anything, "col-2", mock.Anything).Return(&model.ItemPage{Total: 3}, nil)
	s.stars.On("Count", mock.Anything, model.StarTargetCollection, "col-1").Return(int64(2), nil)
	s.stars.On("Count", mock.Anything, model.StarTargetCollection, "col-2").Return(int64(0), nil)
	s.stars.On("CountByOwner", mock.Anything, "user-1").Return(int64(11), nil)
	s.stars.On("RankByOwner", mock.Anything, "user-1").Return(int64(3), nil)

	public, err := s.uc.GetPublic(s.ctx, "grower")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), public.PublicCollectionCount)
	assert.Equal(s.T(), int64(12), public.PublicItemCount)
	assert.Equal(s.T(), int64(11), public.StarsReceived)
	assert.Equal(s.T(), int64(3), public.StarRank)
}

func TestProfileUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileUsecaseTestSuite))
}
