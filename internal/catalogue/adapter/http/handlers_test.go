package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	authHTTP "curiovault/internal/auth/adapter/http"
	authModel "curiovault/internal/auth/domain/model"
	authRepository "curiovault/internal/auth/domain/repository"
	authUsecase "curiovault/internal/auth/usecase"
	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/usecase"
	appErrors "curiovault/internal/shared/errors"
	"curiovault/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	userToken  = "valid-user-token"
	adminToken = "valid-admin-token"
	testUserID = "user-1"
)

// stubAuth validates the two fixed test tokens. Everything else on the auth
// surface is unused by the catalogue routes.
type stubAuth struct{}

func (stubAuth) Register(ctx context.Context, req authUsecase.RegisterRequest) (*authModel.User, error) {
	return nil, authModel.ErrUserNotFound
}

func (stubAuth) Login(ctx context.Context, req authUsecase.LoginRequest) (*authModel.User, *authUsecase.TokenPair, error) {
	return nil, nil, authModel.ErrUserNotFound
}

func (stubAuth) Refresh(ctx context.Context, refreshToken string) (*authModel.User, *authUsecase.TokenPair, error) {
	return nil, nil, authUsecase.ErrTokenInvalid
}

func (stubAuth) VerifyEmail(ctx context.Context, token string) error { return nil }

func (stubAuth) ResendVerification(ctx context.Context, email string) error { return nil }

func (stubAuth) ForgotPassword(ctx context.Context, email string) error { return nil }

func (stubAuth) ResetPassword(ctx context.Context, token, pass string) error { return nil }
func (stubAuth) AdminLogin(ctx context.Context, email, pass string) (string, error) {
	return "", authModel.ErrInvalidPassword
}

func (stubAuth) GetUserByID(ctx context.Context, userID string) (*authModel.User, error) {
	return &authModel.User{ID: userID, IsActive: true, IsVerified: true}, nil
}

func (stubAuth) ValidateToken(ctx context.Context, tokenString string) (*authRepository.Claims, error) {
	switch tokenString {
	case userToken:
		return &authRepository.Claims{
			UserID:    testUserID,
			Email:     "u@example.com",
			Role:      authRepository.RoleUser,
			TokenType: authRepository.TokenTypeAccess,
		}, nil
	case adminToken:
		return &authRepository.Claims{
			Email:     "admin@example.com",
			Role:      authRepository.RoleAdmin,
			TokenType: authRepository.TokenTypeAdmin,
		}, nil
	}
	return nil, authUsecase.ErrTokenInvalid
}

type mockCollections struct {
	mock.Mock
}

func (m *mockCollections) Create(ctx context.Context, ownerID, name, description string, isPublic bool) (*model.Collection, error) {
	args := m.Called(ctx, ownerID, name, description, isPublic)
	if c := args.Get(0); c != nil {
		return c.(*model.Collection), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollections) Get(ctx context.Context, callerID, id string) (*usecase.CollectionDetail, error) {
	args := m.Called(ctx, callerID, id)
	if c := args.Get(0); c != nil {
		return c.(*usecase.CollectionDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollections) ListOwn(ctx context.Context, ownerID string) ([]*usecase.CollectionSummary, error) {
	args := m.Called(ctx, ownerID)
	if c := args.Get(0); c != nil {
		return c.([]*usecase.CollectionSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollections) Update(ctx context.Context, callerID, id string, name, description *string, isPublic *bool) (*model.Collection, error) {
	args := m.Called(ctx, callerID, id, name, description, isPublic)
	if c := args.Get(0); c != nil {
		return c.(*model.Collection), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollections) Delete(ctx context.Context, callerID, id string) error {
	return m.Called(ctx, callerID, id).Error(0)
}

type mockPublic struct {
	mock.Mock
}

func (m *mockPublic) GetCollection(ctx context.Context, id string) (*usecase.PublicCollection, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*usecase.PublicCollection), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPublic) ListItems(ctx context.Context, collectionID string, params usecase.ListParams) (*usecase.PublicItemPage, error) {
	args := m.Called(ctx, collectionID, params)
	if p := args.Get(0); p != nil {
		return p.(*usecase.PublicItemPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPublic) GetItem(ctx context.Context, itemID string) (*usecase.PublicItem, error) {
	args := m.Called(ctx, itemID)
	if i := args.Get(0); i != nil {
		return i.(*usecase.PublicItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPublic) Featured(ctx context.Context) (*usecase.FeaturedView, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*usecase.FeaturedView), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAdmin struct {
	mock.Mock
}

func (m *mockAdmin) Stats(ctx context.Context) (*usecase.AdminStats, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*usecase.AdminStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdmin) ListUsers(ctx context.Context, query string, offset, limit int) (*usecase.AdminUserPage, error) {
	args := m.Called(ctx, query, offset, limit)
	if p := args.Get(0); p != nil {
		return p.(*usecase.AdminUserPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdmin) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAdmin) LockUser(ctx context.Context, userID string, locked bool) (*authModel.User, error) {
	args := m.Called(ctx, userID, locked)
	if u := args.Get(0); u != nil {
		return u.(*authModel.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdmin) ListCollections(ctx context.Context, offset, limit int) (*usecase.AdminCollectionPage, error) {
	args := m.Called(ctx, offset, limit)
	if p := args.Get(0); p != nil {
		return p.(*usecase.AdminCollectionPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdmin) DeleteCollection(ctx context.Context, collectionID string) error {
	return m.Called(ctx, collectionID).Error(0)
}

func (m *mockAdmin) SetFeaturedCollection(ctx context.Context, collectionID string) (*usecase.FeaturedView, error) {
	args := m.Called(ctx, collectionID)
	if v := args.Get(0); v != nil {
		return v.(*usecase.FeaturedView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdmin) SetFeaturedItems(ctx context.Context, itemIDs []string) (*usecase.FeaturedView, error) {
	args := m.Called(ctx, itemIDs)
	if v := args.Get(0); v != nil {
		return v.(*usecase.FeaturedView), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ authUsecase.AuthUsecaseInterface   = stubAuth{}
	_ usecase.CollectionUsecaseInterface = (*mockCollections)(nil)
	_ usecase.PublicUsecaseInterface     = (*mockPublic)(nil)
	_ usecase.AdminUsecaseInterface      = (*mockAdmin)(nil)
)

type CatalogueHTTPTestSuite struct {
	suite.Suite
	app         *fiber.App
	collections *mockCollections
	public      *mockPublic
	admin       *mockAdmin
}

func (s *CatalogueHTTPTestSuite) SetupTest() {
	s.collections = new(mockCollections)
	s.public = new(mockPublic)
	s.admin = new(mockAdmin)
	s.app = fiber.New()

	handler := NewCatalogueHTTPHandler(
		s.collections, nil, nil, nil, nil, nil, nil, nil, nil,
		s.admin, s.public, logger.NewLogger(),
	)
	middleware := authHTTP.NewAuthMiddleware(stubAuth{})
	handler.SetupRoutes(s.app, middleware)
}

func (s *CatalogueHTTPTestSuite) request(method, path, token string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *CatalogueHTTPTestSuite) decode(resp *http.Response) map[string]interface{} {
	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(data, &body))
	return body
}

func (s *CatalogueHTTPTestSuite) TestCreateCollection_RequiresAuth() {
	resp := s.request(http.MethodPost, "/collections/", "", fiber.Map{"name": "Coins"})
	assert.Equal(s.T(), fiber.StatusUnauthorized, resp.StatusCode)
	s.collections.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CatalogueHTTPTestSuite) TestCreateCollection_Success() {
	s.collections.On("Create", mock.Anything, testUserID, "Coins", "Meiji era", true).
		Return(&model.Collection{ID: "col-1", OwnerID: testUserID, Name: "Coins", IsPublic: true}, nil)

	resp := s.request(http.MethodPost, "/collections/", userToken, fiber.Map{
		"name": "Coins", "description": "Meiji era", "is_public": true,
	})

	assert.Equal(s.T(), fiber.StatusCreated, resp.StatusCode)
	body := s.decode(resp)
	assert.Equal(s.T(), "col-1", body["id"])
}

func (s *CatalogueHTTPTestSuite) TestCreateCollection_ValidationErrorCarriesFields() {
	ve := appErrors.NewValidationErrors()
	ve.Add("name", "collection name is required", "")
	s.collections.On("Create", mock.Anything, testUserID, "", "", false).Return(nil, ve)

	resp := s.request(http.MethodPost, "/collections/", userToken, fiber.Map{})

	assert.Equal(s.T(), fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := s.decode(resp)
	assert.Equal(s.T(), "Validation failed", body["error"])
	assert.NotEmpty(s.T(), body["fields"])
}

func (s *CatalogueHTTPTestSuite) TestGetCollection_AnonymousSeesPublic() {
	s.collections.On("Get", mock.Anything, "", "col-1").Return(&usecase.CollectionDetail{
		Collection: &model.Collection{ID: "col-1", Name: "Coins", IsPublic: true},
	}, nil)

	resp := s.request(http.MethodGet, "/collections/col-1", "", nil)
	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
}

func (s *CatalogueHTTPTestSuite) TestGetCollection_InvalidTokenFallsThroughToAnonymous() {
	s.collections.On("Get", mock.Anything, "", "col-1").Return(nil, model.ErrCollectionNotFound)

	resp := s.request(http.MethodGet, "/collections/col-1", "garbage-token", nil)
	assert.Equal(s.T(), fiber.StatusNotFound, resp.StatusCode)
}

func (s *CatalogueHTTPTestSuite) TestGetCollection_AuthenticatedCallerIDPropagates() {
	s.collections.On("Get", mock.Anything, testUserID, "col-1").Return(&usecase.CollectionDetail{
		Collection: &model.Collection{ID: "col-1", OwnerID: testUserID, Name: "Coins"},
	}, nil)

	resp := s.request(http.MethodGet, "/collections/col-1", userToken, nil)
	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	s.collections.AssertExpectations(s.T())
}

func (s *CatalogueHTTPTestSuite) TestUpdateCollection_NotOwnerMapsToForbidden() {
	s.collections.On("Update", mock.Anything, testUserID, "col-1",
		mock.Anything, mock.Anything, mock.Anything).Return(nil, model.ErrNotOwner)

	resp := s.request(http.MethodPatch, "/collections/col-1", userToken, fiber.Map{"name": "Hijack"})
	assert.Equal(s.T(), fiber.StatusForbidden, resp.StatusCode)
}

func (s *CatalogueHTTPTestSuite) TestDeleteCollection_NoContent() {
	s.collections.On("Delete", mock.Anything, testUserID, "col-1").Return(nil)

	resp := s.request(http.MethodDelete, "/collections/col-1", userToken, nil)
	assert.Equal(s.T(), fiber.StatusNoContent, resp.StatusCode)
}

func (s *CatalogueHTTPTestSuite) TestAdminStats_RejectsUserToken() {
	resp := s.request(http.MethodGet, "/admin/stats", userToken, nil)
	assert.Equal(s.T(), fiber.StatusForbidden, resp.StatusCode)
	s.admin.AssertNotCalled(s.T(), "Stats", mock.Anything)
}

func (s *CatalogueHTTPTestSuite) TestAdminStats_Success() {
	s.admin.On("Stats", mock.Anything).Return(&usecase.AdminStats{Users: 10, Collections: 3}, nil)

	resp := s.request(http.MethodGet, "/admin/stats", adminToken, nil)
	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	body := s.decode(resp)
	assert.EqualValues(s.T(), 10, body["users"])
}

func (s *CatalogueHTTPTestSuite) TestAdminSetFeaturedCollection_RequiresID() {
	resp := s.request(http.MethodPost, "/admin/featured-collection", adminToken, fiber.Map{})
	assert.Equal(s.T(), fiber.StatusBadRequest, resp.StatusCode)
}

func (s *CatalogueHTTPTestSuite) TestAdminSetFeaturedCollection_NotPublic() {
	s.admin.On("SetFeaturedCollection", mock.Anything, "col-1").Return(nil, model.ErrNotPublic)

	resp := s.request(http.MethodPost, "/admin/featured-collection", adminToken,
		fiber.Map{"collection_id": "col-1"})
	assert.Equal(s.T(), fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *CatalogueHTTPTestSuite) TestAdminLockUser_RequiresFlag() {
	resp := s.request(http.MethodPost, "/admin/users/user-2/lock", adminToken, fiber.Map{})
	assert.Equal(s.T(), fiber.StatusBadRequest, resp.StatusCode)
}

func (s *CatalogueHTTPTestSuite) TestFeatured_OpenToAnonymous() {
	s.public.On("Featured", mock.Anything).Return(&usecase.FeaturedView{}, nil)

	resp := s.request(http.MethodGet, "/featured", "", nil)
	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
}

func (s *CatalogueHTTPTestSuite) TestPublicCollection_NotFound() {
	s.public.On("GetCollection", mock.Anything, "col-x").Return(nil, model.ErrCollectionNotFound)

	resp := s.request(http.MethodGet, "/public/collections/col-x", "", nil)
	assert.Equal(s.T(), fiber.StatusNotFound, resp.StatusCode)
}

func TestCatalogueHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogueHTTPTestSuite))
}
