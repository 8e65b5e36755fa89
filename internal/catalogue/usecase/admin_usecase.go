package usecase

import (
	"context"

	authModel "curiovault/internal/auth/domain/model"
	authRepository "curiovault/internal/auth/domain/repository"
	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	appErrors "curiovault/internal/shared/errors"
	"curiovault/internal/shared/logger"
)

const featuredItemLimit = 4

// AdminStats is the admin dashboard headline numbers.
type AdminStats struct {
	Users       int64 `json:"users"`
	Collections int64 `json:"collections"`
	Items       int64 `json:"items"`
	Images      int64 `json:"images"`
}

// AdminUserPage is one page of the admin user list.
type AdminUserPage struct {
	Users  []*authModel.User `json:"users"`
	Total  int64             `json:"total"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
}

// AdminCollectionPage is one page of the admin collection list.
type AdminCollectionPage struct {
	Collections []*model.Collection `json:"collections"`
	Total       int64               `json:"total"`
	Offset      int                 `json:"offset"`
	Limit       int                 `json:"limit"`
}

// AdminUsecaseInterface defines the admin surface.
type AdminUsecaseInterface interface {
	Stats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, query string, offset, limit int) (*AdminUserPage, error)
	DeleteUser(ctx context.Context, userID string) error
	LockUser(ctx context.Context, userID string, locked bool) (*authModel.User, error)
	ListCollections(ctx context.Context, offset, limit int) (*AdminCollectionPage, error)
	DeleteCollection(ctx context.Context, collectionID string) error
	SetFeaturedCollection(ctx context.Context, collectionID string) (*FeaturedView, error)
	SetFeaturedItems(ctx context.Context, itemIDs []string) (*FeaturedView, error)
}

// AdminUsecase implements the admin surface.
type AdminUsecase struct {
	users         authRepository.AuthRepository
	collections   repository.CollectionRepository
	items         repository.ItemRepository
	images        repository.ImageRepository
	stars         repository.StarRepository
	templates     repository.TemplateRepository
	collectionUC  CollectionUsecaseInterface
	publicContent PublicUsecaseInterface
	logger        logger.Logger
}

// NewAdminUsecase creates an admin usecase.
func NewAdminUsecase(
	users authRepository.AuthRepository,
	collections repository.CollectionRepository,
	items repository.ItemRepository,
	images repository.ImageRepository,
	stars repository.StarRepository,
	templates repository.TemplateRepository,
	collectionUC CollectionUsecaseInterface,
	publicContent PublicUsecaseInterface,
	log logger.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		users:         users,
		collections:   collections,
		items:         items,
		images:        images,
		stars:         stars,
		templates:     templates,
		collectionUC:  collectionUC,
		publicContent: publicContent,
		logger:        log.WithComponent("admin_usecase"),
	}
}

// Stats returns headline counts.
func (uc *AdminUsecase) Stats(ctx context.Context) (*AdminStats, error) {
	users, err := uc.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	collections, err := uc.collections.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.Count(ctx)
	if err != nil {
		return nil, err
	}
	images, err := uc.images.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{Users: users, Collections: collections, Items: items, Images: images}, nil
}

// ListUsers pages accounts, optionally filtering by an email or username
// substring.
func (uc *AdminUsecase) ListUsers(ctx context.Context, query string, offset, limit int) (*AdminUserPage, error) {
	if limit <= 0 {
		limit = defaultItemLimit
	}
	if limit > maxItemLimit {
		limit = maxItemLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := uc.users.ListUsers(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	return &AdminUserPage{Users: users, Total: total, Offset: offset, Limit: limit}, nil
}

// DeleteUser removes an account and everything it owns.
func (uc *AdminUsecase) DeleteUser(ctx context.Context, userID string) error {
	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	collections, err := uc.collections.ListByOwner(ctx, userID)
	if err != nil {
		return err
	}
	for _, collection := range collections {
		if err := uc.collectionUC.Delete(ctx, userID, collection.ID); err != nil {
			return err
		}
	}

	templates, err := uc.templates.ListByOwner(ctx, userID)
	if err != nil {
		return err
	}
	for _, template := range templates {
		if err := uc.templates.Delete(ctx, template.ID); err != nil {
			return err
		}
	}

	if err := uc.stars.DeleteByUser(ctx, userID); err != nil {
		return err
	}

	uc.logger.Infof("Admin removed account %s (%s)", user.ID, user.Email)
	return uc.users.DeleteUser(ctx, userID)
}

// LockUser sets or clears the account lock.
func (uc *AdminUsecase) LockUser(ctx context.Context, userID string, locked bool) (*authModel.User, error) {
	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !locked
	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListCollections pages every collection.
func (uc *AdminUsecase) ListCollections(ctx context.Context, offset, limit int) (*AdminCollectionPage, error) {
	if limit <= 0 {
		limit = defaultItemLimit
	}
	if limit > maxItemLimit {
		limit = maxItemLimit
	}
	if offset < 0 {
		offset = 0
	}

	collections, total, err := uc.collections.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &AdminCollectionPage{Collections: collections, Total: total, Offset: offset, Limit: limit}, nil
}

// DeleteCollection removes any collection with the owner cascade.
func (uc *AdminUsecase) DeleteCollection(ctx context.Context, collectionID string) error {
	collection, err := uc.collections.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	return uc.collectionUC.Delete(ctx, collection.OwnerID, collectionID)
}

// SetFeaturedCollection promotes one public collection to the landing page.
// Every previous featured flag is cleared; the collection's four newest
// published items become the featured set.
func (uc *AdminUsecase) SetFeaturedCollection(ctx context.Context, collectionID string) (*FeaturedView, error) {
	collection, err := uc.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if !collection.IsPublic {
		return nil, model.ErrNotPublic
	}

	if err := uc.collections.ClearFeatured(ctx); err != nil {
		return nil, err
	}
	if err := uc.items.ClearFeatured(ctx); err != nil {
		return nil, err
	}

	collection.IsFeatured = true
	if err := uc.collections.Update(ctx, collection); err != nil {
		return nil, err
	}

	newest, err := uc.items.NewestNonDrafts(ctx, collectionID, featuredItemLimit)
	if err != nil {
		return nil, err
	}
	itemIDs := make([]string, 0, len(newest))
	for _, item := range newest {
		itemIDs = append(itemIDs, item.ID)
	}
	if err := uc.items.SetFeatured(ctx, collectionID, itemIDs); err != nil {
		return nil, err
	}

	return uc.publicContent.Featured(ctx)
}

// SetFeaturedItems replaces the featured item set. All items must belong to
// the featured collection and be published.
func (uc *AdminUsecase) SetFeaturedItems(ctx context.Context, itemIDs []string) (*FeaturedView, error) {
	ve := appErrors.NewValidationErrors()
	if len(itemIDs) > featuredItemLimit {
		ve.Add("item_ids", "at most four items can be featured", len(itemIDs))
		return nil, ve
	}

	featured, err := uc.collections.GetFeatured(ctx)
	if err != nil {
		if err == model.ErrCollectionNotFound {
			ve.Add("item_ids", "no collection is featured", nil)
			return nil, ve
		}
		return nil, err
	}

	for _, itemID := range itemIDs {
		item, err := uc.items.GetByID(ctx, itemID)
		if err != nil {
			ve.Add("item_ids", "item not found", itemID)
			continue
		}
		if item.CollectionID != featured.ID {
			ve.Add("item_ids", "item is not in the featured collection", itemID)
		}
		if item.IsDraft {
			ve.Add("item_ids", "draft items cannot be featured", itemID)
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if err := uc.items.SetFeatured(ctx, featured.ID, itemIDs); err != nil {
		return nil, err
	}
	return uc.publicContent.Featured(ctx)
}

var _ AdminUsecaseInterface = (*AdminUsecase)(nil)
