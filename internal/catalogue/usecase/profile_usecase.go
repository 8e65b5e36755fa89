package usecase

import (
	"context"
	"net/http"
	"os"
	"regexp"

	authModel "curiovault/internal/auth/domain/model"
	authRepository "curiovault/internal/auth/domain/repository"
	"curiovault/internal/catalogue/domain/model"
	"curiovault/internal/catalogue/domain/repository"
	"curiovault/internal/shared/logger"
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// Profile is the caller's own account view with star totals.
type Profile struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	AvatarFilename string `json:"avatar_filename,omitempty"`
	StarsReceived  int64  `json:"stars_received"`
}

// PublicProfile is what anyone can see about a user.
type PublicProfile struct {
	Username              string               `json:"username"`
	AvatarFilename        string               `json:"avatar_filename,omitempty"`
	StarsReceived         int64                `json:"stars_received"`
	StarRank              int64                `json:"star_rank"`
	PublicCollectionCount int64                `json:"public_collection_count"`
	PublicItemCount       int64                `json:"public_item_count"`
	Collections           []*CollectionSummary `json:"collections"`
}

// AvatarStore stores avatar files.
type AvatarStore interface {
	SaveAvatar(userID string, data []byte) (string, error)
	Open(relPath string) (*os.File, error)
}

// ProfileUsecaseInterface defines profile operations.
type ProfileUsecaseInterface interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	SetUsername(ctx context.Context, userID, username string) (*Profile, error)
	SetAvatar(ctx context.Context, userID string, data []byte) (*Profile, error)
	GetPublic(ctx context.Context, username string) (*PublicProfile, error)
}

// ProfileUsecase implements profile operations on top of the auth user store.
type ProfileUsecase struct {
	users       authRepository.AuthRepository
	collections repository.CollectionRepository
	items       repository.ItemRepository
	stars       repository.StarRepository
	avatars     AvatarStore
	maxBytes    int64
	logger      logger.Logger
}

// NewProfileUsecase creates a profile usecase.
func NewProfileUsecase(
	users authRepository.AuthRepository,
	collections repository.CollectionRepository,
	items repository.ItemRepository,
	stars repository.StarRepository,
	avatars AvatarStore,
	maxBytes int64,
	log logger.Logger,
) *ProfileUsecase {
	return &ProfileUsecase{
		users:       users,
		collections: collections,
		items:       items,
		stars:       stars,
		avatars:     avatars,
		maxBytes:    maxBytes,
		logger:      log.WithComponent("profile_usecase"),
	}
}

// Username resolves a user ID to its username for feed entries.
func (uc *ProfileUsecase) Username(ctx context.Context, userID string) (string, error) {
	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// Get returns the caller's own profile.
func (uc *ProfileUsecase) Get(ctx context.Context, userID string) (*Profile, error) {
	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	received, err := uc.stars.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:             user.ID,
		Email:          user.Email,
		Username:       user.Username,
		AvatarFilename: user.AvatarFilename,
		StarsReceived:  received,
	}, nil
}

// SetUsername changes the caller's username. All-digit names are reserved
// except the placeholder derived from the caller's own ID.
func (uc *ProfileUsecase) SetUsername(ctx context.Context, userID, username string) (*Profile, error) {
	normalized := authModel.NormalizeUsername(username)
	if digitsOnly.MatchString(normalized) {
		if normalized != authModel.InitialUsername(userID) {
			return nil, authModel.ErrUsernameReserved
		}
	} else if err := authModel.ValidateUsername(normalized); err != nil {
		return nil, err
	}

	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if other, err := uc.users.GetUserByUsername(ctx, normalized); err == nil && other.ID != userID {
		return nil, authModel.ErrUsernameTaken
	}

	user.Username = normalized
	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return uc.Get(ctx, userID)
}

// SetAvatar replaces the caller's avatar with a thumb rendition of the
// upload.
func (uc *ProfileUsecase) SetAvatar(ctx context.Context, userID string, data []byte) (*Profile, error) {
	if int64(len(data)) > uc.maxBytes {
		return nil, model.ErrImageTooLarge
	}
	if !allowedImageTypes[http.DetectContentType(data)] {
		return nil, model.ErrImageTypeInvalid
	}

	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filename, err := uc.avatars.SaveAvatar(userID, data)
	if err != nil {
		return nil, err
	}

	user.AvatarFilename = filename
	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return uc.Get(ctx, userID)
}

// GetPublic returns a user's public profile: their public collections,
// star totals and leaderboard rank.
func (uc *ProfileUsecase) GetPublic(ctx context.Context, username string) (*PublicProfile, error) {
	user, err := uc.users.GetUserByUsername(ctx, authModel.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}

	collections, err := uc.collections.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	received, err := uc.stars.CountByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	rank, err := uc.stars.RankByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	public := make([]*CollectionSummary, 0)
	var itemTotal int64
	for _, collection := range collections {
		if !collection.IsPublic {
			continue
		}
		visible, err := uc.items.List(ctx, collection.ID, model.ItemQuery{Limit: 1})
		if err != nil {
			return nil, err
		}
		all, err := uc.items.List(ctx, collection.ID, model.ItemQuery{Limit: 1, IncludeDrafts: true})
		if err != nil {
			return nil, err
		}
		itemTotal += all.Total
		starCount, err := uc.stars.Count(ctx, model.StarTargetCollection, collection.ID)
		if err != nil {
			return nil, err
		}
		public = append(public, &CollectionSummary{
			Collection: collection,
			ItemCount:  visible.Total,
			StarCount:  starCount,
		})
	}

	return &PublicProfile{
		Username:              user.Username,
		AvatarFilename:        user.AvatarFilename,
		StarsReceived:         received,
		StarRank:              rank,
		PublicCollectionCount: int64(len(public)),
		PublicItemCount:       itemTotal,
		Collections:           public,
	}, nil
}

var (
	_ ProfileUsecaseInterface = (*ProfileUsecase)(nil)
	_ UsernameResolver        = (*ProfileUsecase)(nil)
)
