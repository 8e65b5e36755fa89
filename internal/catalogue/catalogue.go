package catalogue

import (
	"fmt"

	authhttp "curiovault/internal/auth/adapter/http"
	authRepository "curiovault/internal/auth/domain/repository"
	cataloguehttp "curiovault/internal/catalogue/adapter/http"
	"curiovault/internal/catalogue/adapter/persistence/mongodb"
	redisstore "curiovault/internal/catalogue/adapter/persistence/redis"
	"curiovault/internal/catalogue/adapter/storage"
	"curiovault/internal/catalogue/config"
	"curiovault/internal/catalogue/usecase"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogueModule wires the catalogue's repositories, usecases and handlers.
type CatalogueModule struct {
	handler  *cataloguehttp.CatalogueHTTPHandler
	activity *usecase.ActivityUsecase
	config   *config.Config
}

// NewCatalogueModule creates the catalogue module.
func NewCatalogueModule(
	db *mongo.Database,
	redisClient *redis.Client,
	users authRepository.AuthRepository,
	cfg *config.Config,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) (*CatalogueModule, error) {
	collections, err := mongodb.NewMongoCollectionRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection repository: %w", err)
	}
	fields, err := mongodb.NewMongoFieldRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create field repository: %w", err)
	}
	items, err := mongodb.NewMongoItemRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create item repository: %w", err)
	}
	images, err := mongodb.NewMongoImageRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create image repository: %w", err)
	}
	stars, err := mongodb.NewMongoStarRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create star repository: %w", err)
	}
	templates, err := mongodb.NewMongoTemplateRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create template repository: %w", err)
	}

	files, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create image store: %w", err)
	}

	activityStore := redisstore.NewRedisActivityStore(redisClient, cfg.ActivityCap, log)

	collectionUC := usecase.NewCollectionUsecase(collections, fields, items, images, stars, files, bus, log)
	fieldUC := usecase.NewFieldUsecase(collections, fields, log)
	itemUC := usecase.NewItemUsecase(collections, fields, items, images, stars, files, bus, log)
	imageUC := usecase.NewImageUsecase(collections, items, images, files, cfg.MaxImageBytes, log)
	starUC := usecase.NewStarUsecase(collections, items, stars, bus, log)
	templateUC := usecase.NewTemplateUsecase(collections, fields, templates, bus, log)
	captureUC := usecase.NewCaptureUsecase(collections, items, images, imageUC, bus, log)
	profileUC := usecase.NewProfileUsecase(users, collections, items, stars, files, cfg.MaxImageBytes, log)
	publicUC := usecase.NewPublicUsecase(collections, fields, items, images, stars, log)
	adminUC := usecase.NewAdminUsecase(users, collections, items, images, stars, templates, collectionUC, publicUC, log)
	activityUC := usecase.NewActivityUsecase(activityStore, profileUC, bus, log)

	handler := cataloguehttp.NewCatalogueHTTPHandler(
		collectionUC, fieldUC, itemUC, imageUC, starUC, templateUC,
		activityUC, captureUC, profileUC, adminUC, publicUC, log)

	return &CatalogueModule{
		handler:  handler,
		activity: activityUC,
		config:   cfg,
	}, nil
}

// RegisterRoutes registers catalogue routes with the provided router.
func (cm *CatalogueModule) RegisterRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	cm.handler.SetupRoutes(router, middleware)
}

// Stop performs cleanup when the module is shut down.
func (cm *CatalogueModule) Stop() error {
	return nil
}
