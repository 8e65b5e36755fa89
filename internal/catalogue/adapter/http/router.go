package http

import (
	authHTTP "curiovault/internal/auth/adapter/http"
	"curiovault/internal/catalogue/usecase"
	"curiovault/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// CatalogueHTTPHandler handles HTTP requests for the catalogue module.
type CatalogueHTTPHandler struct {
	collections usecase.CollectionUsecaseInterface
	fields      usecase.FieldUsecaseInterface
	items       usecase.ItemUsecaseInterface
	images      usecase.ImageUsecaseInterface
	stars       usecase.StarUsecaseInterface
	templates   usecase.TemplateUsecaseInterface
	activity    *usecase.ActivityUsecase
	capture     usecase.CaptureUsecaseInterface
	profiles    usecase.ProfileUsecaseInterface
	admin       usecase.AdminUsecaseInterface
	public      usecase.PublicUsecaseInterface
	logger      logger.Logger
}

// NewCatalogueHTTPHandler creates the catalogue HTTP handler.
func NewCatalogueHTTPHandler(
	collections usecase.CollectionUsecaseInterface,
	fields usecase.FieldUsecaseInterface,
	items usecase.ItemUsecaseInterface,
	images usecase.ImageUsecaseInterface,
	stars usecase.StarUsecaseInterface,
	templates usecase.TemplateUsecaseInterface,
	activity *usecase.ActivityUsecase,
	capture usecase.CaptureUsecaseInterface,
	profiles usecase.ProfileUsecaseInterface,
	admin usecase.AdminUsecaseInterface,
	public usecase.PublicUsecaseInterface,
	log logger.Logger,
) *CatalogueHTTPHandler {
	return &CatalogueHTTPHandler{
		collections: collections,
		fields:      fields,
		items:       items,
		images:      images,
		stars:       stars,
		templates:   templates,
		activity:    activity,
		capture:     capture,
		profiles:    profiles,
		admin:       admin,
		public:      public,
		logger:      log.WithComponent("catalogue_http"),
	}
}

// SetupRoutes registers every catalogue route on the given router group.
func (h *CatalogueHTTPHandler) SetupRoutes(router fiber.Router, middleware *authHTTP.AuthMiddleware) {
	protect := middleware.Protect()
	optional := middleware.OptionalAuth()
	admin := middleware.RequireAdmin()

	collections := router.Group("/collections")
	collections.Post("/", protect, h.CreateCollection)
	collections.Get("/", protect, h.ListCollections)
	collections.Get("/:id", optional, h.GetCollection)
	collections.Patch("/:id", protect, h.UpdateCollection)
	collections.Delete("/:id", protect, h.DeleteCollection)

	collections.Post("/:id/fields", protect, h.CreateField)
	collections.Put("/:id/fields/order", protect, h.ReorderFields)
	collections.Post("/:id/apply-template/:templateID", protect, h.ApplyTemplate)

	collections.Get("/:id/items", optional, h.ListItems)
	collections.Post("/:id/items", protect, h.CreateItem)

	collections.Put("/:id/star", protect, h.StarCollection)
	collections.Delete("/:id/star", protect, h.UnstarCollection)

	fields := router.Group("/fields", protect)
	fields.Patch("/:id", h.UpdateField)
	fields.Delete("/:id", h.DeleteField)

	items := router.Group("/items")
	items.Get("/:id", optional, h.GetItem)
	items.Patch("/:id", protect, h.UpdateItem)
	items.Delete("/:id", protect, h.DeleteItem)
	items.Post("/:id/highlight", protect, h.ToggleHighlight)
	items.Get("/:id/images", optional, h.ListImages)
	items.Post("/:id/images", protect, h.UploadImage)
	items.Put("/:id/images/:imageID/position", protect, h.RepositionImage)
	items.Put("/:id/star", protect, h.StarItem)
	items.Delete("/:id/star", protect, h.UnstarItem)

	router.Delete("/images/:imageID", protect, h.DeleteImage)
	router.Get("/images/:imageID/:variant", optional, h.ServeImage)

	templates := router.Group("/schema-templates", protect)
	templates.Post("/", h.CreateTemplate)
	templates.Get("/", h.ListTemplates)
	templates.Get("/:id", h.GetTemplate)
	templates.Patch("/:id", h.UpdateTemplate)
	templates.Delete("/:id", h.DeleteTemplate)
	templates.Post("/from-collection/:collectionID", h.TemplateFromCollection)
	templates.Post("/:id/fields", h.CreateTemplateField)
	templates.Put("/:id/fields", h.ReplaceTemplateFields)
	templates.Put("/:id/fields/order", h.ReorderTemplateFields)
	templates.Patch("/template-fields/:fieldID", h.UpdateTemplateField)
	templates.Delete("/template-fields/:fieldID", h.DeleteTemplateField)

	router.Get("/activity", protect, h.ListActivity)
	h.setupActivityStream(router, middleware)

	router.Get("/search/items", protect, h.SearchItems)

	capture := router.Group("/capture", protect)
	capture.Post("/collections/:id/items", h.CaptureItem)
	capture.Post("/items/:id/images", h.CaptureImage)
	capture.Get("/collections/:id/session", h.CaptureSession)

	router.Get("/profile", protect, h.GetProfile)
	router.Patch("/profile", protect, h.UpdateProfile)
	router.Put("/profile/avatar", protect, h.UpdateAvatar)
	router.Get("/users/:username", h.GetPublicProfile)

	adminGroup := router.Group("/admin", admin)
	adminGroup.Get("/stats", h.AdminStats)
	adminGroup.Get("/users", h.AdminListUsers)
	adminGroup.Delete("/users/:id", h.AdminDeleteUser)
	adminGroup.Post("/users/:id/lock", h.AdminLockUser)
	adminGroup.Get("/collections", h.AdminListCollections)
	adminGroup.Delete("/collections/:id", h.AdminDeleteCollection)
	adminGroup.Post("/featured-collection", h.AdminSetFeaturedCollection)
	adminGroup.Put("/featured-items", h.AdminSetFeaturedItems)

	router.Get("/featured", h.Featured)

	public := router.Group("/public")
	public.Get("/collections/:id", h.PublicCollection)
	public.Get("/collections/:id/items", h.PublicItems)
	public.Get("/items/:id", h.PublicItem)
}
