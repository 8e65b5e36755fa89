package di

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"curiovault/internal/auth"
	authConfig "curiovault/internal/auth/config"
	"curiovault/internal/catalogue"
	catalogueConfig "curiovault/internal/catalogue/config"
	"curiovault/internal/shared/eventbus"
	"curiovault/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container represents a dependency injection container with proper lifecycle management
type Container struct {
	mu        sync.RWMutex
	services  map[reflect.Type]interface{}
	factories map[reflect.Type]func() (interface{}, error)
	// Module instances
	AuthModule      *auth.AuthModule
	CatalogueModule *catalogue.CatalogueModule
	// Infrastructure connections
	MongoDB *mongo.Database
	Redis   *redis.Client
	// Configuration
	AuthConfig      *authConfig.Config
	CatalogueConfig *catalogueConfig.Config
	// Shared services
	EventBus eventbus.EventBusInterface
	Logger   logger.Logger
}

// NewContainer creates a new DI container
func NewContainer() *Container {
	return &Container{
		services:  make(map[reflect.Type]interface{}),
		factories: make(map[reflect.Type]func() (interface{}, error)),
	}
}

// InitializeAuth initializes the authentication module
func (c *Container) InitializeAuth(mongoDB *mongo.Database, cfg *authConfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.MongoDB = mongoDB
	c.AuthConfig = cfg

	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}
	if c.EventBus == nil {
		c.EventBus = eventbus.NewEventBus(c.Logger)
	}

	authModule, err := auth.NewAuthModule(mongoDB, cfg, c.EventBus, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}

	c.AuthModule = authModule
	return nil
}

// InitializeCatalogue initializes the catalogue module with auth integration
func (c *Container) InitializeCatalogue(cfg *catalogueConfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AuthModule == nil {
		return fmt.Errorf("auth module must be initialized before the catalogue module")
	}
	if c.MongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before the catalogue module")
	}

	c.CatalogueConfig = cfg
	if c.Redis == nil {
		c.Redis = catalogueConfig.NewRedisClient(cfg)
	}

	catalogueModule, err := catalogue.NewCatalogueModule(
		c.MongoDB, c.Redis, c.AuthModule.GetRepository(), cfg, c.EventBus, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create catalogue module: %w", err)
	}

	c.CatalogueModule = catalogueModule
	return nil
}

// Register registers a service instance
func (c *Container) Register(service interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	serviceType := reflect.TypeOf(service)
	if serviceType.Kind() == reflect.Ptr {
		serviceType = serviceType.Elem()
	}

	c.services[serviceType] = service
	return nil
}

// RegisterFactory registers a factory function for a service
func (c *Container) RegisterFactory(serviceType reflect.Type, factory func() (interface{}, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.factories[serviceType] = factory
	return nil
}

// Resolve resolves a service by type
func (c *Container) Resolve(serviceType reflect.Type) (interface{}, error) {
	c.mu.RLock()

	if service, exists := c.services[serviceType]; exists {
		c.mu.RUnlock()
		return service, nil
	}

	if factory, exists := c.factories[serviceType]; exists {
		c.mu.RUnlock()

		service, err := factory()
		if err != nil {
			return nil, fmt.Errorf("failed to create service: %w", err)
		}

		c.mu.Lock()
		c.services[serviceType] = service
		c.mu.Unlock()

		return service, nil
	}

	c.mu.RUnlock()
	return nil, fmt.Errorf("service of type %v not registered", serviceType)
}

// GetService is a generic helper for resolving services
func GetService[T any](c *Container) (T, error) {
	var zero T
	serviceType := reflect.TypeOf(zero)

	service, err := c.Resolve(serviceType)
	if err != nil {
		return zero, err
	}

	if typedService, ok := service.(T); ok {
		return typedService, nil
	}

	return zero, fmt.Errorf("service is not of expected type %T", zero)
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetCatalogueModule returns the catalogue module instance
func (c *Container) GetCatalogueModule() *catalogue.CatalogueModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CatalogueModule
}

// HealthCheck performs health check on the container's infrastructure
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoDB != nil {
		if err := c.MongoDB.Client().Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}

	return nil
}

// Cleanup performs cleanup of registered services with proper shutdown order
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	// Modules shut down in reverse order of initialization
	if c.CatalogueModule != nil {
		if err := c.CatalogueModule.Stop(); err != nil {
			errs = append(errs, err)
		}
		c.CatalogueModule = nil
	}

	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			errs = append(errs, err)
		}
		c.AuthModule = nil
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis client: %w", err))
		}
		c.Redis = nil
	}

	for _, service := range c.services {
		if cleaner, ok := service.(interface{ Cleanup(context.Context) error }); ok {
			if err := cleaner.Cleanup(ctx); err != nil {
				errs = append(errs, fmt.Errorf("failed to cleanup service: %w", err))
			}
		}
	}

	c.services = make(map[reflect.Type]interface{})
	c.factories = make(map[reflect.Type]func() (interface{}, error))

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}

	return nil
}

// Close gracefully shuts down all services in the container with timeout
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		if c.Logger != nil {
			c.Logger.Warnf("Cleanup errors occurred: %v", err)
		}
		return err
	}

	return nil
}
