package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"

	catalogHandler "library-backend/internal/domains/catalog/handler"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	catalogService "library-backend/internal/domains/catalog/service"
	circulationHandler "library-backend/internal/domains/circulation/handler"
	circulationRepo "library-backend/internal/domains/circulation/repository"
	circulationService "library-backend/internal/domains/circulation/service"
	patronHandler "library-backend/internal/domains/patron/handler"
	patronRepo "library-backend/internal/domains/patron/repository"
	patronService "library-backend/internal/domains/patron/service"
	reportingHandler "library-backend/internal/domains/reporting/handler"
	reportingService "library-backend/internal/domains/reporting/service"
)

// Container is the root of the dependency graph. Initialization order is
// config, infrastructure, repositories, services, handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	CatalogRepo catalogRepo.RepositoryInterface
	PatronRepo  patronRepo.RepositoryInterface
	LoanRepo    circulationRepo.RepositoryInterface

	CatalogService     catalogService.ServiceInterface
	PatronService      patronService.ServiceInterface
	CirculationService circulationService.ServiceInterface
	ReportingService   reportingService.ServiceInterface

	CatalogHandler     *catalogHandler.CatalogHandler
	PatronHandler      *patronHandler.PatronHandler
	CirculationHandler *circulationHandler.CirculationHandler
	ReportingHandler   *reportingHandler.ReportingHandler
}

// NewContainer builds the whole dependency graph. Any failure here means
// the application must not start.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Redis being down is not fatal: every cache consumer degrades to
	// reading through to the database.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CatalogRepo = catalogRepo.NewRepository(pool)
	c.PatronRepo = patronRepo.NewRepository(pool)
	c.LoanRepo = circulationRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	c.CatalogService = catalogService.NewService(c.CatalogRepo, c.Cache)
	c.PatronService = patronService.NewService(c.PatronRepo)

	c.CirculationService = circulationService.NewService(
		circulationService.NewPgxTxManager(c.DB.Pool),
		c.CatalogRepo,
		c.PatronRepo,
		c.LoanRepo,
		c.Cache,
		c.Config.Loan.DefaultDurationDays,
	)

	c.ReportingService = reportingService.NewService(
		c.CatalogRepo,
		c.PatronRepo,
		c.LoanRepo,
		c.Cache,
	)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.PatronHandler = patronHandler.NewPatronHandler(c.PatronService)
	c.CirculationHandler = circulationHandler.NewCirculationHandler(c.CirculationService)
	c.ReportingHandler = reportingHandler.NewReportingHandler(c.ReportingService)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close Redis: %v", err)
		}
	}
}
