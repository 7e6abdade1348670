// Package container wires the application together. Components initialize
// in dependency order and tear down in reverse.
package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/application/service"
	"github.com/openpress/editorial/internal/config"
	"github.com/openpress/editorial/internal/domain/decision"
	"github.com/openpress/editorial/internal/infrastructure/notification"
	"github.com/openpress/editorial/internal/infrastructure/persistence/repository"
	"github.com/openpress/editorial/internal/infrastructure/persistence/sqlite"
	httpiface "github.com/openpress/editorial/internal/interfaces/http"
	"github.com/openpress/editorial/pkg/database"
	"go.uber.org/zap"
)

// RepositoryBundle groups all repositories for convenient access.
type RepositoryBundle struct {
	Decisions         port.DecisionRepository
	Submissions       port.SubmissionRepository
	ReviewRounds      port.ReviewRoundRepository
	ReviewAssignments port.ReviewAssignmentRepository
	StageAssignments  port.StageAssignmentRepository
	Users             port.UserRepository
	Files             port.FileRepository
}

// Container manages all application dependencies and lifecycle.
type Container struct {
	config *config.Config
	logger *zap.Logger

	db           *database.DB
	txManager    *sqlite.DB
	repositories *RepositoryBundle
	notifier     port.ReviewRoundNotifier
	catalog      *decision.Catalog
	decisionSvc  service.DecisionService
	httpServer   *httpiface.Server

	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// NewContainer creates a new container from configuration. Call Start to
// initialize the components.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Container{config: cfg, logger: logger}, nil
}

// Start initializes all components in dependency order:
// 1. Database, migrations and repositories
// 2. Notifier
// 3. Decision catalog and service
// 4. HTTP server
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization")

	if err := c.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database initialized")

	c.initNotifier()
	c.initService()
	c.logger.Info("Decision service initialized")

	c.httpServer = httpiface.NewServer(httpiface.ServerConfig{
		Host:         c.config.Server.Host,
		Port:         c.config.Server.Port,
		ReadTimeout:  c.config.Server.ReadTimeout,
		WriteTimeout: c.config.Server.WriteTimeout,
	}, c.decisionSvc, &zapLoggerAdapter{logger: c.logger})

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// Serve runs the HTTP server until the context is cancelled.
func (c *Container) Serve(ctx context.Context) error {
	if !c.ready.Load() {
		return fmt.Errorf("container not started")
	}
	return c.httpServer.Start(ctx)
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop http server: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		} else {
			c.logger.Info("Database closed")
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

func (c *Container) initDatabase() error {
	db, err := database.New(database.Config{
		Path:            c.config.Database.Path,
		MaxOpenConns:    c.config.Database.MaxOpenConns,
		MaxIdleConns:    c.config.Database.MaxIdleConns,
		ConnMaxLifetime: c.config.Database.ConnMaxLifetime,
	}, c.logger)
	if err != nil {
		return err
	}
	c.db = db

	migrator := database.NewMigrator(db, c.logger)
	if err := migrator.RunMigrations(); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.txManager = sqlite.NewDB(db.DB, c.logger)

	reviewAssignments := repository.NewReviewAssignmentRepository(db.DB, c.logger)
	c.repositories = &RepositoryBundle{
		Decisions:         repository.NewDecisionRepository(db.DB, c.logger),
		Submissions:       repository.NewSubmissionRepository(db.DB, c.logger),
		ReviewRounds:      repository.NewReviewRoundRepository(db.DB, reviewAssignments, c.logger),
		ReviewAssignments: reviewAssignments,
		StageAssignments:  repository.NewStageAssignmentRepository(db.DB, c.logger),
		Users:             repository.NewUserRepository(db.DB, c.logger),
		Files:             repository.NewFileRepository(db.DB, c.logger),
	}
	return nil
}

func (c *Container) initNotifier() {
	if c.config.SMTP.Host == "" {
		c.notifier = notification.NewLogNotifier(c.logger)
		c.logger.Info("SMTP not configured, using log notifier")
		return
	}
	c.notifier = notification.NewMailer(notification.SMTPConfig{
		Host:     c.config.SMTP.Host,
		Port:     c.config.SMTP.Port,
		Username: c.config.SMTP.Username,
		Password: c.config.SMTP.Password,
		From:     c.config.SMTP.From,
		To:       c.config.SMTP.To,
	}, c.logger)
}

func (c *Container) initService() {
	c.catalog = decision.MustDefaultCatalog()
	c.decisionSvc = service.NewDecisionService(
		c.catalog,
		c.repositories.Decisions,
		c.repositories.Submissions,
		c.repositories.ReviewRounds,
		c.repositories.ReviewAssignments,
		c.repositories.StageAssignments,
		c.repositories.Users,
		c.repositories.Files,
		c.notifier,
		c.txManager,
		&zapLoggerAdapter{logger: c.logger},
	)
}

// Repositories returns all repositories.
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// DecisionService returns the decision service.
func (c *Container) DecisionService() service.DecisionService {
	return c.decisionSvc
}

// Catalog returns the decision type catalog.
func (c *Container) Catalog() *decision.Catalog {
	return c.catalog
}

// HTTPServer returns the HTTP server.
func (c *Container) HTTPServer() *httpiface.Server {
	return c.httpServer
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// zapLoggerAdapter adapts zap.Logger to the keys-and-values logger
// interfaces used by the service and HTTP layers.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
