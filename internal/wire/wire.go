// Package wire provides dependency injection for the launchpad application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/launchpad/internal/adapters/cli"
	"github.com/example/launchpad/internal/adapters/sqlite"
	"github.com/example/launchpad/internal/app"
	"github.com/example/launchpad/internal/config"
	"github.com/example/launchpad/internal/db"
	"github.com/example/launchpad/internal/logging"
	"github.com/example/launchpad/internal/ports/primary"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	documentService  primary.DocumentService
	projectService   primary.ProjectService
	surfacingService primary.SurfacingService
	metricsService   primary.MetricsService
	taskService      primary.TaskService
	logService       primary.LogService
	once             sync.Once
)

// Configure sets the config and logger used to build services. It must be
// called before the first service is requested; later calls have no effect
// on services already built.
func Configure(c *config.Config, l *zap.Logger) {
	cfg = c
	logger = l
}

// Config returns the active configuration, loading it on first use.
func Config() *config.Config {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			Logger().Fatal("failed to load config", zap.Error(err))
		}
		cfg = loaded
	}
	return cfg
}

// Logger returns the shared logger, a no-op logger when none was configured.
func Logger() *zap.Logger {
	logger = logging.OrNop(logger)
	return logger
}

// DocumentService returns the singleton DocumentService instance.
func DocumentService() primary.DocumentService {
	once.Do(initServices)
	return documentService
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// SurfacingService returns the singleton SurfacingService instance.
func SurfacingService() primary.SurfacingService {
	once.Do(initServices)
	return surfacingService
}

// MetricsService returns the singleton MetricsService instance.
func MetricsService() primary.MetricsService {
	once.Do(initServices)
	return metricsService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()
	log := Logger()

	db.SetPath(c.Database.Path)
	database, err := db.GetDB()
	if err != nil {
		log.Fatal("failed to initialize database", zap.String("path", c.Database.Path), zap.Error(err))
	}

	// Audit trail first: other repositories write through it
	activityLogRepo := sqlite.NewActivityLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(activityLogRepo)

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	docRepo := sqlite.NewDocumentRepository(database, logWriter)
	projectRepo := sqlite.NewProjectRepository(database, logWriter)
	itemRepo := sqlite.NewChecklistItemRepository(database, logWriter)
	postingRepo := sqlite.NewPostingLogRepository(database)
	metricRepo := sqlite.NewMetricRepository(database)
	checkInRepo := sqlite.NewCheckInRepository(database)
	taskRepo := sqlite.NewTaskRepository(database)

	// Create services (primary ports implementation)
	documentService = app.NewDocumentService(docRepo, log.Named("document"))
	projectService = app.NewProjectService(docRepo, projectRepo, itemRepo, taskRepo, log.Named("project"))
	surfacingService = app.NewSurfacingService(projectRepo, itemRepo, taskRepo, log.Named("surfacing"))
	metricsService = app.NewMetricsService(projectRepo, postingRepo, metricRepo, checkInRepo, c.Streak.WindowDays, log.Named("metrics"))
	taskService = app.NewTaskService(taskRepo, log.Named("task"))
	logService = app.NewLogService(activityLogRepo)
}

// ProjectAdapter returns a new ProjectAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ProjectAdapter() *cliadapter.ProjectAdapter {
	return ProjectAdapterWithOutput(os.Stdout)
}

// ProjectAdapterWithOutput returns a new ProjectAdapter writing to the given output.
func ProjectAdapterWithOutput(out io.Writer) *cliadapter.ProjectAdapter {
	once.Do(initServices)
	return cliadapter.NewProjectAdapter(projectService, out)
}

// SurfacingAdapter returns a new SurfacingAdapter writing to stdout.
func SurfacingAdapter() *cliadapter.SurfacingAdapter {
	once.Do(initServices)
	return cliadapter.NewSurfacingAdapter(surfacingService, os.Stdout)
}
