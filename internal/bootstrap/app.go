package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/cvstore"
	"cv-builder/internal/render"
	"cv-builder/internal/resume"
	"cv-builder/internal/shared/config"
	"cv-builder/internal/shared/server"
	"cv-builder/internal/shared/server/middleware"
	"cv-builder/internal/shared/storage/db"
	"cv-builder/internal/shared/storage/object"
	localstore "cv-builder/internal/shared/storage/object/local"
	s3store "cv-builder/internal/shared/storage/object/s3"
	"cv-builder/internal/shared/telemetry"
	"cv-builder/internal/snapshots"
	"cv-builder/internal/views"
)

// App holds the wired application.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Objects   object.Store
	Store     *cvstore.Store
	Renderer  *render.Renderer
	Snapshots *snapshots.Service
}

// Build wires storage, the résumé store, rendering and HTTP routes. In dev-like
// environments a missing or unreachable database falls back to in-memory repositories.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if !telemetry.SetLevel(cfg.LogLevel) {
		telemetry.Warn("bootstrap.log_level_invalid", map[string]any{"value": cfg.LogLevel})
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objects, err := buildObjects(ctx, cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := NewRenderer(cfg.DefaultLang)
	if err != nil {
		return nil, err
	}

	store := cvstore.New(cvstore.NewHTTPFetcher(cfg.DataBaseURL, cfg.FetchTimeout))

	var repo snapshots.Repo
	if sqlDB != nil {
		repo = &snapshots.PGRepo{DB: sqlDB}
	} else {
		repo = snapshots.NewMemoryRepo()
	}
	snapSvc := &snapshots.Service{Objects: objects, Repo: repo, Resumes: store}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Objects:   objects,
		Store:     store,
		Renderer:  renderer,
		Snapshots: snapSvc,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config: cfg,
		Views:  views.NewHandler(store, renderer),
		API: []server.RouteRegistrar{
			resume.NewHandler(store, renderer),
			snapshots.NewHandler(snapSvc),
		},
		RateLimiter: middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"database":     sqlDB != nil,
		"data_url":     cfg.DataBaseURL + cvstore.DataPath,
	})
	return app, nil
}

// WatchData reloads the store whenever the data file changes. It blocks until ctx is
// done and returns immediately when watching is disabled.
func (a *App) WatchData(ctx context.Context) error {
	if !a.Config.WatchData || a.Config.DataFile == "" {
		return nil
	}
	return cvstore.Watch(ctx, a.Config.DataFile, a.Store, 0)
}

// Close releases the database pool.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildObjects(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// NewRenderer builds a renderer with the default icon set and bundled translations.
func NewRenderer(defaultLang string) (*render.Renderer, error) {
	icons := render.NewIconLibrary()
	if err := icons.Add(render.DefaultIcons...); err != nil {
		return nil, fmt.Errorf("register icons: %w", err)
	}
	tr, err := render.NewTranslator(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	return render.NewRenderer(icons, tr)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
