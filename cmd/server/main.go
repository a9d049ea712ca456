package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fitconsole/internal/auth"
	"fitconsole/internal/config"
	docsysRepo "fitconsole/internal/domain/repositories/docsystem"
	"fitconsole/internal/handler"
	"fitconsole/internal/middleware"
	"fitconsole/internal/repository/memory"
	"fitconsole/internal/repository/postgres"
	"fitconsole/internal/repository/rest"
	"fitconsole/internal/seed"
	serviceDocsys "fitconsole/internal/service/docsystem"
	"fitconsole/internal/session"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, closeLog, err := config.NewLogger(cfg, "server")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"backend", cfg.Backend,
		"file_placement", cfg.FilePlacement,
	)

	jwtVerifier, err := newVerifier(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()
	backend, closeBackend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.Backend, err)
	}
	defer closeBackend()

	// Document library services
	registry, err := serviceDocsys.NewCategoryRegistry()
	if err != nil {
		log.Fatalf("Failed to load category registry: %v", err)
	}
	placement, err := serviceDocsys.ParsePlacement(cfg.FilePlacement)
	if err != nil {
		log.Fatalf("Invalid FILE_PLACEMENT: %v", err)
	}
	resolver := serviceDocsys.NewResolver(registry, cfg.DateLayout)
	snapshots := serviceDocsys.NewSnapshotCache(backend, cfg.SnapshotTTL, logger)
	validator := serviceDocsys.NewResourceValidator(backend, snapshots)

	viewService := serviceDocsys.NewViewService(snapshots, resolver, placement, logger)
	folderService := serviceDocsys.NewFolderService(backend, validator, snapshots, logger)
	relocationService := serviceDocsys.NewRelocationService(backend, snapshots, resolver, logger)

	sessions := session.NewStore(logger, session.WithIdleTimeout(cfg.SessionIdleTimeout))

	docHandler := handler.NewDocumentHandler(viewService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	fileHandler := handler.NewFileHandler(relocationService, logger)
	sessionHandler := handler.NewSessionHandler(sessions, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Session routes
	mux.HandleFunc("GET /api/session", sessionHandler.GetSession)
	mux.HandleFunc("DELETE /api/session", sessionHandler.EndSession)

	// Documents view and navigation
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("POST /api/navigation/folders/{id}", docHandler.OpenFolder)
	mux.HandleFunc("DELETE /api/navigation/folder", docHandler.CloseFolder)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PUT /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// File relocation
	mux.HandleFunc("PUT /api/folders/{id}/files/{fileID}/move", fileHandler.MoveFile)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLogger → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(jwtVerifier, sessions, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newVerifier prefers JWKS; a shared secret is accepted outside prod only
func newVerifier(cfg *config.Config, logger *slog.Logger) (auth.JWTVerifier, error) {
	if cfg.JWKSURL != "" {
		return auth.NewJWTVerifier(cfg.JWKSURL, logger)
	}
	if cfg.JWTSecret != "" && cfg.Environment != "prod" {
		return auth.NewSecretVerifier(cfg.JWTSecret, logger)
	}
	return nil, fmt.Errorf("JWKS_URL is required (JWT_SECRET is only honoured outside prod)")
}

// openBackend returns the document backend selected by BACKEND and a func
// releasing its resources.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (docsysRepo.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendREST:
		client := rest.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger)
		logger.Info("using remote document API", "base_url", cfg.APIBaseURL)
		return client, func() {}, nil

	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		if err := postgres.Migrate(ctx, cfg.DatabaseURL, logger); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect: %w", err)
		}
		logger.Info("database connected")
		return postgres.NewStore(pool, logger), pool.Close, nil

	case config.BackendMemory:
		store := memory.New(logger)
		store.Load(seed.DemoSnapshot(cfg.DemoCompanyID))
		logger.Warn("using in-memory backend with demo data (changes are lost on restart)",
			"company_id", cfg.DemoCompanyID,
		)
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
