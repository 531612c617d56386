package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tasklist-app/tasklist/config"
	"github.com/tasklist-app/tasklist/internal/db"
	"github.com/tasklist-app/tasklist/internal/handlers"
	"github.com/tasklist-app/tasklist/internal/services"
	"github.com/tasklist-app/tasklist/internal/store"
	"github.com/tasklist-app/tasklist/internal/views"
)

const defaultShutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New migrates the database, wires every dependency and returns a Server
// ready to Start.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if err := db.Migrate(cfg); err != nil {
		return nil, err
	}
	slog.Info("database schema ready", "path", cfg.Database.Path)

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := views.New(templateFS(cfg), cfg.Debug)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	if cfg.UsesDevSecret() {
		slog.Warn("SECRET_KEY not set, flash messages are signed with the development key")
	}
	flasher := handlers.NewFlasher(cfg.SecretKey)

	userRepo := store.NewUserRepository(dbConn)
	taskRepo := store.NewTaskRepository(dbConn)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
		db.Middleware(dbConn),
	)
	router.Group(func(r chi.Router) {
		handlers.UserRouter(r, userService, renderer, flasher)
	})
	router.Route("/{user}/tasks", func(r chi.Router) {
		handlers.TaskRouter(r, taskService, renderer, flasher)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// templateFS serves templates from disk in debug mode when TemplateDir is
// set, so they can be edited without a rebuild.
func templateFS(cfg config.Config) fs.FS {
	if cfg.Debug && cfg.TemplateDir != "" {
		return os.DirFS(cfg.TemplateDir)
	}
	return views.Templates()
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown stops accepting requests, waits for in-flight ones and closes
// the database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.db != nil {
		_ = s.db.Close()
	}
	slog.Info("server stopped")
	return err
}

// Close releases resources without serving. Used when Start is never called.
func (s *Server) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
