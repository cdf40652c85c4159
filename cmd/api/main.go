//	@title			Devfolio API
//	@version		1.0
//	@description	Backend for a personal portfolio site: public content reads plus an admin content-management surface.
//
//	@host		localhost:8080
//	@BasePath	/api
//
//	@securityDefinitions.apikey	AdminSecret
//	@in							header
//	@name						X-Admin-Secret
//	@description				Shared admin write secret. A Bearer JWT from /auth/login is accepted as an alternative.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/devfolio/service/internal/about"
	"github.com/devfolio/service/internal/auth"
	"github.com/devfolio/service/internal/config"
	"github.com/devfolio/service/internal/contact"
	"github.com/devfolio/service/internal/db"
	"github.com/devfolio/service/internal/hero"
	appMiddleware "github.com/devfolio/service/internal/middleware"
	"github.com/devfolio/service/internal/post"
	"github.com/devfolio/service/internal/project"
	"github.com/devfolio/service/internal/storage"

	_ "github.com/devfolio/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	assets, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: repository → service → handler
	heroHandler := hero.NewHandler(hero.NewService(hero.NewRepository(pool), assets))
	aboutHandler := about.NewHandler(about.NewService(about.NewRepository(pool)))
	projectHandler := project.NewHandler(project.NewService(project.NewRepository(pool), assets))
	postHandler := post.NewHandler(post.NewService(post.NewRepository(pool), assets))
	contactHandler := contact.NewHandler(contact.NewService(contact.NewRepository(pool)))
	authHandler := auth.NewHandler(auth.NewService(cfg))

	requireAdmin := appMiddleware.RequireAdmin(cfg.AdminSecret, cfg.JWTSecret)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", appMiddleware.AdminSecretHeader},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI, served at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.With(requireAdmin).Get("/check", authHandler.Check)
		})

		r.Route("/hero", func(r chi.Router) {
			r.Get("/", heroHandler.Get)
			r.With(requireAdmin).Put("/", heroHandler.Update)
		})

		r.Route("/about", func(r chi.Router) {
			r.Get("/", aboutHandler.Get)
			r.With(requireAdmin).Put("/", aboutHandler.Update)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.Get)
			r.Get("/{id}", projectHandler.GetByID)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", projectHandler.Create)
				r.Put("/{id}", projectHandler.Update)
				r.Delete("/", projectHandler.Delete)
				r.Delete("/{id}", projectHandler.Delete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.Get)
			r.Get("/{id}", postHandler.GetByID)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", postHandler.Create)
				r.Put("/{id}", postHandler.Update)
				r.Delete("/", postHandler.Delete)
				r.Delete("/{id}", postHandler.Delete)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", contactHandler.Submit)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", contactHandler.List)
				r.Patch("/", contactHandler.MarkRead)
				r.Delete("/", contactHandler.Delete)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}

// newStorage selects the asset backend from configuration.
func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewMinioStorage(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StoragePublicBase,
			cfg.StorageUseSSL,
		)
	}
	return storage.NewGitHubStorage(cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch, cfg.GitHubToken), nil
}
