package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dkovac/relay/internal/config"
	"github.com/dkovac/relay/internal/database"
	postgresrepo "github.com/dkovac/relay/internal/repository/postgres"
	"github.com/dkovac/relay/internal/service"
	"github.com/dkovac/relay/internal/storage"
	"github.com/dkovac/relay/internal/transport/http/handlers"
	"github.com/dkovac/relay/internal/transport/http/middleware"
	"github.com/dkovac/relay/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.Migrate(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}

	// Object storage
	images, err := storage.NewImageStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, images, cfg.JWTSecret)
	messageService := service.NewMessageService(messageRepo, userRepo, images)

	// Live delivery
	hub := ws.NewHub()
	go hub.Run()
	messageService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.IsProduction())
	messageHandler := handlers.NewMessageHandler(messageService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Protected - Auth
	mux.Handle("PUT /api/auth/update-profile", auth(http.HandlerFunc(authHandler.UpdateProfile)))
	mux.Handle("GET /api/auth/check", auth(http.HandlerFunc(authHandler.Check)))

	// Protected - Messages
	mux.Handle("GET /api/messages/users", auth(http.HandlerFunc(messageHandler.ListUsers)))
	mux.Handle("GET /api/messages/{id}", auth(http.HandlerFunc(messageHandler.GetConversation)))
	mux.Handle("POST /api/messages/send/{id}", auth(http.HandlerFunc(messageHandler.Send)))

	// Live channel
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Frontend assets when running as a single production binary
	if cfg.IsProduction() {
		mux.Handle("/", spaHandler("frontend/dist"))
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: middleware.CORS(cfg.FrontendOrigin)(mux),
	}

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("HTTP server closed")
}

// spaHandler serves the built frontend, falling back to index.html so
// client-side routes resolve.
func spaHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})
}
