package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"profitum/config"
	"profitum/internal/app"
	"profitum/internal/catalog"
	"profitum/internal/service"
	"profitum/internal/transport/rest"
	"profitum/internal/transport/ws"
)

func main() {
	log.Println("profitum simulator starting")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Scoring profile is business-owned configuration; refuse to start without it.
	profile, err := catalog.LoadScoringProfile(cfg.ScoringPath)
	if err != nil {
		log.Fatal("Failed to load scoring profile:", err)
	}
	log.Printf("Scoring profile loaded: %d products", len(profile.Products))

	// Initialize repositories and caches
	stores := app.New(db, rdb, cfg.SessionTTL)

	// Catalog snapshot, validated against the scoring profile
	catalogSvc := catalog.NewService(stores.Questions, profile)
	if err := catalogSvc.Load(ctx); err != nil {
		log.Fatal("Failed to load question catalog:", err)
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	evaluator := service.NewEvaluatorService()
	scorer := service.NewScorerService(evaluator)
	sessionSvc := service.NewSessionService(
		stores.Sessions, stores.Responses, stores.Eligibility,
		catalogSvc, evaluator, scorer,
		stores.SessionCache, stores.ResultCache, cfg.SessionTTL,
	)
	migrationSvc := service.NewMigrationService(
		stores.Sessions, stores.Responses, stores.Eligibility, stores.Clients,
		stores.SessionCache, stores.ResultCache, authSvc,
	)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	sessionSvc.SetBroadcaster(wsHub)
	migrationSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		SessionService:   sessionSvc,
		MigrationService: migrationSvc,
		CatalogService:   catalogSvc,
		WSHub:            wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/simulator/session")
		log.Println("  GET  /v1/simulator/session/{token}/questions")
		log.Println("  POST /v1/simulator/session/{token}/response")
		log.Println("  POST /v1/simulator/session/{token}/eligibility")
		log.Println("  GET  /v1/simulator/session/{token}/results")
		log.Println("  POST /v1/simulator/session/{token}/migrate")
		log.Println("  WS   /v1/ws/session/{token}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
