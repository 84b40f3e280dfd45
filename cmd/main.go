package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aayushkhanna09/rahi-app/db"
	"github.com/aayushkhanna09/rahi-app/internal/chat"
	"github.com/aayushkhanna09/rahi-app/internal/checkin"
	"github.com/aayushkhanna09/rahi-app/internal/config"
	"github.com/aayushkhanna09/rahi-app/internal/geo"
	"github.com/aayushkhanna09/rahi-app/internal/post"
	"github.com/aayushkhanna09/rahi-app/internal/social"
	"github.com/aayushkhanna09/rahi-app/internal/travel"
	"github.com/aayushkhanna09/rahi-app/internal/user"
	"github.com/aayushkhanna09/rahi-app/internal/web"
	"github.com/aayushkhanna09/rahi-app/middleware"
	"github.com/aayushkhanna09/rahi-app/models"
)

var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	var sqliteDB *sql.DB
	var mongoClient *mongo.Client

	switch cfg.DatabaseType {
	case config.SQLite:
		infoLogger.Println("Using SQLite database")
		sqliteDB, err = db.ConnectToSQLite(cfg.SQLitePath)
		if err != nil {
			errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
		}
		defer sqliteDB.Close()

		if err := db.InitializeSchema(sqliteDB); err != nil {
			errorLogger.Fatalf("Failed to initialize database schema: %v", err)
		}
	case config.MongoDB:
		infoLogger.Println("Using MongoDB database")
		mongoClient, err = db.ConnectToMongo(cfg.MongoURI)
		if err != nil {
			errorLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoClient.Disconnect(context.Background())
	default:
		errorLogger.Fatalf("Unsupported database type: %s", cfg.DatabaseType)
	}

	repoFactory := db.NewRepositoryFactory(sqliteDB, mongoClient, cfg.DatabaseName)

	travelRepo := repoFactory.NewTravelStateRepository()
	postRepo := repoFactory.NewPostRepository()
	userRepo := repoFactory.NewUserRepository()
	roomRepo := repoFactory.NewRoomRepository()

	// Serializes writes so SQLite never sees concurrent mutations.
	dbManager := db.NewDBManager()
	defer dbManager.Stop()

	boundaries := geo.DefaultBoundaries()
	if cfg.RegionDatasetPath != "" {
		boundaries, err = geo.LoadBoundaries(cfg.RegionDatasetPath)
		if err != nil {
			errorLogger.Fatalf("Failed to load region dataset %s: %v", cfg.RegionDatasetPath, err)
		}
		infoLogger.Printf("Loaded %d region boundaries from %s", len(boundaries), cfg.RegionDatasetPath)
	}
	resolver := geo.NewResolver(boundaries)

	leaderboardCache := travel.NewLeaderboardCache(cfg.RedisAddr)
	if leaderboardCache != nil {
		infoLogger.Printf("Leaderboard cache enabled at %s", cfg.RedisAddr)
	}

	userService := user.NewUserService(userRepo, dbManager)
	travelService := travel.NewTravelService(travelRepo, userRepo, dbManager, models.DefaultBadgeTiers, leaderboardCache)
	checkInService := checkin.NewCheckInService(resolver, travelService, postRepo, userRepo, dbManager)
	postService := post.NewPostService(postRepo, userRepo)
	socialService := social.NewSocialService(userRepo)
	chatService := chat.NewChatService(roomRepo, userRepo)

	mw := middleware.NewMiddleware(cfg)
	router := &web.Router{
		Auth:    user.NewAuthHandlers(cfg, userService),
		Users:   user.NewUserHandlers(userService, travelService),
		CheckIn: checkin.NewCheckInHandlers(checkInService),
		Posts:   post.NewPostHandlers(postService),
		Travel:  travel.NewTravelHandlers(travelService),
		Social:  social.NewSocialHandlers(socialService),
		Chat:    chat.NewChatHandlers(chatService),
		MW:      mw,
	}

	handler := middleware.SetupCORS()(middleware.LoggingMiddleware(router.SetupRoutes()))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	infoLogger.Printf("Received shutdown signal: %v", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(ctx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
		os.Exit(1)
	}
	infoLogger.Println("Server stopped")
}
