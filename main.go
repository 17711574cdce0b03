package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harvestharmony/db"
	"harvestharmony/logger"
	"harvestharmony/metrics"
	"harvestharmony/middleware"
	"harvestharmony/notify"
	"harvestharmony/routes"
	"harvestharmony/seed"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	database := "Disconnected"
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := db.Client.Ping(ctx, nil); err == nil {
		database = "Connected"
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"OK","message":"Harvest Harmony API is running","database":"` + database + `"}`))
}

// Set up all routes and middleware layers
func setupRouter(hub *notify.Hub) http.Handler {
	router := httprouter.New()
	router.GET("/api/health", healthHandler)

	routes.AddAuthRoutes(router)
	routes.AddMachineRoutes(router)
	routes.AddBookingRoutes(router)
	routes.AddFavoriteRoutes(router)
	routes.AddHomeRoutes(router)
	routes.AddNotifyRoutes(router, hub)
	routes.AddMetricsRoutes(router)
	routes.AddStaticRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return middleware.RecoverMiddleware(middleware.LoggingMiddleware(securityHeaders(c.Handler(router))))
}

func main() {
	seedFlag := flag.Bool("seed", false, "seed sample machines into an empty store")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logger.Log.Warn().Msg("no .env file found, using environment")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(mongoURI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(context.TODO(), opts)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := client.Database("admin").RunCommand(context.TODO(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		logger.Log.Fatal().Err(err).Msg("mongo ping failed")
	}
	logger.Log.Info().Msg("connected to MongoDB")

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "harvestharmony"
	}
	db.Init(client, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Log.Fatal().Err(err).Msg("index creation failed")
	}
	if *seedFlag {
		if err := seed.Run(ctx); err != nil {
			cancel()
			logger.Log.Fatal().Err(err).Msg("seeding failed")
		}
	}
	cancel()

	metrics.Register()

	hub := notify.NewHub()
	notify.SetHub(hub)

	handler := setupRouter(hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", port).Msg("🌾 Harvest Harmony backend is ready")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("server failed")
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)
	<-shutdownChan

	logger.Log.Info().Msg("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server shutdown failed")
	}

	logger.Log.Info().Msg("server stopped cleanly")
}
