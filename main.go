package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/auth"
	"github.com/glamourcosmetics/storefront-api/config"
	orderControllers "github.com/glamourcosmetics/storefront-api/controllers/order"
	"github.com/glamourcosmetics/storefront-api/database"
	"github.com/glamourcosmetics/storefront-api/mail"
	"github.com/glamourcosmetics/storefront-api/middleware"
	"github.com/glamourcosmetics/storefront-api/routes"
)

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Init DB
	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// Product sheets are the only uploads.
	r.MaxMultipartMemory = 32 << 20

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	routes.Setup(r, routes.Deps{
		DB:     db,
		Tokens: auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Mail:   mail.New(cfg.SMTP),
		Hub:    orderControllers.NewHub(cfg.CORSOrigins),
		Reset:  auth.ResetOptions{TTL: cfg.ResetTokenTTL, BaseURL: cfg.PublicBaseURL},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("❌ Closing DB: %v", err)
		}
	}
	log.Println("👋 Bye")
}
