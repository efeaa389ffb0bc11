package main

import (
	"context"
	"fmt"
	"log"

	"courseledger/config"
	"courseledger/internal/application/usecase"
	"courseledger/internal/domain"
	"courseledger/internal/infrastructure/repository"
	"courseledger/internal/infrastructure/security"
	"courseledger/internal/middleware"
	"courseledger/internal/pkg/logger"
	handlers "courseledger/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	zlog, err := logger.New(cfg.AppMode)
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer zlog.Sync()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zlog.Fatal("DB connect failed", "error", err)
	}

	// Миграции
	if err := db.AutoMigrate(
		&domain.Course{},
		&domain.Video{},
		&domain.CartItem{},
		&domain.Purchase{},
		&domain.CompletedVideo{},
		&domain.Certificate{},
		&domain.Favorite{},
	); err != nil {
		zlog.Fatal("Migration failed", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zlog.Fatal("Redis connect failed", "addr", cfg.RedisAddr, "error", err)
	}
	zlog.Info("connected to redis", "addr", cfg.RedisAddr)

	courseRepo := repository.NewCourseRepository(db, rdb)
	ledgerRepo := repository.NewLedgerRepository(db)

	catalogUC := usecase.NewCatalogUseCase(courseRepo, ledgerRepo, zlog)
	cartUC := usecase.NewCartUseCase(courseRepo, ledgerRepo, zlog)
	purchaseUC := usecase.NewPurchaseUseCase(courseRepo, ledgerRepo, zlog)
	progressUC := usecase.NewProgressUseCase(courseRepo, ledgerRepo, zlog)
	certificateUC := usecase.NewCertificateUseCase(courseRepo, ledgerRepo, zlog)
	favoriteUC := usecase.NewFavoriteUseCase(courseRepo, ledgerRepo, zlog)

	tm := security.NewTokenManager(cfg.AccessSecret)
	limiter := middleware.NewRateLimiter(rdb)

	router := handlers.NewRouter(
		handlers.NewCourseHandler(catalogUC),
		handlers.NewCartHandler(cartUC),
		handlers.NewPurchaseHandler(purchaseUC),
		handlers.NewProgressHandler(progressUC),
		handlers.NewCertificateHandler(certificateUC),
		handlers.NewFavoriteHandler(favoriteUC),
		limiter,
		tm,
		cfg.AllowedOrigins,
	)

	zlog.Info("course ledger running", "port", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		zlog.Fatal("Server failed", "error", err)
	}
}
