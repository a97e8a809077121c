package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"customer-onboarding.backend/internal/config"
	"customer-onboarding.backend/internal/infrastructure/repositories"
	"customer-onboarding.backend/internal/interfaces/http/handlers"
	"customer-onboarding.backend/internal/interfaces/http/middleware"
	"customer-onboarding.backend/internal/usecases"
	"customer-onboarding.backend/pkg/jwt"
	"customer-onboarding.backend/pkg/logger"
	"customer-onboarding.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis is optional; without it the admin overview is computed on
	// every request.
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Info(context.Background(), "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userRepo := repositories.NewUserRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	uow := repositories.NewUnitOfWork(db)

	authUsecase := usecases.NewAuthUsecase(userRepo, customerRepo, activityRepo, jwtService)
	customerUsecase := usecases.NewCustomerUsecase(customerRepo, activityRepo, uow)
	documentUsecase := usecases.NewDocumentUsecase(documentRepo, customerRepo, activityRepo, uow)
	adminUsecase := usecases.NewAdminUsecase(userRepo, customerRepo, documentRepo, activityRepo)

	authHandler := handlers.NewAuthHandler(authUsecase)
	customerHandler := handlers.NewCustomerHandler(customerUsecase)
	documentHandler := handlers.NewDocumentHandler(documentUsecase, cfg.Upload)
	adminHandler := handlers.NewAdminHandler(adminUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     authHandler,
		customerHandler: customerHandler,
		documentHandler: documentHandler,
		adminHandler:    adminHandler,
		authMiddleware:  authMiddleware,
	})

	log.Printf("customer onboarding backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
