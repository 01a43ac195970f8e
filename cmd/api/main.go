package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pressdesk/editorial-backend/internal/config"
	"github.com/pressdesk/editorial-backend/internal/handler"
	"github.com/pressdesk/editorial-backend/internal/middleware"
	"github.com/pressdesk/editorial-backend/internal/migration"
	"github.com/pressdesk/editorial-backend/internal/repository"
	"github.com/pressdesk/editorial-backend/internal/routes"
	"github.com/pressdesk/editorial-backend/internal/service"
	pkgcache "github.com/pressdesk/editorial-backend/pkg/cache"
	"github.com/pressdesk/editorial-backend/pkg/jwt"
	pkglogger "github.com/pressdesk/editorial-backend/pkg/logger"
	pkgredis "github.com/pressdesk/editorial-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Editorial Backend API
// @version         1.0
// @description     Versioned editorial content workflow API
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		pkglogger.Warn("Failed to connect to database: %v (continuing without DB)", err)
		db = nil
	} else {
		pkglogger.Info("Connected to MySQL")
		if err := migration.Run(db); err != nil {
			pkglogger.Warn("Migration warning: %v", err)
		}
	}

	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
		pkglogger.Info("Cache service initialized")
	}

	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiresIn,
		cfg.JWT.RefreshIn,
	)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "editorial-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if db != nil {
		postRepo := repository.NewPostRepository(db)
		versionRepo := repository.NewVersionRepository(db)
		transitionRepo := repository.NewTransitionRepository(db)
		settingRepo := repository.NewSettingRepository(db)
		notificationRepo := repository.NewNotificationRepository(db)
		memberRepo := repository.NewMemberRepository(db)

		workflowConfigSvc := service.NewWorkflowConfigService(settingRepo)
		if cacheService != nil {
			workflowConfigSvc.SetCache(cacheService)
		}
		versionSvc := service.NewVersionService(db, postRepo, versionRepo, transitionRepo)
		workflowSvc := service.NewWorkflowService(db, postRepo, versionRepo, transitionRepo, workflowConfigSvc, *pkglogger.GetLogger())
		notificationSvc := service.NewNotificationService(notificationRepo, memberRepo)
		workflowSvc.SetNotifier(notificationSvc)
		postSvc := service.NewPostService(postRepo, versionSvc, workflowConfigSvc, cacheService)

		postHandler := handler.NewPostHandler(postSvc)
		versionHandler := handler.NewVersionHandler(postRepo, versionSvc)
		workflowHandler := handler.NewWorkflowHandler(workflowSvc, versionSvc, postRepo)
		notificationHandler := handler.NewNotificationHandler(notificationSvc)
		adminHandler := handler.NewAdminHandler(workflowConfigSvc, settingRepo)

		routes.Setup(router, postHandler, versionHandler, workflowHandler, notificationHandler, adminHandler, jwtManager)

		if sqlDB, err := db.DB(); err == nil {
			middleware.SetDBConnectionsActive(float64(sqlDB.Stats().OpenConnections))
		}
	} else {
		pkglogger.Warn("Skipping API route setup (no DB connection)")
	}

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDB opens the MySQL connection and configures the pool
func initDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
