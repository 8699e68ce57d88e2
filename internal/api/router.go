package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/university/admin-system/internal/api/handler"
	"github.com/university/admin-system/internal/api/middleware"
	"github.com/university/admin-system/internal/core/domain"
	"github.com/university/admin-system/internal/core/ports"
	"github.com/university/admin-system/internal/core/service"
	"github.com/university/admin-system/internal/infrastructure/config"
	mongodb "github.com/university/admin-system/internal/infrastructure/db/mongo"
	redisdb "github.com/university/admin-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit recorder is passed in because its worker pool is owned by main.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuditRecorder) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("university"))

	// --- Dependencies ---
	blacklist := redisdb.NewTokenBlacklist(rdb)

	authRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(authRepo, blacklist, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)

	studentRepo := mongodb.NewStudentRepository(db)
	studentService := service.NewStudentService(studentRepo, audit, log)
	studentHandler := handler.NewStudentHandler(studentService)

	courseRepo := mongodb.NewCourseRepository(db)
	courseService := service.NewCourseService(courseRepo, audit, log)
	courseHandler := handler.NewCourseHandler(courseService)

	authMiddleware := middleware.Auth(cfg.JWTSecret, blacklist)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleTeacher)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMiddleware)
	auth.POST("/logout", authHandler.Logout, authMiddleware)
	auth.POST("/update-password", authHandler.UpdatePassword, authMiddleware)

	// --- Student routes (staff only, mirrors the dashboard's role gate) ---
	students := e.Group("/api/students", authMiddleware, staffOnly)
	students.GET("", studentHandler.List)
	students.POST("", studentHandler.Create)
	students.GET("/:id", studentHandler.Get)
	students.PUT("/:id", studentHandler.Update)
	students.DELETE("/:id", studentHandler.Delete)
	students.GET("/cin/:cin", studentHandler.GetByCIN)
	students.PUT("/cin/:cin", studentHandler.UpdateByCIN)
	students.DELETE("/cin/:cin", studentHandler.DeleteByCIN)

	// --- Course routes (any authenticated role) ---
	courses := e.Group("/api/courses", authMiddleware)
	courses.GET("", courseHandler.List)
	courses.POST("", courseHandler.Create)
	courses.GET("/:id", courseHandler.Get)
	courses.PUT("/:id", courseHandler.Update)
	courses.DELETE("/:id", courseHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
