// Package app assembles the HTTP application from its collaborators.
package app

import (
	"errors"
	"time"

	"staffsync/internal/config"
	"staffsync/internal/database"
	"staffsync/internal/handlers"
	"staffsync/internal/mailer"
	"staffsync/internal/middleware"
	"staffsync/internal/repositories"
	"staffsync/internal/services"
	"staffsync/internal/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the infrastructure pieces the application is built on.
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Store  verification.Store
	Sender mailer.Sender
	Logger *zap.Logger

	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// New wires repositories, services and handlers and returns the Fiber app.
func New(deps Dependencies) *fiber.App {
	cfg := deps.Config
	log := deps.Logger

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	memberRepo := repositories.NewGORMMemberRepository(deps.DB)
	employeeRepo := repositories.NewGORMEmployeeRepository(deps.DB)

	// --- Services ---
	productService := services.NewProductService(productRepo, log.Named("products"))
	memberService := services.NewMemberService(memberRepo, deps.Store, deps.Sender, log.Named("members"),
		services.WithCodeTTL(cfg.VerificationCodeTTL))
	authService := services.NewAuthService(memberRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log.Named("auth"))
	employeeService := services.NewEmployeeService(employeeRepo, log.Named("employees"))

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, log)
	memberHandler := handlers.NewMemberHandler(memberService, log)
	authHandler := handlers.NewAuthHandler(authService, log)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, log)

	app := fiber.New(fiber.Config{
		AppName:      "StaffSync",
		UnescapePath: true,
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	app.Use(fiberrecover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.CORSAllowOrigins != "*",
	}))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(deps.DB); err != nil {
			log.Warn("health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api)
	memberHandler.RegisterRoutes(api)

	// Protected routes (require an access token)
	protected := api.Group("", middleware.AuthRequired(authService, log))
	productHandler.RegisterRoutes(protected)
	employeeHandler.RegisterRoutes(protected)

	return app
}

// errorHandler renders errors that escape handlers, unknown routes included, as JSON.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{
			"message": message,
		})
	}
}
