package routes

import (
	"yorkhub/internal/adapters/http/handlers"
	"yorkhub/internal/adapters/http/middleware"
	"yorkhub/internal/adapters/persistence/repositories"
	"yorkhub/internal/config"
	"yorkhub/internal/core/services"
	"yorkhub/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *mongo.Database, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)

	// Initialize token codec and mailer
	codec := token.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer)
	mailer := services.NewSMTPMailer(cfg.SMTP)

	// Initialize services
	authService := services.NewAuthService(userRepo, mailer, codec, cfg)
	resourceService := services.NewResourceService(resourceRepo)
	userService := services.NewUserService(userRepo)
	cronService := services.NewCronService(resourceRepo, userRepo, mailer, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	userHandler := handlers.NewUserHandler(userService)

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")
	api.Get("/health", healthHandler.HealthCheck)

	// Authentication & account routes
	users := api.Group("/users")
	users.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	users.Post("/token", middleware.AuthRateLimiter(), authHandler.Login)
	users.Get("/verify-email", authHandler.VerifyEmail)
	users.Post("/forgot-password", middleware.StrictRateLimiter(), authHandler.ForgotPassword)
	users.Post("/reset-password", middleware.StrictRateLimiter(), authHandler.ResetPassword)
	users.Get("/me", requireAuth, authHandler.Me)

	// Resource directory routes
	resources := api.Group("/resources")
	resources.Get("/", optionalAuth, resourceHandler.List)
	resources.Post("/suggest", requireAuth, resourceHandler.Suggest)
	resources.Get("/pending", requireAuth, middleware.AdminOnly(), resourceHandler.Pending)
	resources.Get("/by-status/:status", requireAuth, middleware.AdminOnly(), resourceHandler.ByStatus)
	resources.Get("/admin/all", requireAuth, middleware.AdminOnly(), resourceHandler.AdminAll)
	resources.Post("/admin/create", requireAuth, middleware.AdminOnly(), resourceHandler.AdminCreate)
	resources.Put("/admin/:id", requireAuth, middleware.AdminOnly(), resourceHandler.AdminUpdate)
	resources.Delete("/admin/:id", requireAuth, middleware.AdminOnly(), resourceHandler.AdminDelete)
	resources.Put("/:id/review", requireAuth, middleware.AdminOnly(), resourceHandler.Review)

	// Account administration routes (root only)
	admin := api.Group("/admin", requireAuth, middleware.RootOnly())
	admin.Get("/users", userHandler.List)
	admin.Put("/users/:id/role", userHandler.UpdateRole)

	return cronService
}
