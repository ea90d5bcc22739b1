package api

import (
	"shiftiq/docs"
	"shiftiq/internal/api/handlers"
	"shiftiq/pkg/auth"
	"shiftiq/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	docHandler *handlers.DocumentHandler,
	sessionHandler *handlers.SessionHandler,
	beerHandler *handlers.BeerHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger
	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	userAuth := app.Group("/user/auth")
	userAuth.Post("/register", authHandler.Register)
	userAuth.Post("/login", authHandler.Login)
	userAuth.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Post("/chat", chatHandler.Chat)
	protected.Post("/process-document", docHandler.ProcessDocument)

	// Document management is restricted to managers and admins;
	// staff only reach documents through chat retrieval.
	manager := middleware.RequireRole(appLogger, "manager", "admin")

	documents := protected.Group("/documents")
	documents.Get("", docHandler.ListDocuments)
	documents.Get("/:id", docHandler.GetDocument)
	documents.Post("", manager, docHandler.CreateDocument)
	documents.Put("/:id", manager, docHandler.UpdateDocument)
	documents.Delete("/:id", manager, docHandler.DeleteDocument)
	documents.Post("/:id/process", manager, docHandler.ProcessDocumentByID)

	sessions := protected.Group("/sessions")
	sessions.Post("", sessionHandler.CreateSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:id/messages", sessionHandler.GetMessages)
	sessions.Delete("/:id", sessionHandler.DeleteSession)

	beers := protected.Group("/beers")
	beers.Get("", beerHandler.ListBeers)
	beers.Post("", manager, beerHandler.CreateBeer)
	beers.Put("/:id", manager, beerHandler.UpdateBeer)
	beers.Delete("/:id", manager, beerHandler.DeleteBeer)

	return app
}
