// Package app assembles the HTTP application from its dependencies.
package app

import (
	"errors"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"starwars/internal/config"
	"starwars/internal/handlers"
	"starwars/internal/middleware"
	"starwars/internal/repositories"
	"starwars/internal/services"
)

// New builds the fiber app with every route wired to db. publisher may be
// nil, in which case favorite events are not emitted.
func New(cfg *config.Config, db *gorm.DB, publisher services.FavoriteEventPublisher) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	planetRepo := repositories.NewGORMPlanetRepository(db)
	personRepo := repositories.NewGORMPersonRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	userService := services.NewUserService(userRepo)
	planetService := services.NewPlanetService(planetRepo)
	peopleService := services.NewPeopleService(personRepo, planetRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, planetRepo, personRepo, publisher)

	app := fiber.New(fiber.Config{
		AppName:      "starwars",
		ErrorHandler: ErrorHandler,
	})

	// --- Middleware ---
	app.Use(requestid.New())
	app.Use(middleware.Logger(log.Logger))
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/", handleSitemap)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Routes ---
	handlers.NewPeopleHandler(peopleService).RegisterRoutes(app)
	handlers.NewPlanetHandler(planetService).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app)
	handlers.NewAuthHandler(authService).RegisterRoutes(app)
	handlers.NewFavoriteHandler(favoriteService, middleware.AuthRequired(authService)).RegisterRoutes(app)

	return app
}

// ErrorHandler renders every error as {"msg", "message", "status_code"}.
// Errors that are not *fiber.Error are logged and hidden behind a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("Unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{
		"msg":         msg,
		"message":     msg,
		"status_code": code,
	})
}

type endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

func handleSitemap(c *fiber.Ctx) error {
	routes := c.App().GetRoutes(true)
	endpoints := make([]endpoint, 0, len(routes))
	for _, r := range routes {
		if r.Method == fiber.MethodHead {
			continue
		}
		endpoints = append(endpoints, endpoint{Method: r.Method, Path: r.Path})
	}
	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].Path != endpoints[j].Path {
			return endpoints[i].Path < endpoints[j].Path
		}
		return endpoints[i].Method < endpoints[j].Method
	})
	return c.JSON(fiber.Map{"endpoints": endpoints})
}
