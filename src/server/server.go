// Package server assembles the Fiber application: middleware, routes, health and metrics.
package server

import (
	"context"
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/theleywin/devconnect-backend/src/apperror"
	"github.com/theleywin/devconnect-backend/src/config"
	"github.com/theleywin/devconnect-backend/src/controllers"
	"github.com/theleywin/devconnect-backend/src/lib"
	"github.com/theleywin/devconnect-backend/src/middleware"
	"github.com/theleywin/devconnect-backend/src/routes"
	"github.com/theleywin/devconnect-backend/src/services"
	"github.com/theleywin/devconnect-backend/src/store"
	"github.com/theleywin/devconnect-backend/src/validation"
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// metrics registers the HTTP collectors on the default registry once per process.
func metrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New("devconnect")
		prom.SetSkipPaths([]string{"/metrics", "/health"})
	})
	return prom
}

type Server struct {
	cfg   *config.Config
	store *store.Store
	app   *fiber.App
}

func New(cfg *config.Config, st *store.Store) *Server {
	s := &Server{cfg: cfg, store: st}

	s.app = fiber.New(fiber.Config{
		AppName:      "devconnect",
		ErrorHandler: apperror.Handler(logInternal),
	})

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func logInternal(c *fiber.Ctx, err error) {
	lib.Logger.ErrorContext(c.UserContext(), "internal error",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	s.app.Use(middleware.ContextMiddleware())
	s.app.Use(metrics().Middleware)
	s.app.Use(middleware.StructuredLogger())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func (s *Server) setupRoutes() {
	v := validation.New()
	auth := services.NewAuthService(s.store.Users, v, s.cfg.JWTSecret, s.cfg.JWTTTL)
	profiles := services.NewProfileService(s.store.Profiles, s.store.Accounts, v)
	posts := services.NewPostService(s.store.Posts, v)

	protect := middleware.ProtectRoute(auth)

	s.app.Get("/health", s.health)
	metrics().RegisterAt(s.app, "/metrics")

	routes.UserRoutes(s.app, controllers.NewUserController(auth), protect)
	routes.ProfileRoutes(s.app, controllers.NewProfileController(profiles), protect)
	routes.PostRoutes(s.app, controllers.NewPostController(posts), protect)
}

// health reports 503 when the store does not answer a ping
func (s *Server) health(c *fiber.Ctx) error {
	if err := s.store.Ping(c.UserContext()); err != nil {
		lib.Logger.WarnContext(c.UserContext(), "health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown stops accepting requests, waits for in-flight ones and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return err
	}
	return s.store.Close(ctx)
}
