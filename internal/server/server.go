package server

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"

	"chattube/internal/config"
	"chattube/internal/rag"
	"chattube/internal/transcript"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
}

func New(cfg *config.Config, svc *rag.Service) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	h := &handler{svc: svc}
	h.registerRoutes(app)

	return &Server{app: app, cfg: cfg}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Info().Str("port", s.cfg.Server.Port).Msg("Server is running")
	return s.app.Listen(":" + s.cfg.Server.Port)
}

// errorHandler maps the failure taxonomy onto HTTP status codes. Internal
// failures are logged with full detail, the caller only sees a generic
// message.
func errorHandler(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &fiberErr):
		return ctx.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
	case errors.As(err, &validationErrs):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, rag.ErrNotReady):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "No video has been processed yet. Please process a video first using /process-video endpoint.",
		})
	case errors.Is(err, transcript.ErrTranscriptsDisabled), errors.Is(err, rag.ErrEmptyTranscript):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, rag.ErrUpstream):
		log.Error().Err(err).Str("path", ctx.Path()).Msg("Upstream service failure")
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"detail": err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.Path()).Msg("Unhandled error")
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error occurred"})
	}
}
