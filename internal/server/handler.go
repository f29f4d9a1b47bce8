package server

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"chattube/internal/models"
	"chattube/internal/rag"
)

var validate = validator.New()

type handler struct {
	svc *rag.Service
}

func (h *handler) registerRoutes(app *fiber.App) {
	app.Get("/", h.health)
	app.Get("/health", h.health)
	app.Get("/status", h.status)
	app.Post("/process-video", h.processVideo)
	app.Post("/chat", h.chat)
}

func (h *handler) health(ctx *fiber.Ctx) error {
	return ctx.JSON(models.HealthResponse{
		Status:  "healthy",
		Message: "ChatTube RAG API is running successfully",
	})
}

func (h *handler) status(ctx *fiber.Ctx) error {
	return ctx.JSON(h.svc.Status())
}

func (h *handler) processVideo(ctx *fiber.Ctx) error {
	var req models.ProcessVideoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	result, err := h.svc.ProcessVideo(ctx.Context(), req.VideoID)
	if err != nil {
		return err
	}

	return ctx.JSON(models.ProcessVideoResponse{
		Message:     result.Message,
		VideoID:     result.VideoID,
		ChunksCount: result.ChunksCount,
		Status:      "success",
	})
}

func (h *handler) chat(ctx *fiber.Ctx) error {
	var req models.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	answer, err := h.svc.Ask(ctx.Context(), req.Question)
	if err != nil {
		return err
	}

	return ctx.JSON(models.ChatResponse{
		Answer: answer,
		Status: "success",
	})
}
