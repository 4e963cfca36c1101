package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sales-agent/backend/internal/agent"
	"github.com/sales-agent/backend/pkg/logger"
)

type AskHandler struct {
	orchestrator *agent.Orchestrator
}

func NewAskHandler(orchestrator *agent.Orchestrator) *AskHandler {
	return &AskHandler{
		orchestrator: orchestrator,
	}
}

func (h *AskHandler) HandleAsk(c *fiber.Ctx) error {
	var req struct {
		Question string `json:"question"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}

	requestID := uuid.New().String()
	start := time.Now()

	response := h.orchestrator.Answer(c.Context(), req.Question)

	return c.JSON(fiber.Map{
		"id":             requestID,
		"question":       req.Question,
		"answer":         response.Answer,
		"decision":       response.Decision,
		"reasoning_note": response.ReasoningNote,
		"latency_ms":     time.Since(start).Milliseconds(),
	})
}
