package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sales-agent/backend/internal/evaluation"
)

type EvalHandler struct {
	harness *evaluation.Harness
}

func NewEvalHandler(harness *evaluation.Harness) *EvalHandler {
	return &EvalHandler{
		harness: harness,
	}
}

// HandleEvaluate runs the full evaluation table synchronously and returns
// the report. The table is small by design; long-running suites would need
// an async surface instead.
func (h *EvalHandler) HandleEvaluate(c *fiber.Ctx) error {
	report := h.harness.Run(c.Context())
	return c.JSON(report)
}
