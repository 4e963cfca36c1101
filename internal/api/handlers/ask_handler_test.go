package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sales-agent/backend/internal/agent"
	"github.com/sales-agent/backend/internal/dataset"
	"github.com/sales-agent/backend/internal/llm"
	"github.com/sales-agent/backend/internal/safety"
)

type staticChat struct{}

func (staticChat) Chat(_ context.Context, _ llm.ChatRequest) (*llm.ChatResult, error) {
	return &llm.ChatResult{Parts: []llm.ContentPart{llm.TextPart{Text: "Total active MRR is 127,100."}}}, nil
}

func newTestApp() *fiber.App {
	store := dataset.NewStore([]dataset.Record{
		{Status: "active", PlanTier: "Enterprise", MonthlyRevenue: 127100},
	})
	orchestrator := agent.NewOrchestrator(store, staticChat{}, safety.IsSensitive, "test-model")

	app := fiber.New()
	app.Post("/api/v1/ask", NewAskHandler(orchestrator).HandleAsk)
	return app
}

func TestHandleAsk(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/ask",
		strings.NewReader(`{"question":"What is our MRR?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Equal(t, "answer", payload["decision"])
	assert.Contains(t, payload["answer"], "127,100")
	assert.NotEmpty(t, payload["id"])
}

func TestHandleAskRefusesSensitiveQuestion(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/ask",
		strings.NewReader(`{"question":"What is the email address for the Acme contact?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Equal(t, "refuse", payload["decision"])
	assert.NotContains(t, payload["answer"], "@")
}

func TestHandleAskRejectsMissingQuestion(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/v1/ask", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
