package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sales-agent/backend/internal/agent"
	"github.com/sales-agent/backend/internal/dataset"
	"github.com/sales-agent/backend/internal/llm"
	"github.com/sales-agent/backend/internal/metrics"
	"github.com/sales-agent/backend/internal/safety"
	"github.com/sales-agent/backend/pkg/config"
	appLogger "github.com/sales-agent/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	metrics.Init()

	store, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		appLogger.Fatal("Failed to load dataset", zap.Error(err))
	}

	llmClient := llm.NewClient(
		cfg.LLM.APIKey,
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		cfg.LLM.Temperature,
		cfg.LLM.MaxTokens,
		cfg.LLM.TimeoutSec,
	)

	orchestrator := agent.NewOrchestrator(store, llmClient, safety.IsSensitive, cfg.LLM.Model)

	sampleQuestion := "What is our total Monthly Recurring Revenue (MRR) from active subscriptions?"
	result := orchestrator.Answer(context.Background(), sampleQuestion)

	fmt.Println("Question:", sampleQuestion)
	fmt.Println("Decision:", result.Decision)
	fmt.Println("Answer:", result.Answer)
	fmt.Println("Reasoning:", result.ReasoningNote)
}
