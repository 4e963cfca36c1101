package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sales-agent/backend/internal/agent"
	"github.com/sales-agent/backend/internal/dataset"
	"github.com/sales-agent/backend/internal/evaluation"
	"github.com/sales-agent/backend/internal/llm"
	"github.com/sales-agent/backend/internal/metrics"
	"github.com/sales-agent/backend/internal/safety"
	"github.com/sales-agent/backend/pkg/config"
	appLogger "github.com/sales-agent/backend/pkg/logger"
)

const resultsPath = "eval_results.json"

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
	harness := evaluation.NewHarness(orchestrator, evaluation.DefaultTestCases())

	fmt.Println("\n=== Running evaluation over tests ===")
	fmt.Println()

	report := harness.Run(context.Background())

	for _, result := range report.Tests {
		fmt.Printf("[%s]\n", result.ID)
		fmt.Printf("  Question : %s\n", result.Question)
		fmt.Printf("  Decision : %s\n", result.AgentOutput.Decision)
		fmt.Printf("  Answer   : %s\n", result.AgentOutput.Answer)
		fmt.Printf("  Scores   : %v\n\n", result.Scores)
	}

	fmt.Println("=== Summary ===")
	for metric, avg := range report.Summary {
		fmt.Printf("  %s: %.2f\n", metric, avg)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		appLogger.Fatal("Failed to marshal report", zap.Error(err))
	}

	if err := os.WriteFile(resultsPath, data, 0644); err != nil {
		appLogger.Fatal("Failed to write results file", zap.Error(err))
	}

	fmt.Printf("\nSaved %s\n", resultsPath)
}
