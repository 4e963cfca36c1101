package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sales-agent/backend/internal/dataset"
	"github.com/sales-agent/backend/internal/grounding"
	"github.com/sales-agent/backend/internal/llm"
	"github.com/sales-agent/backend/internal/metrics"
	"github.com/sales-agent/backend/pkg/logger"
)

type Decision string

const (
	DecisionAnswer Decision = "answer"
	DecisionRefuse Decision = "refuse"
)

// Response is the one shape callers ever see. The orchestrator never raises:
// every failure mode degrades into a well-formed Response.
type Response struct {
	Answer        string   `json:"answer"`
	Decision      Decision `json:"decision"`
	ReasoningNote string   `json:"reasoning_note"`
}

const refusalAnswer = "I'm not able to provide that information because it contains " +
	"sensitive customer data such as personal email addresses or contact details. " +
	"Please use approved internal processes for PII-protected information."

const refusalNote = "Refusal triggered due to PII/sensitive data request."

const answerNote = "Answered using aggregated context and safety-first logic."

const emptyModelAnswer = "[No text returned by model]"

const systemInstructions = `You are a Secure Sales Insights Agent.
Use ONLY the context and aggregates provided.
If a question is ambiguous, briefly state your assumption.
Do NOT hallucinate numbers not present in context.
Do NOT reveal emails or sensitive information.`

// Classifier decides whether a question must be refused. It is pure and
// infallible: no error path, always a boolean.
type Classifier func(question string) bool

type Orchestrator struct {
	store        *dataset.Store
	llmClient    llm.ChatClient
	classifier   Classifier
	buildContext func([]dataset.Record) string
	model        string
}

func NewOrchestrator(store *dataset.Store, llmClient llm.ChatClient, classifier Classifier, model string) *Orchestrator {
	return &Orchestrator{
		store:        store,
		llmClient:    llmClient,
		classifier:   classifier,
		buildContext: grounding.BuildContext,
		model:        model,
	}
}

// Answer runs the question through the decision pipeline. Classification
// happens strictly before any context or prompt assembly: a flagged question
// never causes aggregates to be computed or transmitted.
func (o *Orchestrator) Answer(ctx context.Context, question string) Response {
	start := time.Now()

	if o.classifier(question) {
		logger.Info("Question refused",
			zap.String("question", question),
		)
		metrics.QuestionsTotal.WithLabelValues(string(DecisionRefuse)).Inc()
		metrics.QuestionDuration.WithLabelValues(string(DecisionRefuse)).Observe(time.Since(start).Seconds())

		return Response{
			Answer:        refusalAnswer,
			Decision:      DecisionRefuse,
			ReasoningNote: refusalNote,
		}
	}

	contextBlock := o.buildContext(o.store.Records())

	userPrompt := fmt.Sprintf(
		"Question:\n%s\n\nContext:\n%s\n\nAnswer clearly and concisely, grounded only in this context.",
		question, contextBlock,
	)

	logger.Debug("Prompt assembled",
		zap.Int("context_bytes", len(contextBlock)),
		zap.Int("prompt_bytes", len(userPrompt)),
	)

	answer := o.complete(ctx, userPrompt)

	logger.Info("Question answered",
		zap.String("question", question),
		zap.Int("answer_length", len(answer)),
	)
	metrics.QuestionsTotal.WithLabelValues(string(DecisionAnswer)).Inc()
	metrics.QuestionDuration.WithLabelValues(string(DecisionAnswer)).Observe(time.Since(start).Seconds())

	return Response{
		Answer:        answer,
		Decision:      DecisionAnswer,
		ReasoningNote: answerNote,
	}
}

// complete calls the chat capability and absorbs every failure into the
// fallback answer text. Availability over precision: the caller always gets
// a usable string.
func (o *Orchestrator) complete(ctx context.Context, userPrompt string) string {
	result, err := o.llmClient.Chat(ctx, llm.ChatRequest{
		SystemPrompt: systemInstructions,
		UserPrompt:   userPrompt,
	})
	if err != nil {
		logger.Warn("LLM call failed, returning fallback answer", zap.Error(err))
		metrics.LLMFailuresTotal.Inc()
		return fmt.Sprintf(
			"I attempted to answer this question using the configured model (`%s`), "+
				"but the API call failed in this environment. In a real deployment, "+
				"please verify that the model name is available on this account.",
			o.model,
		)
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return emptyModelAnswer
	}
	return answer
}
