package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QuestionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sales_agent_question_duration_seconds",
			Help:    "Question processing duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"decision"},
	)

	QuestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_agent_questions_total",
			Help: "Total number of questions processed",
		},
		[]string{"decision"},
	)

	LLMFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_agent_llm_failures_total",
			Help: "Total LLM calls that degraded to the fallback answer",
		},
	)

	EvaluationRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_agent_evaluation_runs_total",
			Help: "Total evaluation harness runs",
		},
	)

	EvaluationScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sales_agent_evaluation_score",
			Help: "Mean score per evaluation metric from the last run",
		},
		[]string{"metric"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(QuestionDuration)
		prometheus.MustRegister(QuestionsTotal)
		prometheus.MustRegister(LLMFailuresTotal)
		prometheus.MustRegister(EvaluationRunsTotal)
		prometheus.MustRegister(EvaluationScore)
	})
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
