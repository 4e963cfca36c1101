package grounding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sales-agent/backend/internal/dataset"
)

func sampleRecords() []dataset.Record {
	return []dataset.Record{
		{Status: "active", PlanTier: "Enterprise", MonthlyRevenue: 52000, CustomFeatures: []string{"sso"}},
		{Status: "active", PlanTier: "Enterprise", MonthlyRevenue: 38500},
		{Status: "active", PlanTier: "Professional", MonthlyRevenue: 21400},
		{Status: "active", PlanTier: "Professional", MonthlyRevenue: 15200},
		{Status: "churned", PlanTier: "Professional", MonthlyRevenue: 8900},
		{Status: "paused", PlanTier: "Starter", MonthlyRevenue: 1200},
	}
}

func TestCompute(t *testing.T) {
	agg := Compute(sampleRecords())

	assert.Equal(t, 127100.0, agg.TotalActiveMRR)
	assert.Equal(t, 2, agg.EnterpriseCount)
	assert.Equal(t, 3, agg.ProfessionalCount)
}

func TestComputeEmptyDataset(t *testing.T) {
	agg := Compute(nil)

	assert.Equal(t, 0.0, agg.TotalActiveMRR)
	assert.Equal(t, 0, agg.EnterpriseCount)
	assert.Equal(t, 0, agg.ProfessionalCount)
}

func TestBuildContextRendersAggregates(t *testing.T) {
	block := BuildContext(sampleRecords())

	assert.Contains(t, block, "Total active MRR: 127,100")
	assert.Contains(t, block, "Enterprise customers: 2")
	assert.Contains(t, block, "Professional customers: 3")
	assert.Contains(t, block, "subscription_data.csv")
}

func TestBuildContextNeverLeaksRecordFields(t *testing.T) {
	records := []dataset.Record{
		{Status: "active", PlanTier: "Enterprise", MonthlyRevenue: 100,
			CustomFeatures: []string{"secret-feature-flag", "acme-dedicated-cluster"}},
	}

	block := BuildContext(records)

	assert.NotContains(t, block, "secret-feature-flag")
	assert.NotContains(t, block, "acme-dedicated-cluster")
}

// Output size must not grow with the dataset: the context block is the hard
// boundary between raw rows and the model.
func TestBuildContextBoundedSize(t *testing.T) {
	small := BuildContext(sampleRecords())

	big := make([]dataset.Record, 0, 10000)
	for i := 0; i < 10000; i++ {
		big = append(big, dataset.Record{Status: "active", PlanTier: "Professional", MonthlyRevenue: 1})
	}
	large := BuildContext(big)

	assert.InDelta(t, len(small), len(large), 32)
	assert.Equal(t, strings.Count(small, "\n"), strings.Count(large, "\n"))
}

func TestBuildContextDeterministic(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, BuildContext(records), BuildContext(records))
}
