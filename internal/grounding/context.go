package grounding

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sales-agent/backend/internal/dataset"
)

// Aggregates is the only shape of dataset information that ever reaches the
// model: three pre-computed numbers, no per-record fields.
type Aggregates struct {
	TotalActiveMRR    float64
	EnterpriseCount   int
	ProfessionalCount int
}

func Compute(records []dataset.Record) Aggregates {
	var agg Aggregates
	for _, r := range records {
		if r.Status == "active" {
			agg.TotalActiveMRR += r.MonthlyRevenue
		}
		switch r.PlanTier {
		case "Enterprise":
			agg.EnterpriseCount++
		case "Professional":
			agg.ProfessionalCount++
		}
	}
	return agg
}

// BuildContext renders the aggregates into the fixed grounding block handed
// to the model. Output size is constant regardless of dataset size; this is
// the hard boundary keeping raw rows away from the LLM, not a formatting
// convenience.
func BuildContext(records []dataset.Record) string {
	agg := Compute(records)

	var b strings.Builder
	b.WriteString("AGGREGATES:\n")
	b.WriteString(fmt.Sprintf("- Total active MRR: %s\n", humanize.Commaf(agg.TotalActiveMRR)))
	b.WriteString(fmt.Sprintf("- Enterprise customers: %d\n", agg.EnterpriseCount))
	b.WriteString(fmt.Sprintf("- Professional customers: %d\n", agg.ProfessionalCount))
	b.WriteString("\nNOTES:\n")
	b.WriteString("- Data comes from subscription_data.csv\n")
	b.WriteString("- All values are pre-computed before reaching the LLM")

	return b.String()
}
