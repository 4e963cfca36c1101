package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sales-agent/backend/pkg/logger"
)

// Record is one normalized customer subscription row. Numeric fields are
// never missing: unparsable or absent values coerce to zero at load time.
type Record struct {
	Status             string
	PlanTier           string
	MonthlyRevenue     float64
	AnnualRevenue      float64
	SeatsPurchased     int
	SeatsUsed          int
	OutstandingBalance float64
	AutoRenew          bool
	CustomFeatures     []string
}

// Store holds the subscription records loaded at startup. It is read-only
// for the lifetime of the process, so it is safe to share across requests.
type Store struct {
	records []Record
}

func NewStore(records []Record) *Store {
	return &Store{records: records}
}

func (s *Store) Records() []Record {
	return s.records
}

func (s *Store) Count() int {
	return len(s.records)
}

// Load reads the subscription CSV and normalizes every row. Column order is
// taken from the header; unknown columns are ignored. Data-quality problems
// are coerced, not raised: this mirrors an internal data-quality layer.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if len(rows) == 0 {
		logger.Warn("Dataset is empty", zap.String("path", path))
		return NewStore(nil), nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, normalizeRow(row, columns))
	}

	logger.Info("Dataset loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)

	return NewStore(records), nil
}

func normalizeRow(row []string, columns map[string]int) Record {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return Record{
		Status:             field("status"),
		PlanTier:           field("plan_tier"),
		MonthlyRevenue:     parseFloat(field("monthly_revenue")),
		AnnualRevenue:      parseFloat(field("annual_revenue")),
		SeatsPurchased:     parseInt(field("seats_purchased")),
		SeatsUsed:          parseInt(field("seats_used")),
		OutstandingBalance: parseFloat(field("outstanding_balance")),
		AutoRenew:          parseBool(field("auto_renew")),
		CustomFeatures:     parseFeatures(field("custom_features")),
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseBool accepts the truthy tokens TRUE, T and 1 (case-insensitive);
// everything else is false.
func parseBool(s string) bool {
	switch strings.ToUpper(s) {
	case "TRUE", "T", "1":
		return true
	default:
		return false
	}
}

func parseFeatures(s string) []string {
	features := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			features = append(features, part)
		}
	}
	return features
}
