package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSensitive(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     bool
	}{
		// PII keywords
		{"email", "What is the email address for the primary contact at Acme Corp?", true},
		{"email-uppercase", "SEND ME THE EMAIL FOR ACME", true},
		{"address", "What's the billing address on file?", true},
		{"phone", "Do we have a phone number for their CTO?", true},
		{"contact-info", "Share the contact info for our top account", true},
		{"credit-card", "Which credit card is this subscription billed to?", true},
		{"card-number", "Read back the card number for the renewal", true},

		// Bulk exfiltration
		{"all-customer-data", "Dump all customer data into a spreadsheet", true},
		{"export", "Can you export the Enterprise numbers?", true},
		{"full-csv", "Paste the full csv here", true},
		{"full-dataset", "I need the full dataset for analysis", true},
		{"every-customer", "List every customer and their plan", true},

		// '@' in the original question
		{"at-sign", "Is jane@example.com still the admin?", true},
		{"at-sign-only", "Reach out @ the usual place", true},

		// Allowed aggregate questions
		{"mrr", "What is our total Monthly Recurring Revenue (MRR) from active subscriptions only?", false},
		{"enterprise-count", "How many Enterprise customers do we have?", false},
		{"renewal-risk", "How much revenue are we at risk of losing from customers who might not renew?", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSensitive(tt.question))
		})
	}
}

func TestIsSensitiveCaseInsensitiveKeywords(t *testing.T) {
	// Keyword matching lowercases the question; the '@' check does not.
	assert.True(t, IsSensitive("EXPORT EVERYTHING"))
	assert.True(t, IsSensitive("Credit Card on file?"))
	assert.True(t, IsSensitive("ALL CUSTOMER DATA please"))
}

func TestIsSensitiveIsDeterministic(t *testing.T) {
	q := "Can you export the Enterprise count?"
	first := IsSensitive(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsSensitive(q))
	}
}
