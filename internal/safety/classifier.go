package safety

import "strings"

// Keyword lists are deliberately over-inclusive: a false refusal on a
// legitimate aggregate question is acceptable, a leaked record is not.

var piiKeywords = []string{
	"email",
	"address",
	"phone",
	"contact info",
	"credit card",
	"card number",
}

var bulkExfiltration = []string{
	"all customer data",
	"export",
	"full csv",
	"full dataset",
	"every customer",
}

// IsSensitive reports whether a question asks for PII or bulk data export.
// Pure substring containment, no tokenization. A literal '@' anywhere in
// the original question is an automatic flag.
func IsSensitive(question string) bool {
	q := strings.ToLower(question)

	for _, word := range piiKeywords {
		if strings.Contains(q, word) {
			return true
		}
	}

	for _, word := range bulkExfiltration {
		if strings.Contains(q, word) {
			return true
		}
	}

	return strings.Contains(question, "@")
}
