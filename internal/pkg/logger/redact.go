package logger

import "strings"

// RedactEmail masks an email address for safe logging.
// "john.doe@example.com" → "jo***@example.com"
// Short local parts (≤2 chars) are fully masked: "ab@example.com" → "***@example.com"
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}

// RedactName masks a customer name, keeping only the first letter of each word.
// "Margaret Spencer" → "M*** S***"
func RedactName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "***"
	}
	masked := make([]string, len(words))
	for i, w := range words {
		masked[i] = w[:1] + "***"
	}
	return strings.Join(masked, " ")
}

// RedactCustomerID keeps a short prefix of a customer identifier so log lines
// stay correlatable without exposing the full ID.
// "CUST-00123456" → "CUST-001***"
func RedactCustomerID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "***"
}
