package redact

import (
	"regexp"
	"strings"

	"github.com/dshills/userform/internal/record"
)

const redacted = "[REDACTED]"

// patterns holds personal-data regexes applied to free text in priority order.
var patterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	// DD/MM/YYYY dates
	regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`),
	// Bearer tokens, require minimum 20-char token to avoid false positives
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]{20,}=*`),
}

// Redact replaces personal data in input with [REDACTED]. Line structure is
// preserved.
func Redact(input string) string {
	for _, re := range patterns {
		input = re.ReplaceAllString(input, redacted)
	}
	return input
}

// Email keeps the first character of the local part and the domain.
func Email(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		if email == "" {
			return ""
		}
		return redacted
	}
	return string([]rune(email)[:1]) + "***" + email[at:]
}

// Name reduces a full name to its initials.
func Name(name string) string {
	var initials []string
	for _, part := range strings.Fields(name) {
		initials = append(initials, string([]rune(part)[0])+".")
	}
	return strings.Join(initials, " ")
}

// Record returns zap-style key/value pairs describing r with personal data
// masked. The birth date keeps only its year.
func Record(r record.FormRecord) []interface{} {
	birth := ""
	if parts := strings.Split(r.BirthDate, "/"); len(parts) == 3 {
		birth = "**/**/" + parts[2]
	} else if r.BirthDate != "" {
		birth = redacted
	}
	return []interface{}{
		"fullName", Name(r.FullName),
		"birthDate", birth,
		"email", Email(r.Email),
		"userDepartment", r.DepartmentID,
		"formTerms", r.AcceptedTerms,
	}
}
