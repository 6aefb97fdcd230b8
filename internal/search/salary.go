package search

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/semizhon/hh-kz-cad/internal/domain"
)

var salaryPrinter = message.NewPrinter(language.English)

// FormatSalary renders a salary as "{from}–{to} {currency}" with thousands
// separators. A zero or absent bound is omitted; when both are absent the
// result is nil. No currency conversion is performed.
func FormatSalary(s *domain.Salary) *string {
	if s == nil {
		return nil
	}

	var parts []string
	if s.From != nil && *s.From != 0 {
		parts = append(parts, salaryPrinter.Sprintf("%d", *s.From))
	}
	if s.To != nil && *s.To != 0 {
		parts = append(parts, salaryPrinter.Sprintf("%d", *s.To))
	}
	if len(parts) == 0 {
		return nil
	}

	formatted := strings.TrimSpace(strings.Join(parts, "–") + " " + s.Currency)
	return &formatted
}
