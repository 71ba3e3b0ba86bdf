package core

// eligibility.go decides which inventory rows are in scope for compliance
// tracking. Scope is expressed as substring rules against inventory columns
// ("Familia SO" must contain "Windows", "Capacidad Primaria" must contain
// "Servidor" by default). Rows that fail any rule are classified Ineligible
// instead of being dropped, so the report still accounts for them.

import (
	"fmt"
	"strings"
)

// EligibilityRule requires an inventory column to contain a substring,
// case-insensitively. A missing or empty column fails the rule.
type EligibilityRule struct {
	Column   string
	Contains string
}

// Matches reports whether the rule accepts the given row fields.
func (r EligibilityRule) Matches(fields map[string]string) bool {
	v, ok := fields[r.Column]
	if !ok || strings.TrimSpace(v) == "" {
		return false
	}
	return strings.Contains(strings.ToLower(v), strings.ToLower(r.Contains))
}

// ParseEligibilityRules parses a comma-separated list of "Column~Substring"
// rules, e.g. "Familia SO~Windows,Capacidad Primaria~Servidor".
// An empty input yields no rules, meaning every row is eligible.
func ParseEligibilityRules(s string) ([]EligibilityRule, error) {
	var rules []EligibilityRule
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		col, substr, ok := strings.Cut(part, "~")
		col, substr = strings.TrimSpace(col), strings.TrimSpace(substr)
		if !ok || col == "" || substr == "" {
			return nil, fmt.Errorf("invalid eligibility rule %q (want Column~Substring)", part)
		}
		rules = append(rules, EligibilityRule{Column: col, Contains: substr})
	}
	return rules, nil
}

// Eligible reports whether a row passes every rule. No rules means eligible.
func Eligible(fields map[string]string, rules []EligibilityRule) bool {
	for _, r := range rules {
		if !r.Matches(fields) {
			return false
		}
	}
	return true
}
