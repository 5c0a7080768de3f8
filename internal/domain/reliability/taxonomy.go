package reliability

import (
	"fmt"
	"sort"
	"strings"
)

var failureCategories = map[string]struct{}{
	"mechanical":      {},
	"electrical":      {},
	"hydraulic":       {},
	"pneumatic":       {},
	"instrumentation": {},
	"structural":      {},
	"process":         {},
	"operator":        {},
	"external":        {},
	"software":        {},
	"operator_error":  {},
	"environmental":   {},
	"material":        {},
	"other":           {},
}

var severities = map[string]struct{}{
	"minor":    {},
	"moderate": {},
	"major":    {},
	"critical": {},
}

var rootCauseCategories = map[string]struct{}{
	"equipment":   {},
	"process":     {},
	"people":      {},
	"materials":   {},
	"environment": {},
	"management":  {},
}

// NormalizeFailureCategory lowercases and validates against the closed
// failure category vocabulary.
func NormalizeFailureCategory(category string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(category))
	if trimmed == "" {
		return "", nil
	}
	if _, ok := failureCategories[trimmed]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return trimmed, nil
}

func NormalizeSeverity(severity string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(severity))
	if trimmed == "" {
		return "", nil
	}
	if _, ok := severities[trimmed]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, severity)
	}
	return trimmed, nil
}

func NormalizeRootCauseCategory(category string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(category))
	if trimmed == "" {
		return "", nil
	}
	if _, ok := rootCauseCategories[trimmed]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRootCauseCategory, category)
	}
	return trimmed, nil
}

// FailureCategories returns the closed vocabulary for validation and
// reference pickers, sorted for reproducible listings.
func FailureCategories() []string {
	return sortedKeys(failureCategories)
}

func Severities() []string {
	return sortedKeys(severities)
}

func RootCauseCategories() []string {
	return sortedKeys(rootCauseCategories)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
