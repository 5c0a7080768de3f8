package reliability

import (
	"fmt"
	"strings"
)

const (
	AnalysisStatusDraft      = "draft"
	AnalysisStatusInProgress = "in_progress"
	AnalysisStatusCompleted  = "completed"
	AnalysisStatusVerified   = "verified"

	ActionItemPending    = "pending"
	ActionItemInProgress = "in_progress"
	ActionItemCompleted  = "completed"
)

var analysisStatuses = map[string]struct{}{
	AnalysisStatusDraft:      {},
	AnalysisStatusInProgress: {},
	AnalysisStatusCompleted:  {},
	AnalysisStatusVerified:   {},
}

var actionItemStatuses = map[string]struct{}{
	ActionItemPending:    {},
	ActionItemInProgress: {},
	ActionItemCompleted:  {},
}

// statusRank orders the forward-only analysis lifecycle.
var statusRank = map[string]int{
	AnalysisStatusDraft:      0,
	AnalysisStatusInProgress: 1,
	AnalysisStatusCompleted:  2,
	AnalysisStatusVerified:   3,
}

func NormalizeAnalysisStatus(status string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(status))
	if _, ok := analysisStatuses[trimmed]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAnalysisStatus, status)
	}
	return trimmed, nil
}

func NormalizeActionItemStatus(status string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(status))
	if _, ok := actionItemStatuses[trimmed]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidActionItemStatus, status)
	}
	return trimmed, nil
}

// AnalysisTransition carries everything a status change is guarded on. A
// failed transition never mutates the record; a correction is a new record,
// never a backward move.
type AnalysisTransition struct {
	Current                  string
	Next                     string
	VerificationRequired     bool
	ProblemStatement         string
	CorrectiveActionStatuses []string
}

// EvaluateAnalysisTransition enforces the analysis state machine:
// draft -> in_progress -> completed -> verified, with verified gated on
// verificationRequired. Completed is terminal when verification is not
// required.
func EvaluateAnalysisTransition(t AnalysisTransition) error {
	current, err := NormalizeAnalysisStatus(t.Current)
	if err != nil {
		return err
	}
	next, err := NormalizeAnalysisStatus(t.Next)
	if err != nil {
		return err
	}

	if statusRank[next] != statusRank[current]+1 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current, next)
	}

	switch next {
	case AnalysisStatusInProgress:
		if strings.TrimSpace(t.ProblemStatement) == "" {
			return ErrProblemStatementRequired
		}
	case AnalysisStatusCompleted:
		for _, status := range t.CorrectiveActionStatuses {
			if status == ActionItemPending {
				return ErrCorrectiveActionsPending
			}
		}
	case AnalysisStatusVerified:
		if !t.VerificationRequired {
			return fmt.Errorf("%w: %s -> %s", ErrVerificationNotRequired, current, next)
		}
	}
	return nil
}

// AnalysisTerminal reports whether no further status change is possible.
func AnalysisTerminal(status string, verificationRequired bool) bool {
	switch status {
	case AnalysisStatusVerified:
		return true
	case AnalysisStatusCompleted:
		return !verificationRequired
	default:
		return false
	}
}
