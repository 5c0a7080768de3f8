package reliability

import (
	"errors"
	"testing"
)

func TestEvaluateAnalysisTransitionForwardPath(t *testing.T) {
	err := EvaluateAnalysisTransition(AnalysisTransition{
		Current:          AnalysisStatusDraft,
		Next:             AnalysisStatusInProgress,
		ProblemStatement: "press jams under load",
	})
	if err != nil {
		t.Fatalf("draft -> in_progress error = %v", err)
	}

	err = EvaluateAnalysisTransition(AnalysisTransition{
		Current:                  AnalysisStatusInProgress,
		Next:                     AnalysisStatusCompleted,
		CorrectiveActionStatuses: []string{ActionItemCompleted, ActionItemInProgress},
	})
	if err != nil {
		t.Fatalf("in_progress -> completed error = %v", err)
	}

	err = EvaluateAnalysisTransition(AnalysisTransition{
		Current:              AnalysisStatusCompleted,
		Next:                 AnalysisStatusVerified,
		VerificationRequired: true,
	})
	if err != nil {
		t.Fatalf("completed -> verified error = %v", err)
	}
}

func TestEvaluateAnalysisTransitionGuards(t *testing.T) {
	err := EvaluateAnalysisTransition(AnalysisTransition{
		Current: AnalysisStatusDraft,
		Next:    AnalysisStatusInProgress,
	})
	if !errors.Is(err, ErrProblemStatementRequired) {
		t.Fatalf("error = %v, want ErrProblemStatementRequired", err)
	}

	err = EvaluateAnalysisTransition(AnalysisTransition{
		Current:                  AnalysisStatusInProgress,
		Next:                     AnalysisStatusCompleted,
		CorrectiveActionStatuses: []string{ActionItemPending},
	})
	if !errors.Is(err, ErrCorrectiveActionsPending) {
		t.Fatalf("error = %v, want ErrCorrectiveActionsPending", err)
	}
}

func TestVerifyWithoutVerificationRequiredRejected(t *testing.T) {
	err := EvaluateAnalysisTransition(AnalysisTransition{
		Current: AnalysisStatusCompleted,
		Next:    AnalysisStatusVerified,
	})
	if !errors.Is(err, ErrVerificationNotRequired) {
		t.Fatalf("error = %v, want ErrVerificationNotRequired", err)
	}
}

func TestNoBackwardOrSkippingTransitions(t *testing.T) {
	cases := []struct{ current, next string }{
		{AnalysisStatusCompleted, AnalysisStatusDraft},
		{AnalysisStatusInProgress, AnalysisStatusDraft},
		{AnalysisStatusVerified, AnalysisStatusCompleted},
		{AnalysisStatusDraft, AnalysisStatusCompleted},
		{AnalysisStatusDraft, AnalysisStatusVerified},
		{AnalysisStatusInProgress, AnalysisStatusVerified},
	}
	for _, tc := range cases {
		err := EvaluateAnalysisTransition(AnalysisTransition{
			Current:              tc.current,
			Next:                 tc.next,
			VerificationRequired: true,
			ProblemStatement:     "set",
		})
		if !errors.Is(err, ErrInvalidStatusTransition) {
			t.Fatalf("%s -> %s error = %v, want ErrInvalidStatusTransition", tc.current, tc.next, err)
		}
	}
}

func TestAnalysisTerminal(t *testing.T) {
	if !AnalysisTerminal(AnalysisStatusVerified, true) {
		t.Fatal("verified must be terminal")
	}
	if !AnalysisTerminal(AnalysisStatusCompleted, false) {
		t.Fatal("completed without verification requirement must be terminal")
	}
	if AnalysisTerminal(AnalysisStatusCompleted, true) {
		t.Fatal("completed with verification pending is not terminal")
	}
	if AnalysisTerminal(AnalysisStatusDraft, false) {
		t.Fatal("draft is not terminal")
	}
}
