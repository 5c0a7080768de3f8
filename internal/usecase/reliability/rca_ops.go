package reliability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

// ActionItemInput seeds one corrective or preventive action in pending state.
type ActionItemInput struct {
	Action      string
	Responsible string
	DueDate     string
}

type StartAnalysisInput struct {
	OrgID           string
	FailureRecordID string
	PerformedBy     string
	AnalysisDate    string

	ProblemStatement    string
	RootCauseCategory   string
	RootCauseID         string
	FiveWhys            []string
	ContributingFactors []string

	CorrectiveActions []ActionItemInput
	PreventiveActions []ActionItemInput

	VerificationRequired bool
}

// StartAnalysis opens a draft root cause analysis against a failure record.
// The record is re-fetched inside the transaction so the analysis never
// snapshots equipment linkage from a record deleted underneath it.
func (s *Service) StartAnalysis(ctx context.Context, input StartAnalysisInput) (ports.Analysis, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.Analysis{}, err
	}
	if s.failures == nil || s.analyses == nil {
		return ports.Analysis{}, errors.New("failure and analysis repositories are required")
	}
	if s.uow == nil {
		return ports.Analysis{}, errors.New("unit of work is required")
	}

	orgID := trimmedOrg(input.OrgID)
	if orgID == "" {
		return ports.Analysis{}, errOrgRequired
	}
	recordID := strings.TrimSpace(input.FailureRecordID)
	if recordID == "" {
		return ports.Analysis{}, errRecordIDRequired
	}
	performedBy := strings.TrimSpace(input.PerformedBy)
	if performedBy == "" {
		return ports.Analysis{}, errors.New("performed by is required")
	}

	category := ""
	if strings.TrimSpace(input.RootCauseCategory) != "" {
		normalized, err := domainrel.NormalizeRootCauseCategory(input.RootCauseCategory)
		if err != nil {
			return ports.Analysis{}, err
		}
		category = normalized
	}

	now := s.nowUTCString()
	analysisDate := strings.TrimSpace(input.AnalysisDate)
	if analysisDate == "" {
		analysisDate = now
	}

	analysis := ports.Analysis{
		AnalysisID:           uuid.NewString(),
		OrgID:                orgID,
		FailureRecordID:      recordID,
		AnalysisDate:         analysisDate,
		PerformedBy:          performedBy,
		ProblemStatement:     strings.TrimSpace(input.ProblemStatement),
		RootCauseCategory:    category,
		RootCauseID:          strings.TrimSpace(input.RootCauseID),
		FiveWhys:             input.FiveWhys,
		ContributingFactors:  input.ContributingFactors,
		CorrectiveActions:    pendingItems(input.CorrectiveActions),
		PreventiveActions:    pendingItems(input.PreventiveActions),
		VerificationRequired: input.VerificationRequired,
		Status:               domainrel.AnalysisStatusDraft,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	var created ports.Analysis
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		record, err := s.failures.Get(txCtx, orgID, recordID)
		if err != nil {
			return err
		}
		analysis.EquipmentID = record.EquipmentID
		analysis.EquipmentName = record.EquipmentName
		created, err = s.analyses.Create(txCtx, analysis)
		return err
	}); err != nil {
		return ports.Analysis{}, err
	}
	return created, nil
}

// BeginAnalysis moves a draft analysis into in_progress. The move is gated
// on a non-empty problem statement.
func (s *Service) BeginAnalysis(ctx context.Context, orgID, analysisID string) (ports.Analysis, error) {
	return s.transitionAnalysis(ctx, orgID, analysisID, domainrel.AnalysisStatusInProgress, nil)
}

// CompleteAnalysis moves an in_progress analysis into completed. Every
// corrective action must have left pending state first.
func (s *Service) CompleteAnalysis(ctx context.Context, orgID, analysisID string) (ports.Analysis, error) {
	return s.transitionAnalysis(ctx, orgID, analysisID, domainrel.AnalysisStatusCompleted, nil)
}

// VerifyAnalysis moves a completed analysis into verified, stamping the
// verification date and verifier. Only analyses opened with verification
// required can take this step.
func (s *Service) VerifyAnalysis(ctx context.Context, orgID, analysisID, verifiedBy string) (ports.Analysis, error) {
	verifiedBy = strings.TrimSpace(verifiedBy)
	if verifiedBy == "" {
		return ports.Analysis{}, errors.New("verified by is required")
	}
	return s.transitionAnalysis(ctx, orgID, analysisID, domainrel.AnalysisStatusVerified, func(analysis *ports.Analysis) {
		analysis.VerificationDate = s.nowUTCString()
		analysis.VerifiedBy = verifiedBy
	})
}

// Action item lists are addressed by kind plus zero-based position.
const (
	ActionListCorrective = "corrective"
	ActionListPreventive = "preventive"
)

// CompleteActionItem marks one corrective or preventive action as completed,
// stamping the completion date. Items on a terminal analysis are frozen.
func (s *Service) CompleteActionItem(ctx context.Context, orgID, analysisID, list string, index int) (ports.Analysis, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.Analysis{}, err
	}
	if s.analyses == nil {
		return ports.Analysis{}, errors.New("analysis repository is required")
	}
	if s.uow == nil {
		return ports.Analysis{}, errors.New("unit of work is required")
	}
	orgID = trimmedOrg(orgID)
	if orgID == "" {
		return ports.Analysis{}, errOrgRequired
	}
	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return ports.Analysis{}, errors.New("analysis id is required")
	}
	if list != ActionListCorrective && list != ActionListPreventive {
		return ports.Analysis{}, fmt.Errorf("unknown action list %q", list)
	}

	var updated ports.Analysis
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		analysis, err := s.analyses.Get(txCtx, orgID, analysisID)
		if err != nil {
			return err
		}
		if domainrel.AnalysisTerminal(analysis.Status, analysis.VerificationRequired) {
			return ErrAnalysisImmutable
		}

		items := analysis.CorrectiveActions
		if list == ActionListPreventive {
			items = analysis.PreventiveActions
		}
		if index < 0 || index >= len(items) {
			return fmt.Errorf("%s action index %d out of range", list, index)
		}
		items[index].Status = domainrel.ActionItemCompleted
		items[index].CompletedDate = s.nowUTCString()

		analysis.UpdatedAt = s.nowUTCString()
		updated, err = s.analyses.Update(txCtx, analysis)
		return err
	})
	if err != nil {
		return ports.Analysis{}, err
	}
	return updated, nil
}

// GetAnalysis loads one analysis within the organization scope.
func (s *Service) GetAnalysis(ctx context.Context, orgID, analysisID string) (ports.Analysis, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.Analysis{}, err
	}
	if s.analyses == nil {
		return ports.Analysis{}, errors.New("analysis repository is required")
	}
	orgID = trimmedOrg(orgID)
	if orgID == "" {
		return ports.Analysis{}, ports.ErrAnalysisNotFound
	}
	return s.analyses.Get(ctx, orgID, strings.TrimSpace(analysisID))
}

// ListAnalyses returns the organization's analyses, newest first.
func (s *Service) ListAnalyses(ctx context.Context, orgID string) ([]ports.Analysis, error) {
	if err := s.checkCtx(ctx); err != nil {
		return nil, err
	}
	if s.analyses == nil {
		return nil, errors.New("analysis repository is required")
	}
	orgID = trimmedOrg(orgID)
	if orgID == "" {
		return nil, nil
	}
	return s.analyses.List(ctx, orgID)
}

// ListAnalysesForFailure returns the analyses attached to one failure record.
func (s *Service) ListAnalysesForFailure(ctx context.Context, orgID, failureRecordID string) ([]ports.Analysis, error) {
	if err := s.checkCtx(ctx); err != nil {
		return nil, err
	}
	if s.analyses == nil {
		return nil, errors.New("analysis repository is required")
	}
	orgID = trimmedOrg(orgID)
	if orgID == "" {
		return nil, nil
	}
	return s.analyses.ListByFailureRecord(ctx, orgID, strings.TrimSpace(failureRecordID))
}

func (s *Service) transitionAnalysis(ctx context.Context, orgID, analysisID, next string, stamp func(*ports.Analysis)) (ports.Analysis, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.Analysis{}, err
	}
	if s.analyses == nil {
		return ports.Analysis{}, errors.New("analysis repository is required")
	}
	if s.uow == nil {
		return ports.Analysis{}, errors.New("unit of work is required")
	}
	orgID = trimmedOrg(orgID)
	if orgID == "" {
		return ports.Analysis{}, errOrgRequired
	}
	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return ports.Analysis{}, errors.New("analysis id is required")
	}

	var updated ports.Analysis
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		analysis, err := s.analyses.Get(txCtx, orgID, analysisID)
		if err != nil {
			return err
		}

		transition := domainrel.AnalysisTransition{
			Current:                  analysis.Status,
			Next:                     next,
			VerificationRequired:     analysis.VerificationRequired,
			ProblemStatement:         analysis.ProblemStatement,
			CorrectiveActionStatuses: itemStatuses(analysis.CorrectiveActions),
		}
		if err := domainrel.EvaluateAnalysisTransition(transition); err != nil {
			return err
		}

		analysis.Status = next
		if stamp != nil {
			stamp(&analysis)
		}
		analysis.UpdatedAt = s.nowUTCString()
		updated, err = s.analyses.Update(txCtx, analysis)
		return err
	})
	if err != nil {
		return ports.Analysis{}, err
	}
	return updated, nil
}

func pendingItems(inputs []ActionItemInput) []ports.ActionItem {
	if len(inputs) == 0 {
		return nil
	}
	items := make([]ports.ActionItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, ports.ActionItem{
			Action:      strings.TrimSpace(in.Action),
			Responsible: strings.TrimSpace(in.Responsible),
			DueDate:     strings.TrimSpace(in.DueDate),
			Status:      domainrel.ActionItemPending,
		})
	}
	return items
}

func itemStatuses(items []ports.ActionItem) []string {
	if len(items) == 0 {
		return nil
	}
	statuses := make([]string, 0, len(items))
	for _, item := range items {
		statuses = append(statuses, item.Status)
	}
	return statuses
}
