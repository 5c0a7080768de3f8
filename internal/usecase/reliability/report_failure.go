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

type ReportFailureInput struct {
	OrgID           string
	WorkOrderID     string
	WorkOrderNumber string
	EquipmentID     string
	EquipmentName   string
	FailureCodeID   string
	FailureDate     string
	ReportedBy      string
	ReportedByName  string
	Description     string
	DowntimeHours   float64
	RepairHours     float64
	PartsCost       float64
	LaborCost       float64
	RootCauseID     string
	ActionTakenID   string
	FiveWhys        []string

	CorrectiveActions []string
	PreventiveActions []string

	PreviousFailureID string
}

// ReportFailure validates and records a new failure event. All invariants
// run before the first write: a rejected report leaves no partial row.
// Taxonomy code strings are snapshotted onto the record at this moment.
func (s *Service) ReportFailure(ctx context.Context, input ReportFailureInput) (ports.FailureRecord, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.FailureRecord{}, err
	}
	if s.failures == nil {
		return ports.FailureRecord{}, errors.New("failure repository is required")
	}
	if s.taxonomy == nil {
		return ports.FailureRecord{}, errors.New("taxonomy repository is required")
	}
	if s.uow == nil {
		return ports.FailureRecord{}, errors.New("unit of work is required")
	}

	orgID := trimmedOrg(input.OrgID)
	if orgID == "" {
		return ports.FailureRecord{}, errOrgRequired
	}

	draft := domainrel.FailureDraft{
		EquipmentID:   input.EquipmentID,
		FailureCodeID: input.FailureCodeID,
		FailureDate:   input.FailureDate,
		ReportedBy:    input.ReportedBy,
		DowntimeHours: input.DowntimeHours,
		RepairHours:   input.RepairHours,
		PartsCost:     input.PartsCost,
		LaborCost:     input.LaborCost,
	}
	if err := domainrel.ValidateFailureDraft(draft, s.now().UTC()); err != nil {
		return ports.FailureRecord{}, err
	}

	code, err := s.taxonomy.GetFailureCode(ctx, orgID, strings.TrimSpace(input.FailureCodeID))
	if err != nil {
		return ports.FailureRecord{}, err
	}
	if !code.IsActive {
		return ports.FailureRecord{}, fmt.Errorf("failure code %s is inactive", code.Code)
	}

	rootCauseCode := ""
	if id := strings.TrimSpace(input.RootCauseID); id != "" {
		cause, err := s.taxonomy.GetRootCause(ctx, orgID, id)
		if err != nil {
			return ports.FailureRecord{}, err
		}
		rootCauseCode = cause.Code
	}

	actionTakenCode := ""
	if id := strings.TrimSpace(input.ActionTakenID); id != "" {
		action, err := s.taxonomy.GetActionTaken(ctx, orgID, id)
		if err != nil {
			return ports.FailureRecord{}, err
		}
		actionTakenCode = action.Code
	}

	isRecurring := false
	previousID := strings.TrimSpace(input.PreviousFailureID)
	if previousID != "" {
		previous, err := s.failures.Get(ctx, orgID, previousID)
		if err != nil {
			return ports.FailureRecord{}, err
		}
		link := domainrel.RecurrenceLink{
			EquipmentID:         strings.TrimSpace(input.EquipmentID),
			FailureDate:         input.FailureDate,
			PreviousEquipmentID: previous.EquipmentID,
			PreviousFailureDate: previous.FailureDate,
		}
		if err := domainrel.ValidateRecurrenceLink(link); err != nil {
			return ports.FailureRecord{}, err
		}
		isRecurring = true
	}

	now := s.nowUTCString()
	record := ports.FailureRecord{
		FailureRecordID:   uuid.NewString(),
		OrgID:             orgID,
		WorkOrderID:       strings.TrimSpace(input.WorkOrderID),
		WorkOrderNumber:   strings.TrimSpace(input.WorkOrderNumber),
		EquipmentID:       strings.TrimSpace(input.EquipmentID),
		EquipmentName:     strings.TrimSpace(input.EquipmentName),
		FailureCodeID:     code.FailureCodeID,
		FailureCode:       code.Code,
		FailureDate:       strings.TrimSpace(input.FailureDate),
		ReportedBy:        strings.TrimSpace(input.ReportedBy),
		ReportedByName:    strings.TrimSpace(input.ReportedByName),
		Description:       strings.TrimSpace(input.Description),
		DowntimeHours:     input.DowntimeHours,
		RepairHours:       input.RepairHours,
		PartsCost:         input.PartsCost,
		LaborCost:         input.LaborCost,
		RootCauseID:       strings.TrimSpace(input.RootCauseID),
		RootCauseCode:     rootCauseCode,
		ActionTakenID:     strings.TrimSpace(input.ActionTakenID),
		ActionTakenCode:   actionTakenCode,
		FiveWhys:          input.FiveWhys,
		CorrectiveActions: input.CorrectiveActions,
		PreventiveActions: input.PreventiveActions,
		IsRecurring:       isRecurring,
		PreviousFailureID: previousID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var created ports.FailureRecord
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.failures.Create(txCtx, record)
		return err
	}); err != nil {
		return ports.FailureRecord{}, err
	}

	s.invalidateFleetCache(ctx, orgID)
	return created, nil
}
