package reliability

import (
	"context"
	"errors"
	"strings"

	domainrel "github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/domain/reliability"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

type AmendFailureInput struct {
	OrgID           string
	FailureRecordID string

	EquipmentID   *string
	EquipmentName *string
	FailureDate   *string
	Description   *string
	DowntimeHours *float64
	RepairHours   *float64
	PartsCost     *float64
	LaborCost     *float64
	RootCauseID   *string
	ActionTakenID *string
	FiveWhys      *[]string

	CorrectiveActions *[]string
	PreventiveActions *[]string

	PreviousFailureID *string
}

// AmendFailure applies a partial update to an existing failure record. Once
// any analysis references the record, equipment linkage, failure date, and
// downtime hours are locked; corrections to those go through a new record.
func (s *Service) AmendFailure(ctx context.Context, input AmendFailureInput) (ports.FailureRecord, error) {
	if err := s.checkCtx(ctx); err != nil {
		return ports.FailureRecord{}, err
	}
	if s.failures == nil || s.analyses == nil {
		return ports.FailureRecord{}, errors.New("failure and analysis repositories are required")
	}
	if s.uow == nil {
		return ports.FailureRecord{}, errors.New("unit of work is required")
	}

	orgID := trimmedOrg(input.OrgID)
	if orgID == "" {
		return ports.FailureRecord{}, errOrgRequired
	}
	recordID := strings.TrimSpace(input.FailureRecordID)
	if recordID == "" {
		return ports.FailureRecord{}, errRecordIDRequired
	}

	if err := validateAmendMeasures(input); err != nil {
		return ports.FailureRecord{}, err
	}

	update := ports.FailureUpdate{
		EquipmentID:       input.EquipmentID,
		EquipmentName:     input.EquipmentName,
		FailureDate:       input.FailureDate,
		Description:       input.Description,
		DowntimeHours:     input.DowntimeHours,
		RepairHours:       input.RepairHours,
		PartsCost:         input.PartsCost,
		LaborCost:         input.LaborCost,
		FiveWhys:          input.FiveWhys,
		CorrectiveActions: input.CorrectiveActions,
		PreventiveActions: input.PreventiveActions,
	}

	var updated ports.FailureRecord
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		current, err := s.failures.Get(txCtx, orgID, recordID)
		if err != nil {
			return err
		}

		if input.EquipmentID != nil || input.FailureDate != nil || input.DowntimeHours != nil {
			count, err := s.analyses.CountByFailureRecord(txCtx, orgID, recordID)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrRecordLockedByAnalysis
			}
		}

		if input.FailureDate != nil {
			failedAt, err := domainrel.ParseFailureDate(*input.FailureDate)
			if err != nil {
				return err
			}
			if failedAt.After(s.now().UTC()) {
				return domainrel.ErrFutureFailureDate
			}
		}

		// A stored recurrence link must stay ordered when the date or
		// equipment moves, even if the link itself is untouched.
		if input.PreviousFailureID == nil && current.PreviousFailureID != "" &&
			(input.FailureDate != nil || input.EquipmentID != nil) {
			previous, err := s.failures.Get(txCtx, orgID, current.PreviousFailureID)
			if err != nil {
				return err
			}
			link := domainrel.RecurrenceLink{
				EquipmentID:         current.EquipmentID,
				FailureDate:         current.FailureDate,
				PreviousEquipmentID: previous.EquipmentID,
				PreviousFailureDate: previous.FailureDate,
			}
			if input.EquipmentID != nil {
				link.EquipmentID = strings.TrimSpace(*input.EquipmentID)
			}
			if input.FailureDate != nil {
				link.FailureDate = *input.FailureDate
			}
			if err := domainrel.ValidateRecurrenceLink(link); err != nil {
				return err
			}
		}

		if input.RootCauseID != nil {
			update.RootCauseID = input.RootCauseID
			causeCode := ""
			if id := strings.TrimSpace(*input.RootCauseID); id != "" {
				cause, err := s.taxonomy.GetRootCause(txCtx, orgID, id)
				if err != nil {
					return err
				}
				causeCode = cause.Code
			}
			update.RootCauseCode = strPtr(causeCode)
		}
		if input.ActionTakenID != nil {
			update.ActionTakenID = input.ActionTakenID
			actionCode := ""
			if id := strings.TrimSpace(*input.ActionTakenID); id != "" {
				action, err := s.taxonomy.GetActionTaken(txCtx, orgID, id)
				if err != nil {
					return err
				}
				actionCode = action.Code
			}
			update.ActionTakenCode = strPtr(actionCode)
		}

		if input.PreviousFailureID != nil {
			previousID := strings.TrimSpace(*input.PreviousFailureID)
			if previousID == "" {
				update.PreviousFailureID = strPtr("")
				recurring := false
				update.IsRecurring = &recurring
			} else {
				previous, err := s.failures.Get(txCtx, orgID, previousID)
				if err != nil {
					return err
				}
				link := domainrel.RecurrenceLink{
					EquipmentID:         current.EquipmentID,
					FailureDate:         current.FailureDate,
					PreviousEquipmentID: previous.EquipmentID,
					PreviousFailureDate: previous.FailureDate,
				}
				if input.EquipmentID != nil {
					link.EquipmentID = strings.TrimSpace(*input.EquipmentID)
				}
				if input.FailureDate != nil {
					link.FailureDate = *input.FailureDate
				}
				if err := domainrel.ValidateRecurrenceLink(link); err != nil {
					return err
				}
				update.PreviousFailureID = strPtr(previousID)
				recurring := true
				update.IsRecurring = &recurring
			}
		}

		update.UpdatedAt = strPtr(s.nowUTCString())
		updated, err = s.failures.Update(txCtx, orgID, recordID, update)
		return err
	})
	if err != nil {
		return ports.FailureRecord{}, err
	}

	s.invalidateFleetCache(ctx, orgID)
	return updated, nil
}

func validateAmendMeasures(input AmendFailureInput) error {
	measures := []struct {
		name  string
		value *float64
	}{
		{"downtime_hours", input.DowntimeHours},
		{"repair_hours", input.RepairHours},
		{"parts_cost", input.PartsCost},
		{"labor_cost", input.LaborCost},
	}
	for _, measure := range measures {
		if measure.value != nil && *measure.value < 0 {
			return domainrel.ErrNegativeMeasure
		}
	}
	return nil
}
