package reliability

import (
	"context"
	"errors"
	"strings"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

// DeleteFailure removes a failure record. Records referenced by analyses are
// protected; force cascades the delete over the attached analyses inside the
// same transaction.
func (s *Service) DeleteFailure(ctx context.Context, orgID, failureRecordID string, force bool) error {
	if err := s.checkCtx(ctx); err != nil {
		return err
	}
	if s.failures == nil || s.analyses == nil {
		return errors.New("failure and analysis repositories are required")
	}
	if s.uow == nil {
		return errors.New("unit of work is required")
	}

	orgID = trimmedOrg(orgID)
	if orgID == "" {
		return errOrgRequired
	}
	recordID := strings.TrimSpace(failureRecordID)
	if recordID == "" {
		return errRecordIDRequired
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.failures.Get(txCtx, orgID, recordID); err != nil {
			return err
		}
		count, err := s.analyses.CountByFailureRecord(txCtx, orgID, recordID)
		if err != nil {
			return err
		}
		if count > 0 {
			if !force {
				return ports.ErrFailureRecordHasAnalysis
			}
			if err := s.analyses.DeleteByFailureRecord(txCtx, orgID, recordID); err != nil {
				return err
			}
		}
		return s.failures.Delete(txCtx, orgID, recordID)
	})
	if err != nil {
		return err
	}

	s.invalidateFleetCache(ctx, orgID)
	return nil
}
