package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/model"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

type TaxonomyRepository struct {
	db *gorm.DB
}

var _ ports.TaxonomyRepository = (*TaxonomyRepository)(nil)

func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

func (r *TaxonomyRepository) CreateFailureCode(ctx context.Context, code ports.FailureCode) (ports.FailureCode, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.FailureCode{}, err
	}

	row := model.FailureCode{
		FailureCodeID:        code.FailureCodeID,
		OrgID:                code.OrgID,
		Code:                 code.Code,
		Name:                 code.Name,
		Description:          code.Description,
		Category:             code.Category,
		Severity:             code.Severity,
		CommonCausesJSON:     marshalStrings(code.CommonCauses),
		SuggestedActionsJSON: marshalStrings(code.SuggestedActions),
		MTTRHours:            code.MTTRHours,
		IsActive:             code.IsActive,
		CreatedAt:            code.CreatedAt,
		UpdatedAt:            code.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.FailureCode{}, ports.ErrDuplicateCode
		}
		return ports.FailureCode{}, storeErr(err, "insert failure code")
	}
	return mapFailureCode(row), nil
}

func (r *TaxonomyRepository) GetFailureCode(ctx context.Context, orgID string, failureCodeID string) (ports.FailureCode, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.FailureCode{}, err
	}

	var row model.FailureCode
	if err := db.
		Where("org_id = ? AND failure_code_id = ?", orgID, failureCodeID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.FailureCode{}, ports.ErrFailureCodeNotFound
		}
		return ports.FailureCode{}, storeErr(err, "query failure code")
	}
	return mapFailureCode(row), nil
}

func (r *TaxonomyRepository) ListFailureCodes(ctx context.Context, orgID string, activeOnly bool) ([]ports.FailureCode, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.FailureCode{}).Where("org_id = ?", orgID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []model.FailureCode
	if err := query.Order("code asc").Find(&rows).Error; err != nil {
		return nil, storeErr(err, "query failure codes")
	}

	items := make([]ports.FailureCode, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapFailureCode(row))
	}
	return items, nil
}

func (r *TaxonomyRepository) SetFailureCodeActive(ctx context.Context, orgID string, failureCodeID string, active bool, updatedAt string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&model.FailureCode{}).
		Where("org_id = ? AND failure_code_id = ?", orgID, failureCodeID).
		Updates(map[string]any{"is_active": active, "updated_at": updatedAt})
	if result.Error != nil {
		return storeErr(result.Error, "update failure code active flag")
	}
	if result.RowsAffected == 0 {
		return ports.ErrFailureCodeNotFound
	}
	return nil
}

func (r *TaxonomyRepository) DeleteFailureCode(ctx context.Context, orgID string, failureCodeID string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.
		Where("org_id = ? AND failure_code_id = ?", orgID, failureCodeID).
		Delete(&model.FailureCode{})
	if result.Error != nil {
		return storeErr(result.Error, "delete failure code")
	}
	if result.RowsAffected == 0 {
		return ports.ErrFailureCodeNotFound
	}
	return nil
}

func (r *TaxonomyRepository) CreateRootCause(ctx context.Context, cause ports.RootCause) (ports.RootCause, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.RootCause{}, err
	}

	row := model.RootCause{
		RootCauseID: cause.RootCauseID,
		OrgID:       cause.OrgID,
		Code:        cause.Code,
		Name:        cause.Name,
		Description: cause.Description,
		Category:    cause.Category,
		CreatedAt:   cause.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.RootCause{}, ports.ErrDuplicateCode
		}
		return ports.RootCause{}, storeErr(err, "insert root cause")
	}
	return mapRootCause(row), nil
}

func (r *TaxonomyRepository) GetRootCause(ctx context.Context, orgID string, rootCauseID string) (ports.RootCause, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.RootCause{}, err
	}

	var row model.RootCause
	if err := db.
		Where("org_id = ? AND root_cause_id = ?", orgID, rootCauseID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RootCause{}, ports.ErrRootCauseNotFound
		}
		return ports.RootCause{}, storeErr(err, "query root cause")
	}
	return mapRootCause(row), nil
}

func (r *TaxonomyRepository) ListRootCauses(ctx context.Context, orgID string) ([]ports.RootCause, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.RootCause
	if err := db.
		Where("org_id = ?", orgID).
		Order("code asc").
		Find(&rows).Error; err != nil {
		return nil, storeErr(err, "query root causes")
	}

	items := make([]ports.RootCause, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapRootCause(row))
	}
	return items, nil
}

func (r *TaxonomyRepository) CreateActionTaken(ctx context.Context, action ports.ActionTaken) (ports.ActionTaken, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ActionTaken{}, err
	}

	row := model.ActionTaken{
		ActionTakenID: action.ActionTakenID,
		OrgID:         action.OrgID,
		Code:          action.Code,
		Name:          action.Name,
		Description:   action.Description,
		Category:      action.Category,
		CreatedAt:     action.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ActionTaken{}, ports.ErrDuplicateCode
		}
		return ports.ActionTaken{}, storeErr(err, "insert action taken")
	}
	return mapActionTaken(row), nil
}

func (r *TaxonomyRepository) GetActionTaken(ctx context.Context, orgID string, actionTakenID string) (ports.ActionTaken, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ActionTaken{}, err
	}

	var row model.ActionTaken
	if err := db.
		Where("org_id = ? AND action_taken_id = ?", orgID, actionTakenID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ActionTaken{}, ports.ErrActionTakenNotFound
		}
		return ports.ActionTaken{}, storeErr(err, "query action taken")
	}
	return mapActionTaken(row), nil
}

func (r *TaxonomyRepository) ListActionTaken(ctx context.Context, orgID string) ([]ports.ActionTaken, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.ActionTaken
	if err := db.
		Where("org_id = ?", orgID).
		Order("code asc").
		Find(&rows).Error; err != nil {
		return nil, storeErr(err, "query actions taken")
	}

	items := make([]ports.ActionTaken, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapActionTaken(row))
	}
	return items, nil
}

func mapFailureCode(row model.FailureCode) ports.FailureCode {
	return ports.FailureCode{
		FailureCodeID:    row.FailureCodeID,
		OrgID:            row.OrgID,
		Code:             row.Code,
		Name:             row.Name,
		Description:      row.Description,
		Category:         row.Category,
		Severity:         row.Severity,
		CommonCauses:     unmarshalStrings(row.CommonCausesJSON),
		SuggestedActions: unmarshalStrings(row.SuggestedActionsJSON),
		MTTRHours:        row.MTTRHours,
		IsActive:         row.IsActive,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func mapRootCause(row model.RootCause) ports.RootCause {
	return ports.RootCause{
		RootCauseID: row.RootCauseID,
		OrgID:       row.OrgID,
		Code:        row.Code,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		CreatedAt:   row.CreatedAt,
	}
}

func mapActionTaken(row model.ActionTaken) ports.ActionTaken {
	return ports.ActionTaken{
		ActionTakenID: row.ActionTakenID,
		OrgID:         row.OrgID,
		Code:          row.Code,
		Name:          row.Name,
		Description:   row.Description,
		Category:      row.Category,
		CreatedAt:     row.CreatedAt,
	}
}
