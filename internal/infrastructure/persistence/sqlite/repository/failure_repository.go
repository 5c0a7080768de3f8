package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/model"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

type FailureRepository struct {
	db *gorm.DB
}

var _ ports.FailureRepository = (*FailureRepository)(nil)

func NewFailureRepository(db *gorm.DB) *FailureRepository {
	return &FailureRepository{db: db}
}

func (r *FailureRepository) Create(ctx context.Context, record ports.FailureRecord) (ports.FailureRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.FailureRecord{}, err
	}

	row := failureRecordRow(record)
	if err := db.Create(&row).Error; err != nil {
		return ports.FailureRecord{}, storeErr(err, "insert failure record")
	}
	return mapFailureRecord(row), nil
}

func (r *FailureRepository) Get(ctx context.Context, orgID string, failureRecordID string) (ports.FailureRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.FailureRecord{}, err
	}

	var row model.FailureRecord
	if err := db.
		Where("org_id = ? AND failure_record_id = ?", orgID, failureRecordID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.FailureRecord{}, ports.ErrFailureRecordNotFound
		}
		return ports.FailureRecord{}, storeErr(err, "query failure record")
	}
	return mapFailureRecord(row), nil
}

func (r *FailureRepository) Update(ctx context.Context, orgID string, failureRecordID string, update ports.FailureUpdate) (ports.FailureRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.FailureRecord{}, err
	}

	assignments := failureUpdateAssignments(update)
	if len(assignments) > 0 {
		result := db.Model(&model.FailureRecord{}).
			Where("org_id = ? AND failure_record_id = ?", orgID, failureRecordID).
			Updates(assignments)
		if result.Error != nil {
			return ports.FailureRecord{}, storeErr(result.Error, "update failure record")
		}
		if result.RowsAffected == 0 {
			return ports.FailureRecord{}, ports.ErrFailureRecordNotFound
		}
	}
	return r.Get(ctx, orgID, failureRecordID)
}

func (r *FailureRepository) Delete(ctx context.Context, orgID string, failureRecordID string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.
		Where("org_id = ? AND failure_record_id = ?", orgID, failureRecordID).
		Delete(&model.FailureRecord{})
	if result.Error != nil {
		return storeErr(result.Error, "delete failure record")
	}
	if result.RowsAffected == 0 {
		return ports.ErrFailureRecordNotFound
	}
	return nil
}

func (r *FailureRepository) List(ctx context.Context, orgID string, filter ports.FailureFilter) ([]ports.FailureRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.FailureRecord{}).Where("org_id = ?", orgID)
	if equipmentID := strings.TrimSpace(filter.EquipmentID); equipmentID != "" {
		query = query.Where("equipment_id = ?", equipmentID)
	}
	if codeID := strings.TrimSpace(filter.FailureCodeID); codeID != "" {
		query = query.Where("failure_code_id = ?", codeID)
	}
	if from := strings.TrimSpace(filter.From); from != "" {
		query = query.Where("failure_date >= ?", from)
	}
	if to := strings.TrimSpace(filter.To); to != "" {
		query = query.Where("failure_date <= ?", to)
	}
	if filter.Recurring != nil {
		query = query.Where("is_recurring = ?", *filter.Recurring)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []model.FailureRecord
	if err := query.Order("failure_date desc").Find(&rows).Error; err != nil {
		return nil, storeErr(err, "query failure records")
	}

	items := make([]ports.FailureRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapFailureRecord(row))
	}
	return items, nil
}

func (r *FailureRepository) CountByFailureCode(ctx context.Context, orgID string, failureCodeID string) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.FailureRecord{}).
		Where("org_id = ? AND failure_code_id = ?", orgID, failureCodeID).
		Count(&count).Error; err != nil {
		return 0, storeErr(err, "count failure records by code")
	}
	return count, nil
}

func failureRecordRow(record ports.FailureRecord) model.FailureRecord {
	return model.FailureRecord{
		FailureRecordID:       record.FailureRecordID,
		OrgID:                 record.OrgID,
		WorkOrderID:           record.WorkOrderID,
		WorkOrderNumber:       record.WorkOrderNumber,
		EquipmentID:           record.EquipmentID,
		EquipmentName:         record.EquipmentName,
		FailureCodeID:         record.FailureCodeID,
		FailureCode:           record.FailureCode,
		FailureDate:           record.FailureDate,
		ReportedBy:            record.ReportedBy,
		ReportedByName:        record.ReportedByName,
		Description:           record.Description,
		DowntimeHours:         record.DowntimeHours,
		RepairHours:           record.RepairHours,
		PartsCost:             record.PartsCost,
		LaborCost:             record.LaborCost,
		RootCauseID:           record.RootCauseID,
		RootCauseCode:         record.RootCauseCode,
		ActionTakenID:         record.ActionTakenID,
		ActionTakenCode:       record.ActionTakenCode,
		FiveWhysJSON:          marshalStrings(record.FiveWhys),
		CorrectiveActionsJSON: marshalStrings(record.CorrectiveActions),
		PreventiveActionsJSON: marshalStrings(record.PreventiveActions),
		IsRecurring:           record.IsRecurring,
		PreviousFailureID:     record.PreviousFailureID,
		CreatedAt:             record.CreatedAt,
		UpdatedAt:             record.UpdatedAt,
	}
}

func mapFailureRecord(row model.FailureRecord) ports.FailureRecord {
	return ports.FailureRecord{
		FailureRecordID:   row.FailureRecordID,
		OrgID:             row.OrgID,
		WorkOrderID:       row.WorkOrderID,
		WorkOrderNumber:   row.WorkOrderNumber,
		EquipmentID:       row.EquipmentID,
		EquipmentName:     row.EquipmentName,
		FailureCodeID:     row.FailureCodeID,
		FailureCode:       row.FailureCode,
		FailureDate:       row.FailureDate,
		ReportedBy:        row.ReportedBy,
		ReportedByName:    row.ReportedByName,
		Description:       row.Description,
		DowntimeHours:     row.DowntimeHours,
		RepairHours:       row.RepairHours,
		PartsCost:         row.PartsCost,
		LaborCost:         row.LaborCost,
		RootCauseID:       row.RootCauseID,
		RootCauseCode:     row.RootCauseCode,
		ActionTakenID:     row.ActionTakenID,
		ActionTakenCode:   row.ActionTakenCode,
		FiveWhys:          unmarshalStrings(row.FiveWhysJSON),
		CorrectiveActions: unmarshalStrings(row.CorrectiveActionsJSON),
		PreventiveActions: unmarshalStrings(row.PreventiveActionsJSON),
		IsRecurring:       row.IsRecurring,
		PreviousFailureID: row.PreviousFailureID,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func failureUpdateAssignments(update ports.FailureUpdate) map[string]any {
	assignments := make(map[string]any)
	if update.EquipmentID != nil {
		assignments["equipment_id"] = *update.EquipmentID
	}
	if update.EquipmentName != nil {
		assignments["equipment_name"] = *update.EquipmentName
	}
	if update.FailureDate != nil {
		assignments["failure_date"] = *update.FailureDate
	}
	if update.Description != nil {
		assignments["description"] = *update.Description
	}
	if update.DowntimeHours != nil {
		assignments["downtime_hours"] = *update.DowntimeHours
	}
	if update.RepairHours != nil {
		assignments["repair_hours"] = *update.RepairHours
	}
	if update.PartsCost != nil {
		assignments["parts_cost"] = *update.PartsCost
	}
	if update.LaborCost != nil {
		assignments["labor_cost"] = *update.LaborCost
	}
	if update.RootCauseID != nil {
		assignments["root_cause_id"] = *update.RootCauseID
	}
	if update.RootCauseCode != nil {
		assignments["root_cause_code"] = *update.RootCauseCode
	}
	if update.ActionTakenID != nil {
		assignments["action_taken_id"] = *update.ActionTakenID
	}
	if update.ActionTakenCode != nil {
		assignments["action_taken_code"] = *update.ActionTakenCode
	}
	if update.FiveWhys != nil {
		assignments["five_whys_json"] = marshalStrings(*update.FiveWhys)
	}
	if update.CorrectiveActions != nil {
		assignments["corrective_actions_json"] = marshalStrings(*update.CorrectiveActions)
	}
	if update.PreventiveActions != nil {
		assignments["preventive_actions_json"] = marshalStrings(*update.PreventiveActions)
	}
	if update.IsRecurring != nil {
		assignments["is_recurring"] = *update.IsRecurring
	}
	if update.PreviousFailureID != nil {
		assignments["previous_failure_id"] = *update.PreviousFailureID
	}
	if update.UpdatedAt != nil {
		assignments["updated_at"] = *update.UpdatedAt
	}
	return assignments
}
