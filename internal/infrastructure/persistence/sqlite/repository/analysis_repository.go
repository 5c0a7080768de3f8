package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/infrastructure/persistence/sqlite/model"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

type AnalysisRepository struct {
	db *gorm.DB
}

var _ ports.AnalysisRepository = (*AnalysisRepository)(nil)

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Create(ctx context.Context, analysis ports.Analysis) (ports.Analysis, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Analysis{}, err
	}

	row := analysisRow(analysis)
	if err := db.Create(&row).Error; err != nil {
		return ports.Analysis{}, storeErr(err, "insert analysis")
	}
	return mapAnalysis(row), nil
}

func (r *AnalysisRepository) Get(ctx context.Context, orgID string, analysisID string) (ports.Analysis, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Analysis{}, err
	}

	var row model.Analysis
	if err := db.
		Where("org_id = ? AND analysis_id = ?", orgID, analysisID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Analysis{}, ports.ErrAnalysisNotFound
		}
		return ports.Analysis{}, storeErr(err, "query analysis")
	}
	return mapAnalysis(row), nil
}

// Update replaces the stored analysis. Last write wins at this layer; the
// service re-fetches inside a transaction before deciding on transitions.
func (r *AnalysisRepository) Update(ctx context.Context, analysis ports.Analysis) (ports.Analysis, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Analysis{}, err
	}

	row := analysisRow(analysis)
	result := db.Model(&model.Analysis{}).
		Where("org_id = ? AND analysis_id = ?", analysis.OrgID, analysis.AnalysisID).
		Select("*").
		Omit("analysis_id", "org_id", "created_at").
		Updates(row)
	if result.Error != nil {
		return ports.Analysis{}, storeErr(result.Error, "update analysis")
	}
	if result.RowsAffected == 0 {
		return ports.Analysis{}, ports.ErrAnalysisNotFound
	}
	return r.Get(ctx, analysis.OrgID, analysis.AnalysisID)
}

func (r *AnalysisRepository) List(ctx context.Context, orgID string) ([]ports.Analysis, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Analysis
	if err := db.
		Where("org_id = ?", orgID).
		Order("analysis_date desc").
		Find(&rows).Error; err != nil {
		return nil, storeErr(err, "query analyses")
	}
	return mapAnalyses(rows), nil
}

func (r *AnalysisRepository) ListByFailureRecord(ctx context.Context, orgID string, failureRecordID string) ([]ports.Analysis, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.Analysis
	if err := db.
		Where("org_id = ? AND failure_record_id = ?", orgID, failureRecordID).
		Order("analysis_date desc").
		Find(&rows).Error; err != nil {
		return nil, storeErr(err, "query analyses by failure record")
	}
	return mapAnalyses(rows), nil
}

func (r *AnalysisRepository) CountByFailureRecord(ctx context.Context, orgID string, failureRecordID string) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.Analysis{}).
		Where("org_id = ? AND failure_record_id = ?", orgID, failureRecordID).
		Count(&count).Error; err != nil {
		return 0, storeErr(err, "count analyses by failure record")
	}
	return count, nil
}

func (r *AnalysisRepository) DeleteByFailureRecord(ctx context.Context, orgID string, failureRecordID string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.
		Where("org_id = ? AND failure_record_id = ?", orgID, failureRecordID).
		Delete(&model.Analysis{}).Error; err != nil {
		return storeErr(err, "delete analyses by failure record")
	}
	return nil
}

func analysisRow(analysis ports.Analysis) model.Analysis {
	return model.Analysis{
		AnalysisID:              analysis.AnalysisID,
		OrgID:                   analysis.OrgID,
		FailureRecordID:         analysis.FailureRecordID,
		EquipmentID:             analysis.EquipmentID,
		EquipmentName:           analysis.EquipmentName,
		AnalysisDate:            analysis.AnalysisDate,
		PerformedBy:             analysis.PerformedBy,
		ProblemStatement:        analysis.ProblemStatement,
		RootCauseCategory:       analysis.RootCauseCategory,
		RootCauseID:             analysis.RootCauseID,
		FiveWhysJSON:            marshalStrings(analysis.FiveWhys),
		ContributingFactorsJSON: marshalStrings(analysis.ContributingFactors),
		CorrectiveActionsJSON:   marshalActionItems(analysis.CorrectiveActions),
		PreventiveActionsJSON:   marshalActionItems(analysis.PreventiveActions),
		VerificationRequired:    analysis.VerificationRequired,
		VerificationDate:        analysis.VerificationDate,
		VerifiedBy:              analysis.VerifiedBy,
		Status:                  analysis.Status,
		CreatedAt:               analysis.CreatedAt,
		UpdatedAt:               analysis.UpdatedAt,
	}
}

func mapAnalyses(rows []model.Analysis) []ports.Analysis {
	items := make([]ports.Analysis, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapAnalysis(row))
	}
	return items
}

func mapAnalysis(row model.Analysis) ports.Analysis {
	return ports.Analysis{
		AnalysisID:           row.AnalysisID,
		OrgID:                row.OrgID,
		FailureRecordID:      row.FailureRecordID,
		EquipmentID:          row.EquipmentID,
		EquipmentName:        row.EquipmentName,
		AnalysisDate:         row.AnalysisDate,
		PerformedBy:          row.PerformedBy,
		ProblemStatement:     row.ProblemStatement,
		RootCauseCategory:    row.RootCauseCategory,
		RootCauseID:          row.RootCauseID,
		FiveWhys:             unmarshalStrings(row.FiveWhysJSON),
		ContributingFactors:  unmarshalStrings(row.ContributingFactorsJSON),
		CorrectiveActions:    unmarshalActionItems(row.CorrectiveActionsJSON),
		PreventiveActions:    unmarshalActionItems(row.PreventiveActionsJSON),
		VerificationRequired: row.VerificationRequired,
		VerificationDate:     row.VerificationDate,
		VerifiedBy:           row.VerifiedBy,
		Status:               row.Status,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}

type actionItemJSON struct {
	Action        string `json:"action"`
	Responsible   string `json:"responsible"`
	DueDate       string `json:"due_date"`
	Status        string `json:"status"`
	CompletedDate string `json:"completed_date,omitempty"`
}

func marshalActionItems(items []ports.ActionItem) string {
	if len(items) == 0 {
		return "[]"
	}
	out := make([]actionItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, actionItemJSON(item))
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func unmarshalActionItems(raw string) []ports.ActionItem {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var decoded []actionItemJSON
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil
	}
	if len(decoded) == 0 {
		return nil
	}
	items := make([]ports.ActionItem, 0, len(decoded))
	for _, item := range decoded {
		items = append(items, ports.ActionItem(item))
	}
	return items
}
