package model

type Analysis struct {
	AnalysisID              string `gorm:"column:analysis_id;type:text;primaryKey"`
	OrgID                   string `gorm:"column:org_id;type:text;not null;index"`
	FailureRecordID         string `gorm:"column:failure_record_id;type:text;not null;index"`
	EquipmentID             string `gorm:"column:equipment_id;type:text;not null;index"`
	EquipmentName           string `gorm:"column:equipment_name;type:text;not null"`
	AnalysisDate            string `gorm:"column:analysis_date;type:text;not null"`
	PerformedBy             string `gorm:"column:performed_by;type:text;not null"`
	ProblemStatement        string `gorm:"column:problem_statement;type:text;not null"`
	RootCauseCategory       string `gorm:"column:root_cause_category;type:text;not null;default:''"`
	RootCauseID             string `gorm:"column:root_cause_id;type:text;not null;default:''"`
	FiveWhysJSON            string `gorm:"column:five_whys_json;type:text;not null"`
	ContributingFactorsJSON string `gorm:"column:contributing_factors_json;type:text;not null"`
	CorrectiveActionsJSON   string `gorm:"column:corrective_actions_json;type:text;not null"`
	PreventiveActionsJSON   string `gorm:"column:preventive_actions_json;type:text;not null"`
	VerificationRequired    bool   `gorm:"column:verification_required;not null;default:0"`
	VerificationDate        string `gorm:"column:verification_date;type:text;not null;default:''"`
	VerifiedBy              string `gorm:"column:verified_by;type:text;not null;default:''"`
	Status                  string `gorm:"column:status;type:text;not null;index"`
	CreatedAt               string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt               string `gorm:"column:updated_at;type:text;not null"`
}

func (Analysis) TableName() string {
	return "analyses"
}
