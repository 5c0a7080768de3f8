package model

type FailureCode struct {
	FailureCodeID        string  `gorm:"column:failure_code_id;type:text;primaryKey"`
	OrgID                string  `gorm:"column:org_id;type:text;not null;index;uniqueIndex:idx_failure_codes_org_code,priority:1"`
	Code                 string  `gorm:"column:code;type:text;not null;uniqueIndex:idx_failure_codes_org_code,priority:2"`
	Name                 string  `gorm:"column:name;type:text;not null"`
	Description          string  `gorm:"column:description;type:text;not null"`
	Category             string  `gorm:"column:category;type:text;not null"`
	Severity             string  `gorm:"column:severity;type:text;not null"`
	CommonCausesJSON     string  `gorm:"column:common_causes_json;type:text;not null"`
	SuggestedActionsJSON string  `gorm:"column:suggested_actions_json;type:text;not null"`
	MTTRHours            float64 `gorm:"column:mttr_hours;not null;default:0"`
	IsActive             bool    `gorm:"column:is_active;not null;default:1"`
	CreatedAt            string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt            string  `gorm:"column:updated_at;type:text;not null"`
}

func (FailureCode) TableName() string {
	return "failure_codes"
}
