package model

type RootCause struct {
	RootCauseID string `gorm:"column:root_cause_id;type:text;primaryKey"`
	OrgID       string `gorm:"column:org_id;type:text;not null;index;uniqueIndex:idx_root_causes_org_code,priority:1"`
	Code        string `gorm:"column:code;type:text;not null;uniqueIndex:idx_root_causes_org_code,priority:2"`
	Name        string `gorm:"column:name;type:text;not null"`
	Description string `gorm:"column:description;type:text;not null"`
	Category    string `gorm:"column:category;type:text;not null"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
}

func (RootCause) TableName() string {
	return "root_causes"
}
