package model

type ActionTaken struct {
	ActionTakenID string `gorm:"column:action_taken_id;type:text;primaryKey"`
	OrgID         string `gorm:"column:org_id;type:text;not null;index;uniqueIndex:idx_actions_taken_org_code,priority:1"`
	Code          string `gorm:"column:code;type:text;not null;uniqueIndex:idx_actions_taken_org_code,priority:2"`
	Name          string `gorm:"column:name;type:text;not null"`
	Description   string `gorm:"column:description;type:text;not null"`
	Category      string `gorm:"column:category;type:text;not null"`
	CreatedAt     string `gorm:"column:created_at;type:text;not null"`
}

func (ActionTaken) TableName() string {
	return "actions_taken"
}
