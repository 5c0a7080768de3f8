package model

type FailureRecord struct {
	FailureRecordID       string  `gorm:"column:failure_record_id;type:text;primaryKey"`
	OrgID                 string  `gorm:"column:org_id;type:text;not null;index"`
	WorkOrderID           string  `gorm:"column:work_order_id;type:text;not null;default:''"`
	WorkOrderNumber       string  `gorm:"column:work_order_number;type:text;not null;default:''"`
	EquipmentID           string  `gorm:"column:equipment_id;type:text;not null;index"`
	EquipmentName         string  `gorm:"column:equipment_name;type:text;not null"`
	FailureCodeID         string  `gorm:"column:failure_code_id;type:text;not null;index"`
	FailureCode           string  `gorm:"column:failure_code;type:text;not null"`
	FailureDate           string  `gorm:"column:failure_date;type:text;not null;index"`
	ReportedBy            string  `gorm:"column:reported_by;type:text;not null"`
	ReportedByName        string  `gorm:"column:reported_by_name;type:text;not null;default:''"`
	Description           string  `gorm:"column:description;type:text;not null"`
	DowntimeHours         float64 `gorm:"column:downtime_hours;not null;default:0"`
	RepairHours           float64 `gorm:"column:repair_hours;not null;default:0"`
	PartsCost             float64 `gorm:"column:parts_cost;not null;default:0"`
	LaborCost             float64 `gorm:"column:labor_cost;not null;default:0"`
	RootCauseID           string  `gorm:"column:root_cause_id;type:text;not null;default:''"`
	RootCauseCode         string  `gorm:"column:root_cause_code;type:text;not null;default:''"`
	ActionTakenID         string  `gorm:"column:action_taken_id;type:text;not null;default:''"`
	ActionTakenCode       string  `gorm:"column:action_taken_code;type:text;not null;default:''"`
	FiveWhysJSON          string  `gorm:"column:five_whys_json;type:text;not null"`
	CorrectiveActionsJSON string  `gorm:"column:corrective_actions_json;type:text;not null"`
	PreventiveActionsJSON string  `gorm:"column:preventive_actions_json;type:text;not null"`
	IsRecurring           bool    `gorm:"column:is_recurring;not null;default:0"`
	PreviousFailureID     string  `gorm:"column:previous_failure_id;type:text;not null;default:''"`
	CreatedAt             string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt             string  `gorm:"column:updated_at;type:text;not null"`
}

func (FailureRecord) TableName() string {
	return "failure_records"
}
