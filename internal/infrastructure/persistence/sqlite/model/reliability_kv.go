package model

// ReliabilityKV backs the sqlite cache adapter (memoized fleet roll-ups).
type ReliabilityKV struct {
	Key       string `gorm:"column:key;type:text;primaryKey"`
	Value     string `gorm:"column:value;type:text;not null"`
	ExpiresAt string `gorm:"column:expires_at;type:text;not null;default:''"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (ReliabilityKV) TableName() string {
	return "reliability_kv"
}
