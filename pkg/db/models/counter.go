package models

// Counter backs sequential display codes. The value is advanced with an
// atomic upsert, never read-modify-write from application memory.
type Counter struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value int64  `gorm:"column:value;not null;default:0"`
}
