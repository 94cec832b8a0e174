package model

// ScheduleEntry 课表条目 — 对应 schedule_entries
// 由课表管理模块维护，可用性引擎只读
type ScheduleEntry struct {
	ScheduleEntryID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_entry_id"`
	UserID          string `gorm:"type:uuid;not null"                             json:"user_id"`
	CourseCode      string `gorm:"type:varchar(20);not null"                      json:"course_code"`
	ClassDays       string `gorm:"type:varchar(64);not null"                      json:"class_days"` // 如 "Sun,Tue"
	Location        string `gorm:"type:varchar(100);not null;default:''"          json:"location"`
	StartTime       string `gorm:"type:time;not null"                             json:"start_time"`
	EndTime         string `gorm:"type:time;not null"                             json:"end_time"`
	BaseModel
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }
