package model

import "time"

// AvailabilityOverride 手动状态覆盖表 — 对应 availability_overrides
// 每个用户至多一条记录
type AvailabilityOverride struct {
	UserID    string     `gorm:"type:uuid;primaryKey"                   json:"user_id"`
	Status    string     `gorm:"type:varchar(10);not null;default:'free'" json:"status"` // free | busy
	Active    bool       `gorm:"not null;default:false"                 json:"active"`
	ExpiresAt *time.Time `gorm:"type:timestamptz"                       json:"expires_at,omitempty"` // NULL 表示不自动过期
	BaseModel
}

// TableName 指定表名
func (AvailabilityOverride) TableName() string { return "availability_overrides" }
