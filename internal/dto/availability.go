package dto

import "github.com/r-kabir-rafi/bracu-socials/internal/availability"

// ── 可用性模块 DTO ──

// CampusHours 校园运营时间窗口
type CampusHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SetStatusRequest 手动设置状态请求
type SetStatusRequest struct {
	Status          string `json:"status"`           // free | busy
	DurationMinutes *int   `json:"duration_minutes"` // 为空表示不自动过期
}

// ── 可用性模块响应 ──

// StatusResponse 当前可用状态
type StatusResponse struct {
	UserID        string              `json:"user_id"`
	Status        availability.Status `json:"status"`
	IsOverride    bool                `json:"is_override"`
	OverrideUntil *string             `json:"override_until"` // RFC3339，仅覆盖生效且有过期时间时返回
	CampusHours   CampusHours         `json:"campus_hours"`
}

// FreeTimeResponse 单人某天的空闲时间
type FreeTimeResponse struct {
	UserID      string                  `json:"user_id"`
	Day         string                  `json:"day"`
	CampusHours CampusHours             `json:"campus_hours"`
	Classes     int                     `json:"classes"` // 当天课程数
	FreeSlots   []availability.Interval `json:"free_slots"`
}

// CommonFreeTimeResponse 多人某天的共同空闲时间
type CommonFreeTimeResponse struct {
	UserIDs     []string                `json:"user_ids"`
	Day         string                  `json:"day"`
	CampusHours CampusHours             `json:"campus_hours"`
	BusySlots   []availability.Interval `json:"busy_slots"` // 窗口内合并后的忙碌区间
	FreeSlots   []availability.Interval `json:"free_slots"`
}
