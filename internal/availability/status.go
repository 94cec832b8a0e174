package availability

import (
	"strings"
	"time"
)

// Status 可用状态
type Status string

const (
	StatusFree      Status = "free"
	StatusBusy      Status = "busy"
	StatusOffCampus Status = "off_campus"
)

// ParseOverrideStatus 解析手动覆盖可设置的状态，只接受 free | busy
func ParseOverrideStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusFree:
		return StatusFree, nil
	case StatusBusy:
		return StatusBusy, nil
	}
	return "", invalid("status", s, `状态只能为 "free" 或 "busy"`)
}

// Override 手动覆盖记录。无记录与 Active=false 等价。
type Override struct {
	Status    Status
	Active    bool
	ExpiresAt *time.Time // nil 表示永不自动过期
}

// Stale 报告覆盖是否已过期但仍标记为有效
func (o *Override) Stale(now time.Time) bool {
	return o != nil && o.Active && o.ExpiresAt != nil && o.ExpiresAt.Before(now)
}

// ClearOverride 清除过期覆盖的意图，由调用方以条件更新执行。
// ExpiredAt 是本次评估观察到的过期时间，用作比较并清除的条件。
type ClearOverride struct {
	ExpiredAt time.Time
}

// Resolution 状态解析结果
type Resolution struct {
	Status     Status
	IsOverride bool
	Clear      *ClearOverride
}

// ════════════════════════════════════════════════════════════
// ResolveStatus — 状态解析
// ════════════════════════════════════════════════════════════
//
// 顺序：
//   1. 有效且未过期的覆盖直接生效，即使当前在校园时间之外
//   2. 过期覆盖视为不存在，并返回清除意图
//   3. 当前分钟不在校园窗口内 → off_campus
//   4. 任一当天课程覆盖当前分钟 → busy（首个命中即返回）
//   5. 否则 free
//
// now 由调用方提供并已换算到校园时区；窗口两端均视为在校（17:00 仍在校）。

// ResolveStatus 根据覆盖记录与课表解析 now 时刻的状态
func ResolveStatus(ov *Override, entries []ScheduleEntry, now time.Time, window Interval) Resolution {
	var clear *ClearOverride
	if ov != nil && ov.Active {
		if !ov.Stale(now) {
			return Resolution{Status: ov.Status, IsOverride: true}
		}
		clear = &ClearOverride{ExpiredAt: *ov.ExpiresAt}
	}

	return Resolution{Status: scheduleStatus(entries, now, window), Clear: clear}
}

func scheduleStatus(entries []ScheduleEntry, now time.Time, window Interval) Status {
	minute := TimeOfDayOf(now)
	if minute.m < window.Start.m || minute.m > window.End.m {
		return StatusOffCampus
	}
	day := now.Weekday()
	for _, e := range entries {
		if e.OccursOn(day) && e.Interval().Contains(minute) {
			return StatusBusy
		}
	}
	return StatusFree
}
