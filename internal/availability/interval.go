package availability

import (
	"sort"
)

// Interval 半开区间 [Start, End)，要求 Start < End
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// NewInterval 构造并校验区间，退化或倒置的区间返回 ValidationError
func NewInterval(start, end TimeOfDay) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// ParseInterval 由两个 HH:MM 字符串构造区间
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

// Validate 检查 Start < End
func (iv Interval) Validate() error {
	if !iv.Start.Before(iv.End) {
		return invalid("interval", iv.Start.String()+"-"+iv.End.String(), "开始时间必须早于结束时间")
	}
	return nil
}

// Contains 报告 t 是否落在 [Start, End) 内
func (iv Interval) Contains(t TimeOfDay) bool {
	return iv.Start.m <= t.m && t.m < iv.End.m
}

// Duration 区间长度（分钟）
func (iv Interval) Duration() int { return iv.End.m - iv.Start.m }

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// ── 空闲区间计算 ──────────────────────────────────────────
//
// 对忙碌区间按开始时间稳定排序（相同开始时间按结束时间），
// 用游标从窗口起点向右扫描：
//   - 区间开始晚于游标 → 产出空闲 [cursor, start)
//   - 游标前进到 max(cursor, end)：被包含的区间不会使游标回退
//
// 忙碌区间先被截断到窗口内，因此窗口外的区间不会产生越界的空闲段。
// 首尾相接的区间（a.End == b.Start）视为连续忙碌。
// ─────────────────────────────────────────────────────────────

// FreeIntervals 计算 window 内 busy 的补集，结果有序且两两不相交
func FreeIntervals(busy []Interval, window Interval) ([]Interval, error) {
	if window.End.m < window.Start.m {
		return nil, invalid("window", window.String(), "窗口结束时间早于开始时间")
	}
	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	for _, b := range sorted {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start.m != sorted[j].Start.m {
			return sorted[i].Start.m < sorted[j].Start.m
		}
		return sorted[i].End.m < sorted[j].End.m
	})

	free := make([]Interval, 0, len(sorted)+1)
	cursor := window.Start.m
	for _, b := range sorted {
		start := clamp(b.Start.m, window.Start.m, window.End.m)
		end := clamp(b.End.m, window.Start.m, window.End.m)
		if start > cursor {
			free = append(free, Interval{Start: TimeOfDay{m: cursor}, End: TimeOfDay{m: start}})
		}
		if end > cursor {
			cursor = end
		}
	}
	if cursor < window.End.m {
		free = append(free, Interval{Start: TimeOfDay{m: cursor}, End: window.End})
	}
	return free, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Merge 将区间截断到 window 内并合并重叠或首尾相接的部分，
// 结果即 window 内忙碌时间的规范形式
func Merge(intervals []Interval, window Interval) ([]Interval, error) {
	free, err := FreeIntervals(intervals, window)
	if err != nil {
		return nil, err
	}
	return FreeIntervals(free, window)
}
