package availability

import "time"

// ScheduleEntry 一条每周重复的课程安排
type ScheduleEntry struct {
	CourseCode string
	Days       WeekdaySet
	Start      TimeOfDay
	End        TimeOfDay
	Location   string
}

// NewScheduleEntry 由存储层的原始字段构造课程安排。
// 任一字段非法都返回 ValidationError，不跳过、不猜测。
func NewScheduleEntry(courseCode, days, start, end, location string) (ScheduleEntry, error) {
	set, err := ParseWeekdaySet(days)
	if err != nil {
		return ScheduleEntry{}, err
	}
	span, err := ParseInterval(start, end)
	if err != nil {
		return ScheduleEntry{}, err
	}
	return ScheduleEntry{
		CourseCode: courseCode,
		Days:       set,
		Start:      span.Start,
		End:        span.End,
		Location:   location,
	}, nil
}

// Interval 返回课程占用的时间区间
func (e ScheduleEntry) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// OccursOn 报告课程是否在 d 上课
func (e ScheduleEntry) OccursOn(d time.Weekday) bool {
	return e.Days.Contains(d)
}

// BusyOn 筛出在 d 上课的条目并转为忙碌区间，保持输入顺序
func BusyOn(entries []ScheduleEntry, d time.Weekday) []Interval {
	busy := make([]Interval, 0, len(entries))
	for _, e := range entries {
		if e.OccursOn(d) {
			busy = append(busy, e.Interval())
		}
	}
	return busy
}

// FreeIntervalsForDay 计算一个人在 d 这一天窗口内的空闲区间
func FreeIntervalsForDay(entries []ScheduleEntry, d time.Weekday, window Interval) ([]Interval, error) {
	return FreeIntervals(BusyOn(entries, d), window)
}
