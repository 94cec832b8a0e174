package availability

import (
	"strings"
	"time"
)

// WeekdaySet 星期集合（位图），成员取自 time.Weekday（Sunday=0 … Saturday=6）
type WeekdaySet uint8

var weekdayTokens = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

var weekdayAbbr = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// NewWeekdaySet 由若干星期构造集合，重复成员被合并
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// ParseWeekday 解析单个星期标记：三字母缩写或英文全称，大小写不敏感。
// "Tues" 这类非标准写法直接拒绝。
func ParseWeekday(token string) (time.Weekday, error) {
	d, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return 0, invalid("weekday", token, "未知的星期标记")
	}
	return d, nil
}

// ParseWeekdaySet 解析 "Mon,Wed"、"Sun Tue"、"Mon/Thu" 之类的星期列表
func ParseWeekdaySet(s string) (WeekdaySet, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/' || r == ';' || r == ' ' || r == '\t'
	})
	if len(tokens) == 0 {
		return 0, invalid("days", s, "至少需要一个星期")
	}
	var set WeekdaySet
	for _, tok := range tokens {
		d, err := ParseWeekday(tok)
		if err != nil {
			return 0, err
		}
		set = set.Add(d)
	}
	return set, nil
}

// Add 返回加入 d 后的集合
func (s WeekdaySet) Add(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s | 1<<uint(d)
}

// Contains 报告集合是否包含 d
func (s WeekdaySet) Contains(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

// Empty 报告集合是否为空
func (s WeekdaySet) Empty() bool { return s&0x7f == 0 }

// Days 按 Sunday→Saturday 顺序列出成员
func (s WeekdaySet) Days() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

// String 以 "Mon,Wed" 形式输出，作为规范存储格式
func (s WeekdaySet) String() string {
	days := s.Days()
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = weekdayAbbr[d]
	}
	return strings.Join(parts, ",")
}

// WeekdayAbbr 返回星期的三字母缩写
func WeekdayAbbr(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return d.String()
	}
	return weekdayAbbr[d]
}
