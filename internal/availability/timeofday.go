package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxMinute 一天中最后一分钟（23:59）
const MaxMinute = 24*60 - 1

// TimeOfDay 分钟精度的一天内时刻，内部以零点起的分钟数表示
type TimeOfDay struct {
	m int
}

// FromMinutes 由分钟数构造 TimeOfDay，越界返回 RangeError
func FromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes > MaxMinute {
		return TimeOfDay{}, &RangeError{Minutes: minutes}
	}
	return TimeOfDay{m: minutes}, nil
}

// Clock 由时、分构造 TimeOfDay
func Clock(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, invalid("time", fmt.Sprintf("%d:%d", hour, minute), "时或分超出范围")
	}
	return TimeOfDay{m: hour*60 + minute}, nil
}

// ParseTimeOfDay 解析 HH:MM，也接受 PostgreSQL time 列返回的 HH:MM:SS（秒被舍弃）
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, invalid("time", s, "格式应为 HH:MM")
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 || p[0] < '0' || p[0] > '9' || p[1] < '0' || p[1] > '9' {
			return TimeOfDay{}, invalid("time", s, "每段须为两位数字")
		}
		n, _ := strconv.Atoi(p)
		nums[i] = n
	}
	if len(nums) == 3 && nums[2] > 59 {
		return TimeOfDay{}, invalid("time", s, "秒超出范围")
	}
	t, err := Clock(nums[0], nums[1])
	if err != nil {
		return TimeOfDay{}, invalid("time", s, "时或分超出范围")
	}
	return t, nil
}

// TimeOfDayOf 取时刻在其自身时区中的分钟数
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{m: t.Hour()*60 + t.Minute()}
}

// Minutes 返回零点起的分钟数，范围 [0,1439]
func (t TimeOfDay) Minutes() int { return t.m }

// Before 报告 t 是否早于 u
func (t TimeOfDay) Before(u TimeOfDay) bool { return t.m < u.m }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.m/60, t.m%60)
}

// MarshalText 序列化为 HH:MM
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText 从 HH:MM 反序列化
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
