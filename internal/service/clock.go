package service

import "time"

// Clock 时间来源，测试中注入固定时间
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock 始终返回同一时刻
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
