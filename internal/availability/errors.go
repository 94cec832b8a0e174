package availability

import (
	"errors"
	"fmt"
)

// ── 引擎错误分类 ──
//
// 引擎本身不做 I/O，所有失败都是同步的本地校验失败，一律上抛，不做静默修正。

var (
	// ErrValidation 输入格式非法（时间、区间、星期）
	ErrValidation = errors.New("availability: 参数校验失败")
	// ErrRange 分钟值超出 [0,1439]
	ErrRange = errors.New("availability: 分钟值越界")
)

// ValidationError 描述一个被拒绝的输入值
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s 校验失败: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s 校验失败 (%q): %s", e.Field, e.Value, e.Reason)
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RangeError 分钟值不在一天之内。不做截断：日界回绕会破坏区间语义。
type RangeError struct {
	Minutes int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("分钟值 %d 超出范围 [0,%d]", e.Minutes, MaxMinute)
}

// Is 使 errors.Is(err, ErrRange) 成立
func (e *RangeError) Is(target error) bool { return target == ErrRange }

func invalid(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
