package availability

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// ── 测试辅助 ──

func tod(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q) 失败: %v", s, err)
	}
	return v
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	v, err := ParseInterval(start, end)
	if err != nil {
		t.Fatalf("ParseInterval(%q, %q) 失败: %v", start, end, err)
	}
	return v
}

// ════════════════════════════════════════════════════════════
// TimeOfDay
// ════════════════════════════════════════════════════════════

func TestParseTimeOfDay_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"17:00", 1020},
		{"23:59", 1439},
		{"09:30:00", 570},
		{"09:30:45", 570},
	}
	for _, c := range cases {
		got := tod(t, c.in)
		if got.Minutes() != c.want {
			t.Errorf("%s: 期望 %d 分钟, 实际 %d", c.in, c.want, got.Minutes())
		}
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "8:00", "24:00", "12:60", "ab:cd", "12-30", "+1:00", "12:30:61", "12:30:00:00"} {
		_, err := ParseTimeOfDay(in)
		if err == nil {
			t.Errorf("%q: 期望返回错误", in)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%q: 期望 ErrValidation, 实际 %v", in, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%q: 期望 *ValidationError, 实际 %T", in, err)
		}
	}
}

func TestFromMinutes_RoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 599, 1020, 1439} {
		v, err := FromMinutes(m)
		if err != nil {
			t.Fatalf("FromMinutes(%d) 失败: %v", m, err)
		}
		back := tod(t, v.String())
		if back.Minutes() != m {
			t.Errorf("往返不一致: %d → %s → %d", m, v, back.Minutes())
		}
	}
}

func TestFromMinutes_OutOfRange(t *testing.T) {
	for _, m := range []int{-1, 1440, 2000} {
		_, err := FromMinutes(m)
		if !errors.Is(err, ErrRange) {
			t.Errorf("FromMinutes(%d): 期望 ErrRange, 实际 %v", m, err)
		}
		var re *RangeError
		if !errors.As(err, &re) || re.Minutes != m {
			t.Errorf("FromMinutes(%d): RangeError 内容不正确: %v", m, err)
		}
	}
}

func TestTimeOfDay_StringZeroPadded(t *testing.T) {
	v, _ := FromMinutes(65)
	if v.String() != "01:05" {
		t.Errorf("期望 01:05, 实际 %s", v)
	}
}

func TestTimeOfDayOf_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("BDT", 6*3600)
	instant := time.Date(2026, 3, 2, 3, 15, 0, 0, time.UTC) // 09:15 BDT
	got := TimeOfDayOf(instant.In(loc))
	if got.String() != "09:15" {
		t.Errorf("期望 09:15, 实际 %s", got)
	}
}

func TestInterval_JSON(t *testing.T) {
	b, err := json.Marshal(iv(t, "08:00", "09:30"))
	if err != nil {
		t.Fatalf("Marshal 失败: %v", err)
	}
	if string(b) != `{"start":"08:00","end":"09:30"}` {
		t.Errorf("序列化结果不正确: %s", b)
	}

	var back Interval
	if err := json.Unmarshal([]byte(`{"start":"10:00","end":"11:15"}`), &back); err != nil {
		t.Fatalf("Unmarshal 失败: %v", err)
	}
	if back.Start.Minutes() != 600 || back.End.Minutes() != 675 {
		t.Errorf("反序列化结果不正确: %s", back)
	}

	if err := json.Unmarshal([]byte(`{"start":"10:00","end":"25:00"}`), &back); err == nil {
		t.Error("非法时间应反序列化失败")
	}
}

func TestNewInterval_RejectsDegenerateAndInverted(t *testing.T) {
	if _, err := ParseInterval("10:00", "10:00"); !errors.Is(err, ErrValidation) {
		t.Errorf("退化区间: 期望 ErrValidation, 实际 %v", err)
	}
	if _, err := ParseInterval("11:00", "10:00"); !errors.Is(err, ErrValidation) {
		t.Errorf("倒置区间: 期望 ErrValidation, 实际 %v", err)
	}
}
