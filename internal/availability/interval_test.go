package availability

import (
	"errors"
	"math/rand"
	"testing"
)

func campusWindow(t *testing.T) Interval {
	t.Helper()
	return iv(t, "08:00", "17:00")
}

func assertIntervals(t *testing.T, got []Interval, want ...string) {
	t.Helper()
	if len(got)*2 != len(want) {
		t.Fatalf("期望 %d 个区间, 实际 %d 个: %v", len(want)/2, len(got), got)
	}
	for i, g := range got {
		if g.Start.String() != want[2*i] || g.End.String() != want[2*i+1] {
			t.Errorf("第 %d 个区间期望 %s-%s, 实际 %s", i, want[2*i], want[2*i+1], g)
		}
	}
}

// ════════════════════════════════════════════════════════════
// FreeIntervals
// ════════════════════════════════════════════════════════════

func TestFreeIntervals_EmptyBusyReturnsWholeWindow(t *testing.T) {
	free, err := FreeIntervals(nil, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	assertIntervals(t, free, "08:00", "17:00")
}

func TestFreeIntervals_EmptyWindow(t *testing.T) {
	at := tod(t, "08:00")
	free, err := FreeIntervals(nil, Interval{Start: at, End: at})
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	if len(free) != 0 {
		t.Errorf("空窗口期望无空闲区间, 实际 %v", free)
	}
}

func TestFreeIntervals_NestedBusy(t *testing.T) {
	busy := []Interval{iv(t, "09:00", "12:00"), iv(t, "10:00", "11:00")}
	free, err := FreeIntervals(busy, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	assertIntervals(t, free, "08:00", "09:00", "12:00", "17:00")
}

func TestFreeIntervals_BackToBackIsContiguous(t *testing.T) {
	busy := []Interval{iv(t, "10:00", "11:00"), iv(t, "09:00", "10:00")}
	free, err := FreeIntervals(busy, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	assertIntervals(t, free, "08:00", "09:00", "11:00", "17:00")
}

func TestFreeIntervals_FullyCoveredIsEmpty(t *testing.T) {
	busy := []Interval{iv(t, "08:00", "12:00"), iv(t, "12:00", "17:00")}
	free, err := FreeIntervals(busy, campusWindow(t))
	if err != nil {
		t.Fatalf("全覆盖不应报错: %v", err)
	}
	if len(free) != 0 {
		t.Errorf("期望空结果, 实际 %v", free)
	}
}

func TestFreeIntervals_ClampsToWindow(t *testing.T) {
	busy := []Interval{
		iv(t, "06:00", "07:00"), // 完全在窗口前
		iv(t, "07:30", "08:30"), // 跨越窗口起点
		iv(t, "16:30", "18:00"), // 跨越窗口终点
		iv(t, "18:00", "19:00"), // 完全在窗口后
	}
	free, err := FreeIntervals(busy, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	assertIntervals(t, free, "08:30", "16:30")
}

func TestFreeIntervals_OnlyAfterWindow(t *testing.T) {
	free, err := FreeIntervals([]Interval{iv(t, "18:00", "19:00")}, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	assertIntervals(t, free, "08:00", "17:00")
}

func TestFreeIntervals_RejectsInvalidBusy(t *testing.T) {
	bad := Interval{Start: tod(t, "11:00"), End: tod(t, "10:00")}
	_, err := FreeIntervals([]Interval{bad}, campusWindow(t))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("期望 ErrValidation, 实际 %v", err)
	}
}

func TestFreeIntervals_DoesNotMutateInput(t *testing.T) {
	busy := []Interval{iv(t, "13:00", "14:00"), iv(t, "09:00", "10:00")}
	if _, err := FreeIntervals(busy, campusWindow(t)); err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	if busy[0].Start.String() != "13:00" {
		t.Error("输入切片不应被排序")
	}
}

func TestFreeIntervals_DuplicateIsIdempotent(t *testing.T) {
	one := []Interval{iv(t, "10:00", "12:30")}
	twice := []Interval{one[0], one[0]}

	a, err := FreeIntervals(one, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	b, err := FreeIntervals(twice, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("结果长度不一致: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("第 %d 个区间不一致: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestFreeIntervals_NonOverlappingCoverWithinWindow(t *testing.T) {
	// [10:00,14:00) 被三段首尾相接的区间完整覆盖，区间内不应出现空闲
	busy := []Interval{iv(t, "10:00", "11:00"), iv(t, "11:00", "12:45"), iv(t, "12:45", "14:00")}
	free, err := FreeIntervals(busy, iv(t, "10:00", "14:00"))
	if err != nil {
		t.Fatalf("FreeIntervals 失败: %v", err)
	}
	if len(free) != 0 {
		t.Errorf("期望空结果, 实际 %v", free)
	}
}

// TestFreeIntervals_Properties 随机输入下：结果有序、两两不相交、位于窗口内，
// 且与任何忙碌区间都不重叠，窗口内每一分钟要么忙要么闲。
func TestFreeIntervals_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	window := campusWindow(t)

	for round := 0; round < 500; round++ {
		n := rng.Intn(8)
		busy := make([]Interval, 0, n)
		for i := 0; i < n; i++ {
			s := rng.Intn(MaxMinute)
			e := s + 1 + rng.Intn(MaxMinute-s)
			start, _ := FromMinutes(s)
			end, _ := FromMinutes(e)
			busy = append(busy, Interval{Start: start, End: end})
		}

		free, err := FreeIntervals(busy, window)
		if err != nil {
			t.Fatalf("第 %d 轮 FreeIntervals 失败: %v", round, err)
		}

		for i, f := range free {
			if !f.Start.Before(f.End) {
				t.Fatalf("第 %d 轮: 产出退化区间 %s", round, f)
			}
			if f.Start.Minutes() < window.Start.Minutes() || f.End.Minutes() > window.End.Minutes() {
				t.Fatalf("第 %d 轮: 区间 %s 越出窗口", round, f)
			}
			if i > 0 && free[i-1].End.Minutes() > f.Start.Minutes() {
				t.Fatalf("第 %d 轮: 区间未排序或相交: %v", round, free)
			}
		}

		for m := window.Start.Minutes(); m < window.End.Minutes(); m++ {
			at, _ := FromMinutes(m)
			inBusy := false
			for _, b := range busy {
				if b.Contains(at) {
					inBusy = true
					break
				}
			}
			inFree := false
			for _, f := range free {
				if f.Contains(at) {
					inFree = true
					break
				}
			}
			if inBusy == inFree {
				t.Fatalf("第 %d 轮: 分钟 %s busy=%v free=%v, busy=%v free=%v", round, at, inBusy, inFree, busy, free)
			}
		}
	}
}
