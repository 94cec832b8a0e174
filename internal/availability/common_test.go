package availability

import (
	"testing"
	"time"
)

func TestCommonFree_TwoPeople(t *testing.T) {
	people := [][]Interval{
		{iv(t, "09:00", "10:00")},
		{iv(t, "09:30", "10:30")},
	}
	free, err := CommonFree(people, campusWindow(t))
	if err != nil {
		t.Fatalf("CommonFree 失败: %v", err)
	}
	assertIntervals(t, free, "08:00", "09:00", "10:30", "17:00")
}

func TestCommonFree_NoPeople(t *testing.T) {
	free, err := CommonFree(nil, campusWindow(t))
	if err != nil {
		t.Fatalf("CommonFree 失败: %v", err)
	}
	assertIntervals(t, free, "08:00", "17:00")
}

func TestCommonFreeForDay_FiltersByWeekday(t *testing.T) {
	alice := []ScheduleEntry{
		entry(t, "Sun,Tue", "08:00", "09:30"),
		entry(t, "Mon", "13:00", "14:00"), // 周二不上
	}
	bob := []ScheduleEntry{
		entry(t, "Tue", "11:00", "12:30"),
		entry(t, "Tue,Thu", "15:30", "17:00"),
	}
	free, err := CommonFreeForDay([][]ScheduleEntry{alice, bob}, time.Tuesday, campusWindow(t))
	if err != nil {
		t.Fatalf("CommonFreeForDay 失败: %v", err)
	}
	assertIntervals(t, free, "09:30", "11:00", "12:30", "15:30")
}

func TestFreeIntervalsForDay(t *testing.T) {
	entries := []ScheduleEntry{
		entry(t, "Wed", "10:00", "11:30"),
		entry(t, "Sat", "08:00", "17:00"),
	}
	free, err := FreeIntervalsForDay(entries, time.Wednesday, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervalsForDay 失败: %v", err)
	}
	assertIntervals(t, free, "08:00", "10:00", "11:30", "17:00")

	free, err = FreeIntervalsForDay(entries, time.Saturday, campusWindow(t))
	if err != nil {
		t.Fatalf("FreeIntervalsForDay 失败: %v", err)
	}
	if len(free) != 0 {
		t.Errorf("周六全天有课，期望无空闲, 实际 %v", free)
	}
}

func TestMerge_CoalescesWithinWindow(t *testing.T) {
	busy := []Interval{
		iv(t, "07:00", "08:30"),
		iv(t, "10:00", "11:00"),
		iv(t, "10:30", "12:00"),
		iv(t, "12:00", "12:30"),
		iv(t, "16:45", "18:00"),
	}
	merged, err := Merge(busy, campusWindow(t))
	if err != nil {
		t.Fatalf("Merge 失败: %v", err)
	}
	assertIntervals(t, merged, "08:00", "08:30", "10:00", "12:30", "16:45", "17:00")
}

func TestMerge_Empty(t *testing.T) {
	merged, err := Merge(nil, campusWindow(t))
	if err != nil {
		t.Fatalf("Merge 失败: %v", err)
	}
	if len(merged) != 0 {
		t.Errorf("期望空结果, 实际 %v", merged)
	}
}
