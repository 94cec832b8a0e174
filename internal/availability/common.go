package availability

import "time"

// CommonFree 计算多人共同的空闲区间：所有人的忙碌区间合并成一个多重集后
// 交给 FreeIntervals，重叠与重复由扫描算法自然吸收，无需去重。
// 调用方负责事先按星期筛选各人的区间。
func CommonFree(people [][]Interval, window Interval) ([]Interval, error) {
	n := 0
	for _, p := range people {
		n += len(p)
	}
	all := make([]Interval, 0, n)
	for _, p := range people {
		all = append(all, p...)
	}
	return FreeIntervals(all, window)
}

// CommonFreeForDay 以每人的课表为输入，计算 d 这一天的共同空闲区间
func CommonFreeForDay(people [][]ScheduleEntry, d time.Weekday, window Interval) ([]Interval, error) {
	busy := make([][]Interval, 0, len(people))
	for _, entries := range people {
		busy = append(busy, BusyOn(entries, d))
	}
	return CommonFree(busy, window)
}
