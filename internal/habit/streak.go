package habit

import "time"

// Complete 对习惯执行一次打卡，返回更新后的副本。
// today 决定日历日期归属，now 记录具体打卡时刻。
// 若当天已完成则原样返回（幂等保证）；当天未排期时计数照常累加，
// 但连胜逻辑不介入，Streak 保持不变。
func Complete(h Habit, today, now time.Time) Habit {
	date := FormatDate(today)
	if h.CompletedOn(date) {
		return h
	}

	out := h.Clone()

	if out.ScheduledOn(WeekdayName(today)) {
		out.Streak = nextStreak(h, today)
	}

	out.Completed++
	out.WeeklyCompleted++
	out.LastCompletedDate = date
	out.CompletionHistory = append(out.CompletionHistory, CompletionRecord{
		Date: date,
		Time: now.Format(time.RFC3339),
	})

	return out
}

// nextStreak 计算排期日打卡后的新连胜值。
// 规则：上一个排期日恰好是最近完成日 → 连胜 +1；
// 排期日被跳过、七天内找不到排期日或从未完成过 → 连胜回到 1。
func nextStreak(h Habit, today time.Time) int {
	if h.LastCompletedDate == "" {
		return 1
	}

	prev, ok := previousScheduledDay(h.Days, today)
	if !ok {
		return 1
	}

	if h.LastCompletedDate == FormatDate(prev) {
		return h.Streak + 1
	}

	return 1
}

// previousScheduledDay 从 today 向前逐日回溯（最多 7 天），
// 找到最近的一个排期日。非排期日会被跳过，
// 因此一周只排一天的习惯也能正确接上 7 天前的那次打卡。
func previousScheduledDay(days []string, today time.Time) (time.Time, bool) {
	for i := 1; i <= 7; i++ {
		d := today.AddDate(0, 0, -i)
		if containsDay(days, WeekdayName(d)) {
			return d, true
		}
	}
	return time.Time{}, false
}
