package pacing

import "time"

// WeekStart normalizes t to the Monday of its calendar week, at
// midnight UTC. All check-in week keys are stored and compared in this
// form.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// Streak walks backward from the current calendar week counting
// consecutive weeks with at least one check-in. An unlogged current
// week ends the run at 0; currentWeekLogged lets callers nudge the
// user before that happens.
func Streak(weekStarts []time.Time, now time.Time) (streak int, currentWeekLogged bool) {
	if len(weekStarts) == 0 {
		return 0, false
	}

	weeks := make(map[time.Time]struct{}, len(weekStarts))
	for _, ws := range weekStarts {
		weeks[WeekStart(ws)] = struct{}{}
	}

	current := WeekStart(now)
	_, currentWeekLogged = weeks[current]

	week := current
	for {
		if _, ok := weeks[week]; !ok {
			break
		}
		streak++
		week = week.AddDate(0, 0, -7)
	}
	return streak, currentWeekLogged
}
