package calendar

import "time"

// pattern decides whether a candidate calendar day is an occurrence of
// a series that started on seriesStart. One implementation per
// frequency; each carries only the fields meaningful to it. All
// arithmetic is naive civil-date arithmetic, timezone-blind by design.
type pattern interface {
	matches(candidate, seriesStart time.Time) bool
}

type dailyPattern struct {
	interval int
}

type weeklyPattern struct {
	interval int
	byDay    map[int]bool // 0=Sunday..6; empty means the start's weekday
}

type monthlyPattern struct {
	interval   int
	byMonthDay map[int]bool // empty means the start's day of month
}

type yearlyPattern struct {
	interval   int
	byMonth    map[int]bool // empty means the start's month
	byMonthDay map[int]bool // empty means the start's day of month
}

// compilePattern builds the matcher for a rule. An unknown frequency or
// a non-positive interval yields nil, which matches nothing; bad rules
// that slip past validation must not loop the scanner forever.
func compilePattern(rule *RecurrenceRule) pattern {
	if rule == nil || rule.Interval < 1 {
		return nil
	}
	switch rule.Freq {
	case FrequencyDaily:
		return dailyPattern{interval: rule.Interval}
	case FrequencyWeekly:
		return weeklyPattern{interval: rule.Interval, byDay: toSet(rule.ByDay)}
	case FrequencyMonthly:
		return monthlyPattern{interval: rule.Interval, byMonthDay: toSet(rule.ByMonthDay)}
	case FrequencyYearly:
		return yearlyPattern{
			interval:   rule.Interval,
			byMonth:    toSet(rule.ByMonth),
			byMonthDay: toSet(rule.ByMonthDay),
		}
	}
	return nil
}

// Matches reports whether candidate falls on an occurrence of a series
// starting at seriesStart under this rule. Pure and deterministic.
func (r *RecurrenceRule) Matches(candidate, seriesStart time.Time) bool {
	p := compilePattern(r)
	if p == nil {
		return false
	}
	return p.matches(candidate, seriesStart)
}

func (p dailyPattern) matches(candidate, seriesStart time.Time) bool {
	d := daysBetween(seriesStart, candidate)
	return d >= 0 && d%p.interval == 0
}

func (p weeklyPattern) matches(candidate, seriesStart time.Time) bool {
	if len(p.byDay) > 0 {
		if !p.byDay[int(candidate.Weekday())] {
			return false
		}
	} else if candidate.Weekday() != seriesStart.Weekday() {
		return false
	}
	d := daysBetween(seriesStart, candidate)
	if d < 0 {
		return false
	}
	return (d/7)%p.interval == 0
}

func (p monthlyPattern) matches(candidate, seriesStart time.Time) bool {
	if len(p.byMonthDay) > 0 {
		if !p.byMonthDay[candidate.Day()] {
			return false
		}
	} else if candidate.Day() != seriesStart.Day() {
		// Short months never reach day 29-31; such months are skipped,
		// not clamped to their last day.
		return false
	}
	m := monthsBetween(seriesStart, candidate)
	return m >= 0 && m%p.interval == 0
}

func (p yearlyPattern) matches(candidate, seriesStart time.Time) bool {
	if len(p.byMonth) > 0 {
		if !p.byMonth[int(candidate.Month())] {
			return false
		}
	} else if candidate.Month() != seriesStart.Month() {
		return false
	}
	if len(p.byMonthDay) > 0 {
		if !p.byMonthDay[candidate.Day()] {
			return false
		}
	} else if candidate.Day() != seriesStart.Day() {
		return false
	}
	y := candidate.Year() - seriesStart.Year()
	return y >= 0 && y%p.interval == 0
}

func toSet(values []int64) map[int]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[int]bool, len(values))
	for _, v := range values {
		set[int(v)] = true
	}
	return set
}

// civilDate strips the clock so two timestamps on the same calendar day
// compare equal regardless of time of day.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
