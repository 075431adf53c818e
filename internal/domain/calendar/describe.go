package calendar

import (
	"fmt"
	"strings"
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var monthNames = [13]string{
	"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Describe renders a rule as a human-readable sentence, e.g.
// "Every 2 weeks on Monday, Wednesday, 10 times". Presentational only;
// the rule is neither validated nor mutated.
func Describe(rule *RecurrenceRule) string {
	if rule == nil {
		return "Does not repeat"
	}

	var b strings.Builder
	switch rule.Freq {
	case FrequencyDaily:
		writeFrequency(&b, rule.Interval, "Daily", "days")
	case FrequencyWeekly:
		writeFrequency(&b, rule.Interval, "Weekly", "weeks")
		if len(rule.ByDay) > 0 {
			b.WriteString(" on ")
			b.WriteString(joinNames(rule.ByDay, func(v int64) string {
				if v < 0 || v > 6 {
					return ""
				}
				return weekdayNames[v]
			}))
		}
	case FrequencyMonthly:
		writeFrequency(&b, rule.Interval, "Monthly", "months")
		writeMonthDays(&b, rule.ByMonthDay)
	case FrequencyYearly:
		writeFrequency(&b, rule.Interval, "Yearly", "years")
		if len(rule.ByMonth) > 0 {
			b.WriteString(" in ")
			b.WriteString(joinNames(rule.ByMonth, func(v int64) string {
				if v < 1 || v > 12 {
					return ""
				}
				return monthNames[v]
			}))
		}
		writeMonthDays(&b, rule.ByMonthDay)
	default:
		return "Does not repeat"
	}

	if rule.Count != nil {
		fmt.Fprintf(&b, ", %d times", *rule.Count)
	} else if rule.Until != nil {
		fmt.Fprintf(&b, ", until %s", rule.Until.Format("Jan 2, 2006"))
	}
	return b.String()
}

func writeFrequency(b *strings.Builder, interval int, single, plural string) {
	if interval <= 1 {
		b.WriteString(single)
		return
	}
	fmt.Fprintf(b, "Every %d %s", interval, plural)
}

func writeMonthDays(b *strings.Builder, days []int64) {
	switch len(days) {
	case 0:
	case 1:
		fmt.Fprintf(b, " on day %d", days[0])
	default:
		b.WriteString(" on days ")
		b.WriteString(joinNames(days, func(v int64) string { return fmt.Sprintf("%d", v) }))
	}
}

func joinNames(values []int64, name func(int64) string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if n := name(v); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, ", ")
}
