package calendar

import "time"

// Occurrence is one concrete time span produced by expanding a
// recurrence rule. End - Start always equals the series duration.
type Occurrence struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// generationCap bounds runaway expansion for degenerate rules (no
// count, no until, windows spanning decades). Hitting it is a warning,
// not a failure: occurrences found so far are still returned.
const generationCap = 1000

var ErrGenerationCapped = NewError("occurrence generation stopped at safety cap")

// ExpandRule walks calendar time from seriesStart and returns every
// occurrence of the rule that falls inside [windowStart, windowEnd],
// ordered by start time. Pure computation, no I/O.
//
// Count is an absolute cap for the whole series: matches before
// windowStart are counted but not emitted, so a later window can never
// overrun the cap. Excluded dates are skipped without consuming Count.
// Until is compared by calendar date and is inclusive.
func ExpandRule(seriesStart, seriesEnd time.Time, rule *RecurrenceRule, windowStart, windowEnd time.Time) ([]Occurrence, error) {
	p := compilePattern(rule)
	if p == nil {
		return nil, nil
	}

	excluded := exclusionSet(rule.Exceptions)
	duration := seriesEnd.Sub(seriesStart)

	// Every candidate day must be tested individually: weekly, monthly
	// and yearly matches are sparse within their frequency unit. Daily
	// matches land exactly interval days apart, so the cursor can jump.
	step := 1
	if rule.Freq == FrequencyDaily {
		step = rule.Interval
	}

	var occurrences []Occurrence
	matched := 0
	for cursor := seriesStart; !cursor.After(windowEnd); cursor = cursor.AddDate(0, 0, step) {
		if rule.Count != nil && matched >= *rule.Count {
			break
		}
		if rule.Until != nil && civilDate(cursor).After(civilDate(*rule.Until)) {
			break
		}
		if excluded[civilDate(cursor)] {
			continue
		}
		if !p.matches(cursor, seriesStart) {
			continue
		}
		matched++
		if matched > generationCap {
			return occurrences, ErrGenerationCapped
		}
		if !cursor.Before(windowStart) {
			occurrences = append(occurrences, Occurrence{Start: cursor, End: cursor.Add(duration)})
		}
	}
	return occurrences, nil
}

func exclusionSet(exceptions []RecurrenceException) map[time.Time]bool {
	if len(exceptions) == 0 {
		return nil
	}
	set := make(map[time.Time]bool, len(exceptions))
	for _, x := range exceptions {
		set[civilDate(x.Date)] = true
	}
	return set
}
