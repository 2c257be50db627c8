package calendar

// SmartLeaveTooltip labels every promoted bridge day.
const SmartLeaveTooltip = "Smart leave: take this day off to turn the surrounding days off into one long break"

// DetectBridges promotes short workday segments that sit between non-working
// buffers to smart_leave. A segment qualifies when the day before and the day
// after both exist inside the window, both sides have a contiguous run of
// weekend/holiday days, and at least one of those runs contains a holiday. A
// weekend on both sides alone never qualifies.
//
// The input is read as an immutable snapshot: all segments are judged against
// the original tags and promotions are applied afterwards, so promoting one
// segment can never change the eligibility of another.
func DetectBridges(days []Day) []Day {
	out := make([]Day, len(days))
	copy(out, days)

	type span struct{ from, to int }
	var promote []span

	i := 0
	for i < len(days) {
		if days[i].Type != DayWorkday {
			i++
			continue
		}

		// Extend to the maximal run of workdays.
		j := i
		for j+1 < len(days) && days[j+1].Type == DayWorkday {
			j++
		}

		// A segment touching the window edge has no day-before/day-after
		// information and can never qualify.
		if i > 0 && j < len(days)-1 {
			backOK, backHoliday := scanBuffer(days, i-1, -1)
			fwdOK, fwdHoliday := scanBuffer(days, j+1, +1)

			if backOK && fwdOK && (backHoliday || fwdHoliday) {
				promote = append(promote, span{from: i, to: j})
			}
		}

		i = j + 1
	}

	for _, s := range promote {
		for k := s.from; k <= s.to; k++ {
			out[k].Type = DaySmartLeave
			out[k].Tooltip = SmartLeaveTooltip
		}
	}

	return out
}

// scanBuffer walks from start in the given direction while days stay
// weekend or holiday, reporting whether any buffer exists and whether it
// contains a holiday.
func scanBuffer(days []Day, start, step int) (hasBuffer, hasHoliday bool) {
	for k := start; k >= 0 && k < len(days); k += step {
		switch days[k].Type {
		case DayWeekend:
			hasBuffer = true
		case DayHoliday:
			hasBuffer = true
			hasHoliday = true
		default:
			return hasBuffer, hasHoliday
		}
	}
	return hasBuffer, hasHoliday
}
