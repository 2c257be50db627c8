package calendar

// Suggestion is one human-readable leave idea.
type Suggestion struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

const suggestionDateLayout = "02 Jan 2006"

// BuildSuggestions turns a classified window into suggestions, one per
// smart_leave day in ascending order. The result is never empty: with no
// promotable day a single generic plan-ahead entry is returned so callers
// always have something to show.
func BuildSuggestions(days []Day) []Suggestion {
	var out []Suggestion
	for _, d := range days {
		if d.Type != DaySmartLeave {
			continue
		}
		out = append(out, Suggestion{
			Label:       d.Date.Format(suggestionDateLayout),
			Explanation: SmartLeaveTooltip,
		})
	}

	if len(out) > 0 {
		return out
	}

	return []Suggestion{fallbackSuggestion(days)}
}

func fallbackSuggestion(days []Day) Suggestion {
	if len(days) == 0 {
		return Suggestion{
			Label:       "Plan ahead",
			Explanation: "No bridge days found. Consider planning a break soon.",
		}
	}

	// Point at roughly two weeks in, clamped to the window.
	target := days[0].Date.AddDate(0, 0, 14)
	last := days[len(days)-1].Date
	if target.After(last) {
		target = last
	}

	return Suggestion{
		Label:       target.Format(suggestionDateLayout),
		Explanation: "No bridge days found in this window. Consider planning a break soon.",
	}
}
