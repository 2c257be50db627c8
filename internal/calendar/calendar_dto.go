package calendar

import "time"

const dateLayout = "2006-01-02"

// DayResponse is the wire form of one classified day.
type DayResponse struct {
	Date    string `json:"date"`
	Type    string `json:"type"`
	Tooltip string `json:"tooltip"`
}

func mapToDayResponses(days []Day) []DayResponse {
	out := make([]DayResponse, len(days))
	for i, d := range days {
		out[i] = DayResponse{
			Date:    d.Date.Format(dateLayout),
			Type:    string(d.Type),
			Tooltip: d.Tooltip,
		}
	}
	return out
}

// SuggestionContext is the snapshot handed to the optional AI enhancer. It
// carries everything the deterministic engine used, so the enhancer can only
// re-rank what the caller already has.
type SuggestionContext struct {
	Company     string          `json:"company"`
	Employee    string          `json:"employee"`
	WindowStart string          `json:"window_start"`
	WindowEnd   string          `json:"window_end"`
	WorkingDays []int           `json:"working_days"`
	Holidays    []HolidayDate   `json:"holidays"`
	Leaves      []LeaveInterval `json:"existing_leaves"`
	BalanceDays string          `json:"total_leave_balance"`
}

func newSuggestionContext(companyID, employeeID string, start, end time.Time, workingDays []int, holidays []HolidayDate, leaves []LeaveInterval, balance string) SuggestionContext {
	return SuggestionContext{
		Company:     companyID,
		Employee:    employeeID,
		WindowStart: start.Format(dateLayout),
		WindowEnd:   end.Format(dateLayout),
		WorkingDays: workingDays,
		Holidays:    holidays,
		Leaves:      leaves,
		BalanceDays: balance,
	}
}
