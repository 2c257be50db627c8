package calendar

import (
	"fmt"
	"strings"
	"time"

	calendarerrors "leavesync/internal/calendar/errors"
)

type DayType string

const (
	DayWorkday    DayType = "workday"
	DayWeekend    DayType = "weekend"
	DayHoliday    DayType = "holiday"
	DayLeave      DayType = "leave"
	DaySmartLeave DayType = "smart_leave"
)

// Window is an inclusive date range. Only the year/month/day of Start and End
// are significant.
type Window struct {
	Start time.Time
	End   time.Time
}

// HolidayDate is one holiday as the classifier sees it. Recurring entries
// match their month/day in any year.
type HolidayDate struct {
	Date      time.Time
	Name      string
	Recurring bool
	Optional  bool
}

// LeaveInterval is a closed [Start, End] booking. Rejected and cancelled
// intervals do not occupy the calendar; every other status does.
type LeaveInterval struct {
	Start    time.Time
	End      time.Time
	Status   string
	TypeName string
}

// Day is the classification of a single date.
type Day struct {
	Date    time.Time
	Type    DayType
	Tooltip string
}

// Classify produces one Day per date in the window, both endpoints included,
// in ascending order. Precedence per date: leave over holiday over weekend
// over workday. The result is a pure function of its inputs.
func Classify(window Window, workingDays []int, holidays []HolidayDate, leaves []LeaveInterval) ([]Day, error) {
	start := truncateDay(window.Start)
	end := truncateDay(window.End)
	if end.Before(start) {
		return nil, calendarerrors.ErrInvalidWindow
	}

	workSet, err := workingDaySet(workingDays)
	if err != nil {
		return nil, err
	}

	days := make([]Day, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, classifyDate(d, workSet, holidays, leaves))
	}

	return days, nil
}

func classifyDate(d time.Time, workSet map[int]bool, holidays []HolidayDate, leaves []LeaveInterval) Day {
	if lv, ok := leaveOn(d, leaves); ok {
		tooltip := "Your leave"
		if lv.TypeName != "" {
			tooltip = fmt.Sprintf("Your leave (%s)", lv.TypeName)
		}
		return Day{Date: d, Type: DayLeave, Tooltip: tooltip}
	}

	if h, ok := holidayOn(d, holidays); ok {
		tooltip := h.Name
		if h.Optional {
			tooltip += " (optional holiday)"
		}
		return Day{Date: d, Type: DayHoliday, Tooltip: tooltip}
	}

	if !workSet[isoWeekday(d)] {
		return Day{Date: d, Type: DayWeekend, Tooltip: fmt.Sprintf("Weekend (%s)", d.Weekday())}
	}

	return Day{Date: d, Type: DayWorkday, Tooltip: "Regular working day"}
}

func leaveOn(d time.Time, leaves []LeaveInterval) (LeaveInterval, bool) {
	for _, lv := range leaves {
		if !occupiesCalendar(lv.Status) {
			continue
		}
		start := truncateDay(lv.Start)
		end := truncateDay(lv.End)
		if !d.Before(start) && !d.After(end) {
			return lv, true
		}
	}
	return LeaveInterval{}, false
}

// occupiesCalendar decides which statuses block out calendar days: any
// non-rejected, non-cancelled booking counts, so pending requests already
// show up and influence bridge detection.
func occupiesCalendar(status string) bool {
	switch strings.ToUpper(status) {
	case "REJECTED", "CANCELLED":
		return false
	default:
		return true
	}
}

func holidayOn(d time.Time, holidays []HolidayDate) (HolidayDate, bool) {
	for _, h := range holidays {
		if sameDate(resolveOccurrence(h, d.Year()), d) {
			return h, true
		}
	}
	return HolidayDate{}, false
}

// resolveOccurrence maps a recurring holiday into the query year. A stored
// Feb 29 clamps to Feb 28 in non-leap years.
func resolveOccurrence(h HolidayDate, year int) time.Time {
	stored := truncateDay(h.Date)
	if !h.Recurring {
		return stored
	}
	month, day := stored.Month(), stored.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, stored.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func workingDaySet(workingDays []int) (map[int]bool, error) {
	if len(workingDays) == 0 {
		return nil, calendarerrors.ErrEmptyWorkingDays
	}
	set := make(map[int]bool, len(workingDays))
	for _, wd := range workingDays {
		if wd < 1 || wd > 7 {
			return nil, calendarerrors.ErrInvalidWeekday
		}
		set[wd] = true
	}
	return set, nil
}

// isoWeekday returns 1 for Monday through 7 for Sunday.
func isoWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
