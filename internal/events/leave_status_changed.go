package events

import "time"

const LeaveStatusChangedTopic = "hr.leave.lifecycle.v1"

// LeaveStatusChangedEvent is emitted through the outbox whenever a leave
// request enters a new status. Consumers use it to invalidate cached
// calendars and to audit-log review decisions.
type LeaveStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	ReviewedBy string    `json:"reviewed_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
