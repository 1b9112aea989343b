package approval

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// IsValidDecision checks that s is a status an admin may decide.
func IsValidDecision(s string) bool {
	return Status(s) == StatusAccepted || Status(s) == StatusDeclined
}

// Snapshot freezes the month's computed figures at submission time.
type Snapshot struct {
	MarkedDays         int             `json:"marked_days"`
	TotalDays          int             `json:"total_days"`
	PresentDays        int             `json:"present_days"`
	AbsentDays         int             `json:"absent_days"`
	HalfDays           int             `json:"half_days"`
	FullWorkingDays    int             `json:"full_working_days"`
	SundayPresentCount int             `json:"sunday_present_count"`
	SundayWorkHours    float64         `json:"sunday_work_hours"`
	TotalOtHrs         float64         `json:"total_ot_hrs"`
	TotalPendingHrs    float64         `json:"total_pending_hrs"`
	TotalGrossEarnings decimal.Decimal `json:"total_gross_earnings"`
}

// Approval is the per employee-month HR to Admin workflow record. Absence of a
// record is the initial state.
type Approval struct {
	ID          string
	EmployeeID  string
	Month       string
	Status      Status
	Snapshot    Snapshot
	SubmittedBy string
	DecidedBy   *string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
