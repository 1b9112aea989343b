package revision

import (
	"time"

	"github.com/shopspring/decimal"
)

type ChangeType string

const (
	ChangeIncrease ChangeType = "increase"
	ChangeDecrease ChangeType = "decrease"
	ChangeToggle   ChangeType = "toggle"
)

// FieldChange is one monitored field that differs between two salary snapshots.
// Amount and Percentage are nil for toggles.
type FieldChange struct {
	Field      string           `json:"field"`
	OldValue   string           `json:"old_value"`
	NewValue   string           `json:"new_value"`
	ChangeType ChangeType       `json:"change_type"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// SalaryRevision is an immutable ledger entry. It is never updated or deleted.
type SalaryRevision struct {
	ID                  string
	EmployeeID          string
	EmployeeName        string
	Department          string
	RevisionDate        time.Time
	EffectiveFrom       time.Time
	RevisedBy           string
	RevisedByName       string
	Reason              string
	Changes             []FieldChange
	PreviousTotal       decimal.Decimal
	NewTotal            decimal.Decimal
	IncrementPercentage decimal.Decimal
	CreatedAt           time.Time
}
