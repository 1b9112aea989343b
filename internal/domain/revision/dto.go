package revision

import (
	"github.com/shopspring/decimal"
)

type SalaryRevisionResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        string          `json:"employee_name"`
	Department          string          `json:"department"`
	RevisionDate        string          `json:"revision_date"`
	EffectiveFrom       string          `json:"effective_from"`
	RevisedBy           string          `json:"revised_by"`
	RevisedByName       string          `json:"revised_by_name"`
	Reason              string          `json:"reason"`
	Changes             []FieldChange   `json:"changes"`
	PreviousTotal       decimal.Decimal `json:"previous_total"`
	NewTotal            decimal.Decimal `json:"new_total"`
	IncrementPercentage decimal.Decimal `json:"increment_percentage"`
	CreatedAt           string          `json:"created_at"`
}

func NewSalaryRevisionResponse(r SalaryRevision) SalaryRevisionResponse {
	return SalaryRevisionResponse{
		ID:                  r.ID,
		EmployeeID:          r.EmployeeID,
		EmployeeName:        r.EmployeeName,
		Department:          r.Department,
		RevisionDate:        r.RevisionDate.Format("2006-01-02"),
		EffectiveFrom:       r.EffectiveFrom.Format("2006-01-02"),
		RevisedBy:           r.RevisedBy,
		RevisedByName:       r.RevisedByName,
		Reason:              r.Reason,
		Changes:             r.Changes,
		PreviousTotal:       r.PreviousTotal,
		NewTotal:            r.NewTotal,
		IncrementPercentage: r.IncrementPercentage,
		CreatedAt:           r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
