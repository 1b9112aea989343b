package employee

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/revision"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
)

const defaultRevisionReason = "Salary revision"

var hundred = decimal.NewFromInt(100)

// DiffSalary lists the monitored fields that differ between prev and next, in a fixed order.
func DiffSalary(prev, next employee.SalaryStructure) []revision.FieldChange {
	amounts := []struct {
		field    string
		from, to decimal.Decimal
	}{
		{"monthlySalary", prev.MonthlySalary, next.MonthlySalary},
		{"basic", prev.Basic, next.Basic},
		{"hra", prev.HRA, next.HRA},
		{"conveyance", prev.Conveyance, next.Conveyance},
		{"specialAllowance", prev.SpecialAllowance, next.SpecialAllowance},
		{"additionalSpecialAllowance", prev.AdditionalSpecialAllowance, next.AdditionalSpecialAllowance},
		{"otherAllowance", prev.OtherAllowance, next.OtherAllowance},
	}

	var changes []revision.FieldChange
	for _, a := range amounts {
		if a.from.Equal(a.to) {
			continue
		}
		changeType := revision.ChangeIncrease
		if a.to.LessThan(a.from) {
			changeType = revision.ChangeDecrease
		}
		amount := a.to.Sub(a.from).Abs().Round(2)
		pct := percentChange(a.from, a.to).Abs()
		changes = append(changes, revision.FieldChange{
			Field:      a.field,
			OldValue:   a.from.StringFixed(2),
			NewValue:   a.to.StringFixed(2),
			ChangeType: changeType,
			Amount:     &amount,
			Percentage: &pct,
		})
	}

	flags := []struct {
		field    string
		from, to bool
	}{
		{"includeESI", prev.IncludeESI, next.IncludeESI},
		{"includePF", prev.IncludePF, next.IncludePF},
	}
	for _, f := range flags {
		if f.from == f.to {
			continue
		}
		changes = append(changes, revision.FieldChange{
			Field:      f.field,
			OldValue:   strconv.FormatBool(f.from),
			NewValue:   strconv.FormatBool(f.to),
			ChangeType: revision.ChangeToggle,
		})
	}

	return changes
}

// percentChange is the signed change relative to from, rounded to 2 places.
// A zero from value reports 100 for any non-zero to value.
func percentChange(from, to decimal.Decimal) decimal.Decimal {
	if from.IsZero() {
		if to.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return to.Sub(from).Div(from).Mul(hundred).Round(2)
}

// BuildRevision returns a ledger entry for the monitored changes between prev and
// next, or revision.ErrNoMonitoredChange when nothing monitored differs.
func BuildRevision(prev, next employee.Employee, actor user.Actor, reason string, now time.Time) (revision.SalaryRevision, error) {
	changes := DiffSalary(prev.Salary, next.Salary)
	if len(changes) == 0 {
		return revision.SalaryRevision{}, revision.ErrNoMonitoredChange
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultRevisionReason
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return revision.SalaryRevision{
		ID:                  uuid.New().String(),
		EmployeeID:          next.ID,
		EmployeeName:        next.Name,
		Department:          string(next.Department),
		RevisionDate:        today,
		EffectiveFrom:       today,
		RevisedBy:           actor.ID,
		RevisedByName:       actor.Name,
		Reason:              reason,
		Changes:             changes,
		PreviousTotal:       prev.Salary.MonthlySalary,
		NewTotal:            next.Salary.MonthlySalary,
		IncrementPercentage: percentChange(prev.Salary.MonthlySalary, next.Salary.MonthlySalary),
		CreatedAt:           now,
	}, nil
}
