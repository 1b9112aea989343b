// Package memory holds in-memory repositories used by service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/revision"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/timemath"
)

// Transactor runs fn directly. Writes are not rolled back on error.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

func dayKey(employeeID string, d time.Time) string {
	return employeeID + "|" + timemath.DateKey(d)
}

func monthKey(employeeID string, m time.Time) string {
	return employeeID + "|" + timemath.MonthKey(m)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// ========================================
// ATTENDANCE
// ========================================

type AttendanceRepo struct {
	mu      sync.Mutex
	records map[string]attendance.DailyRecord
	// Extra records returned alongside stored ones, for duplicate-handling tests.
	Extra []attendance.DailyRecord
}

func NewAttendanceRepo() *AttendanceRepo {
	return &AttendanceRepo{records: make(map[string]attendance.DailyRecord)}
}

func (r *AttendanceRepo) Upsert(_ context.Context, rec attendance.DailyRecord) (attendance.DailyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := dayKey(rec.EmployeeID, rec.Date)
	rec.CreatedAt = now
	if cur, ok := r.records[key]; ok {
		rec.CreatedAt = cur.CreatedAt
	}
	rec.UpdatedAt = now
	r.records[key] = rec
	return rec, nil
}

func (r *AttendanceRepo) Get(_ context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[dayKey(employeeID, date)]
	if !ok {
		return attendance.DailyRecord{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *AttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.DailyRecord, error) {
	return r.filter(func(rec attendance.DailyRecord) bool {
		return timemath.DateKey(rec.Date) == timemath.DateKey(date)
	}), nil
}

func (r *AttendanceRepo) ListByEmployeeMonth(_ context.Context, employeeID string, month time.Time) ([]attendance.DailyRecord, error) {
	return r.filter(func(rec attendance.DailyRecord) bool {
		return rec.EmployeeID == employeeID && sameMonth(rec.Date, month)
	}), nil
}

func (r *AttendanceRepo) ListByMonth(_ context.Context, month time.Time) ([]attendance.DailyRecord, error) {
	return r.filter(func(rec attendance.DailyRecord) bool {
		return sameMonth(rec.Date, month)
	}), nil
}

func (r *AttendanceRepo) filter(keep func(attendance.DailyRecord) bool) []attendance.DailyRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []attendance.DailyRecord
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	for _, rec := range r.Extra {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

// ========================================
// EMPLOYEES
// ========================================

type EmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func NewEmployeeRepo(emps ...employee.Employee) *EmployeeRepo {
	r := &EmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		r.employees[e.ID] = e
	}
	return r
}

func (r *EmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp.CreatedAt = time.Now().UTC()
	emp.UpdatedAt = emp.CreatedAt
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepo) GetForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *EmployeeRepo) Update(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[emp.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.UpdatedAt = time.Now().UTC()
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *EmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []employee.Employee
	for _, e := range r.employees {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ========================================
// HOLIDAYS
// ========================================

type HolidayRepo struct {
	Holidays []holiday.Holiday
}

func (r *HolidayRepo) ListByMonth(_ context.Context, month time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range r.Holidays {
		if _, ok := h.OccursIn(month); ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// ========================================
// TIMESHEET SUMMARY / SUPER-SAVE
// ========================================

type SummaryRepo struct {
	mu        sync.Mutex
	summaries map[string]timesheet.MonthlySummary
}

func NewSummaryRepo() *SummaryRepo {
	return &SummaryRepo{summaries: make(map[string]timesheet.MonthlySummary)}
}

func (r *SummaryRepo) Upsert(_ context.Context, s timesheet.MonthlySummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summaries[s.EmployeeID+"|"+s.Month] = s
	return nil
}

func (r *SummaryRepo) Get(_ context.Context, employeeID string, month time.Time) (timesheet.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.summaries[monthKey(employeeID, month)]
	if !ok {
		return timesheet.MonthlySummary{}, timesheet.ErrSummaryNotFound
	}
	return s, nil
}

type SuperSaveRepo struct {
	mu      sync.Mutex
	records map[string]timesheet.SuperSaveRecord
}

func NewSuperSaveRepo() *SuperSaveRepo {
	return &SuperSaveRepo{records: make(map[string]timesheet.SuperSaveRecord)}
}

func (r *SuperSaveRepo) Upsert(_ context.Context, rec timesheet.SuperSaveRecord) (timesheet.SuperSaveRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.EmployeeID+"|"+rec.Month] = rec
	return rec, nil
}

func (r *SuperSaveRepo) Get(_ context.Context, employeeID string, month time.Time) (timesheet.SuperSaveRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[monthKey(employeeID, month)]
	if !ok {
		return timesheet.SuperSaveRecord{}, timesheet.ErrSuperSaveNotFound
	}
	return rec, nil
}

// ========================================
// APPROVALS
// ========================================

type ApprovalRepo struct {
	mu        sync.Mutex
	approvals map[string]approval.Approval
}

func NewApprovalRepo() *ApprovalRepo {
	return &ApprovalRepo{approvals: make(map[string]approval.Approval)}
}

func (r *ApprovalRepo) Get(_ context.Context, employeeID string, month time.Time) (approval.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.approvals[monthKey(employeeID, month)]
	if !ok {
		return approval.Approval{}, approval.ErrApprovalNotFound
	}
	return a, nil
}

func (r *ApprovalRepo) GetForUpdate(ctx context.Context, employeeID string, month time.Time) (approval.Approval, error) {
	return r.Get(ctx, employeeID, month)
}

func (r *ApprovalRepo) Save(_ context.Context, a approval.Approval) (approval.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := a.EmployeeID + "|" + a.Month
	if cur, ok := r.approvals[key]; ok {
		if cur.Status.IsTerminal() {
			return approval.Approval{}, approval.ErrApprovalAlreadyDecided
		}
		a.ID = cur.ID
		a.CreatedAt = cur.CreatedAt
	}
	r.approvals[key] = a
	return a, nil
}

func (r *ApprovalRepo) ListByMonth(_ context.Context, month time.Time) ([]approval.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []approval.Approval
	for _, a := range r.approvals {
		if a.Month == timemath.MonthKey(month) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

// ========================================
// ESI REGISTER
// ========================================

type EsiRepo struct {
	mu      sync.Mutex
	entries map[string]payroll.EsiEntry
}

func NewEsiRepo() *EsiRepo {
	return &EsiRepo{entries: make(map[string]payroll.EsiEntry)}
}

func (r *EsiRepo) UpsertComputed(_ context.Context, e payroll.EsiEntry) (payroll.EsiEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := e.EmployeeID + "|" + e.Month
	if cur, ok := r.entries[key]; ok {
		e.IncludedOverride = cur.IncludedOverride
		e.PaymentStatus = cur.PaymentStatus
	} else {
		e.IncludedOverride = nil
		e.PaymentStatus = payroll.PaymentStatusPending
	}
	e.UpdatedAt = time.Now().UTC()
	r.entries[key] = e
	return e, nil
}

func (r *EsiRepo) GetForUpdate(_ context.Context, month time.Time, employeeID string) (payroll.EsiEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[monthKey(employeeID, month)]
	if !ok {
		return payroll.EsiEntry{}, payroll.ErrEsiEntryNotFound
	}
	return e, nil
}

func (r *EsiRepo) SetOverrides(_ context.Context, month time.Time, employeeID string, included *bool, status payroll.PaymentStatus) (payroll.EsiEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := monthKey(employeeID, month)
	e, ok := r.entries[key]
	if !ok {
		return payroll.EsiEntry{}, payroll.ErrEsiEntryNotFound
	}
	e.IncludedOverride = included
	e.PaymentStatus = status
	e.UpdatedAt = time.Now().UTC()
	r.entries[key] = e
	return e, nil
}

func (r *EsiRepo) ListByMonth(_ context.Context, month time.Time) ([]payroll.EsiEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []payroll.EsiEntry
	for _, e := range r.entries {
		if e.Month == timemath.MonthKey(month) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

type CreditRepo struct {
	// Credited maps "YYYY-MM" to the employees whose salary was credited.
	Credited map[string]map[string]bool
}

func (r *CreditRepo) ListCredited(_ context.Context, month time.Time) (map[string]bool, error) {
	out := make(map[string]bool)
	for id, v := range r.Credited[timemath.MonthKey(month)] {
		out[id] = v
	}
	return out, nil
}

// ========================================
// SALARY REVISIONS
// ========================================

type RevisionRepo struct {
	mu        sync.Mutex
	revisions []revision.SalaryRevision
}

func (r *RevisionRepo) Append(_ context.Context, rev revision.SalaryRevision) (revision.SalaryRevision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revisions = append(r.revisions, rev)
	return rev, nil
}

func (r *RevisionRepo) ListByEmployee(_ context.Context, employeeID string) ([]revision.SalaryRevision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []revision.SalaryRevision
	for _, rev := range r.revisions {
		if rev.EmployeeID == employeeID {
			out = append(out, rev)
		}
	}
	return out, nil
}
