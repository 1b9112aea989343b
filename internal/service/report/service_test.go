package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/repository/memory"
)

type stubAggregator struct {
	days map[string][]timesheet.DayRow
}

func (s stubAggregator) GetMonthly(_ context.Context, employeeID, month string) (timesheet.MonthlyTimesheetResponse, error) {
	return timesheet.MonthlyTimesheetResponse{
		EmployeeID: employeeID,
		Month:      month,
		Days:       s.days[employeeID],
	}, nil
}

type stubRegister struct {
	resp payroll.EsiRegisterResponse
}

func (s stubRegister) RecomputeRegister(context.Context, string) (payroll.EsiRegisterResponse, error) {
	return s.resp, nil
}

func (s stubRegister) GetRegister(context.Context, string) (payroll.EsiRegisterResponse, error) {
	return s.resp, nil
}

func (s stubRegister) UpdateEntry(context.Context, user.Actor, payroll.UpdateEsiEntryRequest) (payroll.EsiEntryResponse, error) {
	return payroll.EsiEntryResponse{}, nil
}

func readXLSX(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func newReportFixture() *ReportServiceImpl {
	employees := memory.NewEmployeeRepo(
		employee.Employee{ID: "E1", Name: "Asha", Department: employee.DepartmentStaff, Status: employee.EmploymentStatusActive},
		employee.Employee{ID: "E2", Name: "Ravi", Department: employee.DepartmentWorker, Status: employee.EmploymentStatusInactive},
	)
	agg := stubAggregator{days: map[string][]timesheet.DayRow{
		"E1": {
			{Date: "2024-01-01", IsMarked: true, Status: attendance.StatusPresent, ShiftType: shift.TypeDay, CheckIn: "10:00 AM", CheckOut: "6:30 PM", WorkHrs: 8.5, ActualWorkHrs: 8.5},
			{Date: "2024-01-02", Status: attendance.StatusAbsent, ShiftType: shift.TypeDay, PendingHrs: 8.5},
		},
		"E2": {{Date: "2024-01-01", IsMarked: true, Status: attendance.StatusPresent}},
	}}
	reg := stubRegister{resp: payroll.NewEsiRegisterResponse("2024-01", []payroll.EsiEntry{{
		EmployeeID:         "E1",
		EmployeeName:       "Asha",
		Department:         "Staff",
		Month:              "2024-01",
		MonthlySalary:      decimal.NewFromInt(18000),
		Eligible:           true,
		TotalGrossEarnings: decimal.RequireFromString("17500.5"),
		Contribution:       decimal.RequireFromString("131.25"),
		PaymentStatus:      payroll.PaymentStatusPending,
	}})}

	return NewReportService(employees, agg, reg)
}

func TestExportTimesheet_CSV(t *testing.T) {
	svc := newReportFixture()

	file, err := svc.ExportTimesheet(context.Background(), report.ExportRequest{Month: "2024-01", Format: "CSV"})
	require.NoError(t, err)

	assert.Equal(t, "timesheet-2024-01.csv", file.Name)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3, "header plus two days of the only active employee")
	assert.True(t, strings.HasPrefix(lines[0], "employeeId,employeeName,department,date,status"))
	assert.True(t, strings.HasPrefix(lines[1], "E1,Asha,Staff,2024-01-01,Present,day,10:00 AM"))
	assert.Contains(t, lines[2], "Absent")
}

func TestExportTimesheet_XLSX(t *testing.T) {
	svc := newReportFixture()

	file, err := svc.ExportTimesheet(context.Background(), report.ExportRequest{Month: "2024-01"})
	require.NoError(t, err)
	assert.Equal(t, "timesheet-2024-01.xlsx", file.Name)

	rows := readXLSX(t, file.Data)
	require.Len(t, rows, 3)
	assert.Equal(t, "employeeId", rows[0][0])
	assert.Equal(t, "isMarked", rows[0][len(rows[0])-1])
	assert.Equal(t, []string{"E1", "Asha", "Staff", "2024-01-01", "Present"}, rows[1][:5])
}

func TestExportEsiRegister(t *testing.T) {
	svc := newReportFixture()

	file, err := svc.ExportEsiRegister(context.Background(), report.ExportRequest{Month: "2024-01", Format: report.FormatXLSX})
	require.NoError(t, err)

	rows := readXLSX(t, file.Data)
	require.Len(t, rows, 2)
	assert.Equal(t, "esiAmount", rows[0][7])
	assert.Equal(t, "18000.00", rows[1][4])
	assert.Equal(t, "17500.50", rows[1][6])
	assert.Equal(t, "131.25", rows[1][7])
}

func TestExport_Validation(t *testing.T) {
	svc := newReportFixture()

	_, err := svc.ExportTimesheet(context.Background(), report.ExportRequest{Month: "2024-1", Format: "pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month")
	assert.Contains(t, err.Error(), "format")
}

func TestExport_NoData(t *testing.T) {
	svc := NewReportService(memory.NewEmployeeRepo(), stubAggregator{}, stubRegister{resp: payroll.NewEsiRegisterResponse("2024-01", nil)})

	_, err := svc.ExportTimesheet(context.Background(), report.ExportRequest{Month: "2024-01"})
	assert.ErrorIs(t, err, report.ErrNoDataFound)

	_, err = svc.ExportEsiRegister(context.Background(), report.ExportRequest{Month: "2024-01"})
	assert.ErrorIs(t, err, report.ErrNoDataFound)
}
