package report

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
)

// MonthlyAggregator returns the aggregated days of an employee-month.
type MonthlyAggregator interface {
	GetMonthly(ctx context.Context, employeeID, month string) (timesheet.MonthlyTimesheetResponse, error)
}

type ReportServiceImpl struct {
	employeeRepo employee.Repository
	timesheets   MonthlyAggregator
	register     payroll.RegisterService
}

func NewReportService(employeeRepo employee.Repository, timesheets MonthlyAggregator, register payroll.RegisterService) *ReportServiceImpl {
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		timesheets:   timesheets,
		register:     register,
	}
}

// ExportTimesheet implements report.Service.
func (s *ReportServiceImpl) ExportTimesheet(ctx context.Context, req report.ExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list active employees: %w", err)
	}
	if len(employees) == 0 {
		return report.File{}, report.ErrNoDataFound
	}

	var rows []report.TimesheetRow
	for _, emp := range employees {
		sheet, err := s.timesheets.GetMonthly(ctx, emp.ID, req.Month)
		if err != nil {
			return report.File{}, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		for _, d := range sheet.Days {
			rows = append(rows, report.TimesheetRow{
				EmployeeID:    emp.ID,
				EmployeeName:  emp.Name,
				Department:    string(emp.Department),
				Date:          d.Date,
				Status:        string(d.Status),
				ShiftType:     string(d.ShiftType),
				CheckIn:       d.CheckIn,
				LunchIn:       d.LunchIn,
				LunchOut:      d.LunchOut,
				CheckOut:      d.CheckOut,
				WorkHrs:       d.WorkHrs,
				OtHrs:         d.OtHrs,
				PendingHrs:    d.PendingHrs,
				ActualWorkHrs: d.ActualWorkHrs,
				IsMarked:      d.IsMarked,
			})
		}
	}

	return render(req, "timesheet", rows)
}

// ExportEsiRegister implements report.Service.
func (s *ReportServiceImpl) ExportEsiRegister(ctx context.Context, req report.ExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}

	reg, err := s.register.GetRegister(ctx, req.Month)
	if err != nil {
		return report.File{}, err
	}
	if len(reg.Entries) == 0 {
		return report.File{}, report.ErrNoDataFound
	}

	rows := make([]report.EsiRow, 0, len(reg.Entries))
	for _, e := range reg.Entries {
		rows = append(rows, report.EsiRow{
			EmployeeID:         e.EmployeeID,
			EmployeeName:       e.EmployeeName,
			Department:         e.Department,
			Month:              e.Month,
			MonthlySalary:      e.MonthlySalary.StringFixed(2),
			EsiIncluded:        e.EsiIncluded,
			TotalGrossEarnings: e.TotalGrossEarnings.StringFixed(2),
			EsiAmount:          e.EsiAmount.StringFixed(2),
			PaymentStatus:      string(e.PaymentStatus),
			SalaryCredited:     e.SalaryCredited,
		})
	}

	return render(req, "esi", rows)
}

func render[T any](req report.ExportRequest, name string, rows []T) (report.File, error) {
	file := report.File{
		Name:        fmt.Sprintf("%s-%s.%s", name, req.Month, req.Format),
		ContentType: req.Format.ContentType(),
	}

	var (
		data []byte
		err  error
	)
	switch req.Format {
	case report.FormatCSV:
		data, err = gocsv.MarshalBytes(rows)
	default:
		data, err = writeXLSX(name, rows)
	}
	if err != nil {
		return report.File{}, errors.Join(report.ErrReportGenerationFailed, err)
	}

	file.Data = data
	return file, nil
}

// writeXLSX writes rows to a single sheet, using the csv tags as the header row.
func writeXLSX[T any](sheet string, rows []T) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headers := columnHeaders(reflect.TypeOf((*T)(nil)).Elem())
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := fieldValues(reflect.ValueOf(row))
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnHeaders(t reflect.Type) []interface{} {
	headers := make([]interface{}, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("csv")
		if name == "" {
			name = t.Field(i).Name
		}
		headers = append(headers, name)
	}
	return headers
}

func fieldValues(v reflect.Value) []interface{} {
	values := make([]interface{}, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		values = append(values, v.Field(i).Interface())
	}
	return values
}
