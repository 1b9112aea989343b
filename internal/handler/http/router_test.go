package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/config"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/repository/memory"
	approvalService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/approval"
	attendanceService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/report"
	timesheetService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/timesheet"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var (
	hrActor       = user.Actor{ID: "hr-1", Name: "Meera", Role: user.RoleHR}
	adminActor    = user.Actor{ID: "admin-1", Name: "Kiran", Role: user.RoleAdmin}
	employeeActor = user.Actor{ID: "E1", Name: "Asha", Role: user.RoleEmployee}
)

type routerFixture struct {
	router     *chi.Mux
	jwtService jwt.Service
	hub        *sse.Hub
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	employees := memory.NewEmployeeRepo(employee.Employee{
		ID:         "E1",
		Name:       "Asha",
		Department: employee.DepartmentStaff,
		Status:     employee.EmploymentStatusActive,
		Salary: employee.SalaryStructure{
			MonthlySalary: decimal.NewFromInt(18000),
			Basic:         decimal.NewFromInt(9000),
			IncludeESI:    true,
		},
	})
	attendanceRepo := memory.NewAttendanceRepo()
	tx := &memory.Transactor{}
	calendar := shift.DefaultCalendar()
	hub := sse.NewHub()
	publisher := events.NewHubPublisher(hub)
	summaryCache := cache.New(nil, 0)
	payrollCfg := config.DefaultPayroll()

	breakdown := payrollService.NewBreakdownService(&memory.HolidayRepo{}, payrollCfg.DefaultOTRate)
	timesheets := timesheetService.NewTimesheetService(
		tx, attendanceRepo, employees,
		memory.NewSummaryRepo(), memory.NewSuperSaveRepo(),
		timesheetService.NewAggregator(calendar), breakdown,
		summaryCache, publisher, payrollCfg.MinMarkedDays,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		tx, attendanceRepo, employees, timesheets,
		attendanceService.NewCalculator(calendar), summaryCache, publisher,
	)
	register := payrollService.NewRegisterService(
		tx, employees, memory.NewEsiRepo(), &memory.CreditRepo{},
		timesheets, breakdown, payrollService.NewEsiCalculator(payrollCfg), publisher,
	)
	approvals := approvalService.NewApprovalService(tx, memory.NewApprovalRepo(), employees, timesheets, breakdown, publisher)
	employeeSvc := employeeService.NewEmployeeService(tx, employees, &memory.RevisionRepo{}, publisher)
	reports := reportService.NewReportService(employees, timesheets, register)

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	router := NewRouter(
		RouterConfig{Env: "test", Version: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAttendanceHandler(attendanceSvc, calendar),
		NewTimesheetHandler(timesheets),
		NewApprovalHandler(approvals),
		NewEsiHandler(register),
		NewEmployeeHandler(employeeSvc, employeeSvc),
		NewReportHandler(reports),
		NewEventsHandler(hub, jwtService),
	)

	return &routerFixture{router: router, jwtService: jwtService, hub: hub}
}

func (f *routerFixture) do(t *testing.T, actor *user.Actor, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		token, _, err := f.jwtService.GenerateAccessToken(*actor)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestRouter_RequiresAccessToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, nil, http.MethodGet, "/api/v1/attendance/2024-03-04", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sseToken, _, err := f.jwtService.GenerateSSEToken(hrActor)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts", nil)
	req.Header.Set("Authorization", "Bearer "+sseToken)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ListShifts(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, &employeeActor, http.MethodGet, "/api/v1/shifts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var defs []shift.Definition
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &defs))
	assert.Len(t, defs, 3)
}

func TestRouter_SaveAndGetAttendance(t *testing.T) {
	f := newRouterFixture(t)

	body := map[string]interface{}{
		"status":     "Present",
		"shift_type": "day",
		"check_in":   "10:00 AM",
		"lunch_in":   "1:00 PM",
		"lunch_out":  "2:00 PM",
		"check_out":  "6:30 PM",
	}
	rec := f.do(t, &hrActor, http.MethodPut, "/api/v1/attendance/2024-03-04/E1", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, &employeeActor, http.MethodGet, "/api/v1/attendance/2024-03-04/E1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Status   string  `json:"status"`
		WorkHrs  float64 `json:"work_hrs"`
		WorkTime string  `json:"work_time"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, "Present", got.Status)
	assert.Equal(t, 8.0, got.WorkHrs)
	assert.Equal(t, "8:00", got.WorkTime)

	rec = f.do(t, &hrActor, http.MethodGet, "/api/v1/timesheets/E1/2024-03/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []json.RawMessage
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &records))
	assert.Len(t, records, 1)
}

func TestRouter_SaveAttendanceErrors(t *testing.T) {
	f := newRouterFixture(t)
	valid := map[string]interface{}{"status": "Absent", "shift_type": "day"}

	rec := f.do(t, &employeeActor, http.MethodPut, "/api/v1/attendance/2024-03-04/E1", valid)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, &hrActor, http.MethodPut, "/api/v1/attendance/2024-03-04/E1", map[string]interface{}{"status": "Sick", "shift_type": "day"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)

	rec = f.do(t, &hrActor, http.MethodPut, "/api/v1/attendance/2024-03-04/E404", valid)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, &hrActor, http.MethodPut, "/api/v1/attendance/2024-03-05/E1", map[string]interface{}{
		"status":     "Present",
		"shift_type": "day",
		"check_in":   "25:00",
		"check_out":  "6:30 PM",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var degraded struct {
		CheckIn     string  `json:"check_in"`
		WorkHrs     float64 `json:"work_hrs"`
		PendingHrs  float64 `json:"pending_hrs"`
		PendingTime string  `json:"pending_time"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &degraded))
	assert.Equal(t, "25:00", degraded.CheckIn)
	assert.Zero(t, degraded.WorkHrs)
	assert.InDelta(t, 8.5, degraded.PendingHrs, 1e-9)
	assert.Equal(t, "8:30", degraded.PendingTime)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/attendance/2024-03-04/E1", strings.NewReader("{"))
	token, _, err := f.jwtService.GenerateAccessToken(hrActor)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_SuperSaveShortfall(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, &hrActor, http.MethodPost, "/api/v1/timesheets/E1/2024-03/supersave", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "INSUFFICIENT_MARKED_DAYS", env.Error.Code)
	assert.Equal(t, "0", env.Error.Details["marked"])
	assert.Equal(t, "26", env.Error.Details["shortfall"])
}

func TestRouter_GetMonthlyTimesheet(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, &employeeActor, http.MethodGet, "/api/v1/timesheets/E1/2024-03", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, &employeeActor, http.MethodGet, "/api/v1/timesheets/E1/2024-13", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_ApprovalRoutes(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, &adminActor, http.MethodGet, "/api/v1/approvals/2024-03", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, &adminActor, http.MethodGet, "/api/v1/approvals/E1/2024-03", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, &adminActor, http.MethodPost, "/api/v1/approvals/E1/2024-03/submit", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, &hrActor, http.MethodPost, "/api/v1/approvals/E1/2024-03/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, &adminActor, http.MethodPost, "/api/v1/approvals/E1/2024-03/decision", map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_EsiRegister(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, &employeeActor, http.MethodGet, "/api/v1/esi/2024-03", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, &hrActor, http.MethodGet, "/api/v1/esi/2024-03", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, &hrActor, http.MethodPatch, "/api/v1/esi/2024-03/E1", map[string]interface{}{"esi_included": false, "payment_status": "Paid"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, &hrActor, http.MethodPatch, "/api/v1/esi/2024-03/E1", map[string]interface{}{"payment_status": "Paid"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_EmployeeSalaryChange(t *testing.T) {
	f := newRouterFixture(t)
	body := map[string]interface{}{
		"salary": map[string]interface{}{
			"monthly_salary": "20000",
			"basic":          "10000",
			"include_esi":    true,
		},
		"reason": "Annual increment",
	}

	rec := f.do(t, &hrActor, http.MethodPut, "/api/v1/employees/E1", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, &adminActor, http.MethodPut, "/api/v1/employees/E1", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, &hrActor, http.MethodGet, "/api/v1/employees/E1/revisions", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, &adminActor, http.MethodGet, "/api/v1/employees/E1/revisions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var revisions []json.RawMessage
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &revisions))
	assert.Len(t, revisions, 1)
}

func TestRouter_ExportCSV(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, &hrActor, http.MethodGet, "/api/v1/exports/timesheet/2024-03?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "employeeId,"))

	rec = f.do(t, &hrActor, http.MethodGet, "/api/v1/exports/esi/2024-03?format=pdf", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, &employeeActor, http.MethodGet, "/api/v1/exports/esi/2024-03", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_EventStream(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, nil, http.MethodGet, "/api/v1/events?topic=timesheetSummary/E1", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, &hrActor, http.MethodPost, "/api/v1/events/token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tok SSETokenResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &tok))
	require.NotEmpty(t, tok.Token)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?topic=timesheetSummary/E1&token="+tok.Token, nil).WithContext(ctx)
	stream := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		f.router.ServeHTTP(stream, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return f.hub.SubscriberCount("timesheetSummary/E1") == 1 }, time.Second, 10*time.Millisecond)
	f.hub.Publish("timesheetSummary/E1/2024-03", sse.Event{Event: events.TypeAttendanceSaved, Data: map[string]string{"date": "2024-03-04"}})
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := stream.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "event: "+events.TypeAttendanceSaved)
	assert.Contains(t, body, `"date":"2024-03-04"`)
}

func TestRouter_EventStreamTopicPermissions(t *testing.T) {
	f := newRouterFixture(t)

	sseToken := func(actor user.Actor) string {
		rec := f.do(t, &actor, http.MethodPost, "/api/v1/events/token", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var tok SSETokenResponse
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &tok))
		return tok.Token
	}
	subscribe := func(token, topic string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/events?topic="+topic+"&token="+token, nil)
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		return rr.Code
	}

	employeeToken := sseToken(employeeActor)
	assert.Equal(t, http.StatusForbidden, subscribe(employeeToken, "esi"))
	assert.Equal(t, http.StatusForbidden, subscribe(employeeToken, "esi/2024-03"))
	assert.Equal(t, http.StatusForbidden, subscribe(employeeToken, "employees/E1"))

	hrToken := sseToken(hrActor)
	assert.Equal(t, http.StatusForbidden, subscribe(hrToken, "employees/E1"))

	adminToken := sseToken(adminActor)
	assert.Equal(t, http.StatusForbidden, subscribe(adminToken, "payrollCredited/2024-03"))
	assert.Equal(t, 0, f.hub.TotalSubscribers())
}
