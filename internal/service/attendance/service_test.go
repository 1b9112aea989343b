package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/repository/memory"
)

type refreshCall struct {
	employeeID string
	month      time.Time
}

type recordingRefresher struct {
	calls []refreshCall
	err   error
}

func (r *recordingRefresher) RefreshSummary(_ context.Context, employeeID string, month time.Time) error {
	r.calls = append(r.calls, refreshCall{employeeID, month})
	return r.err
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var (
	hrActor       = user.Actor{ID: "hr-1", Name: "Meera", Role: user.RoleHR}
	employeeActor = user.Actor{ID: "emp-1", Name: "Asha", Role: user.RoleEmployee}
)

type attendanceFixture struct {
	svc       attendance.Service
	repo      *memory.AttendanceRepo
	refresher *recordingRefresher
	publisher *recordingPublisher
}

func newAttendanceFixture(summaryCache *cache.Cache) attendanceFixture {
	f := attendanceFixture{
		repo:      memory.NewAttendanceRepo(),
		refresher: &recordingRefresher{},
		publisher: &recordingPublisher{},
	}
	employees := memory.NewEmployeeRepo(employee.Employee{
		ID:         "E1",
		Name:       "Asha",
		Department: employee.DepartmentStaff,
		Status:     employee.EmploymentStatusActive,
	})
	f.svc = NewAttendanceService(
		&memory.Transactor{},
		f.repo,
		employees,
		f.refresher,
		NewCalculator(shift.DefaultCalendar()),
		summaryCache,
		f.publisher,
	)
	return f
}

func dayRequest() attendance.SaveDailyRequest {
	return attendance.SaveDailyRequest{
		EmployeeID: "E1",
		Date:       "2024-03-12",
		Status:     "Present",
		ShiftType:  "day",
		CheckIn:    "10:00 AM",
		LunchIn:    "1:00 PM",
		LunchOut:   "2:00 PM",
		CheckOut:   "6:30 PM",
		OtHrs:      1.25,
	}
}

func TestSaveDaily_DerivesHoursAndRefreshes(t *testing.T) {
	f := newAttendanceFixture(cache.New(nil, 0))

	resp, err := f.svc.SaveDaily(context.Background(), hrActor, dayRequest())
	require.NoError(t, err)

	assert.InDelta(t, 8.0, resp.WorkHrs, 1e-9)
	assert.InDelta(t, 0.5, resp.PendingHrs, 1e-9)
	assert.InDelta(t, 1.25, resp.OtHrs, 1e-9)
	assert.Equal(t, "8:00", resp.WorkTime)
	assert.Equal(t, "0:30", resp.PendingTime)
	assert.Equal(t, "hr-1", resp.UpdatedBy)

	require.Len(t, f.refresher.calls, 1)
	assert.Equal(t, "E1", f.refresher.calls[0].employeeID)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), f.refresher.calls[0].month)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeAttendanceSaved, f.publisher.events[0].Type)
	assert.Equal(t, "timesheetSummary/E1/2024-03", f.publisher.events[0].Topic)
}

func TestSaveDaily_MalformedPunchDegradesToPending(t *testing.T) {
	f := newAttendanceFixture(cache.New(nil, 0))

	req := dayRequest()
	req.Date = "2024-03-04"
	req.CheckIn = "10:00"
	req.LunchIn = ""
	req.LunchOut = ""
	req.OtHrs = 0
	resp, err := f.svc.SaveDaily(context.Background(), hrActor, req)
	require.NoError(t, err)

	assert.Zero(t, resp.WorkHrs)
	assert.Zero(t, resp.ActualWorkHrs)
	assert.InDelta(t, 8.5, resp.PendingHrs, 1e-9)
	assert.Equal(t, "10:00", resp.CheckIn)
	assert.Equal(t, "6:30 PM", resp.CheckOut)

	stored, err := f.svc.GetDaily(context.Background(), "E1", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, "10:00", stored.CheckIn)
	assert.InDelta(t, 8.5, stored.PendingHrs, 1e-9)
	require.Len(t, f.refresher.calls, 1)
}

func TestSaveDaily_NormalizesPunches(t *testing.T) {
	f := newAttendanceFixture(cache.New(nil, 0))

	req := dayRequest()
	req.CheckIn = "10:00am"
	req.CheckOut = " 6:30 pm"
	resp, err := f.svc.SaveDaily(context.Background(), hrActor, req)
	require.NoError(t, err)
	assert.Equal(t, "10:00 AM", resp.CheckIn)
	assert.Equal(t, "6:30 PM", resp.CheckOut)
	assert.InDelta(t, 8.0, resp.WorkHrs, 1e-9)
}

func TestSaveDaily_ReplacesExistingRecord(t *testing.T) {
	f := newAttendanceFixture(cache.New(nil, 0))

	_, err := f.svc.SaveDaily(context.Background(), hrActor, dayRequest())
	require.NoError(t, err)

	req := dayRequest()
	req.Status = "Leave"
	_, err = f.svc.SaveDaily(context.Background(), hrActor, req)
	require.NoError(t, err)

	list, err := f.svc.ListByEmployeeMonth(context.Background(), "E1", "2024-03")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, attendance.StatusLeave, list[0].Status)
	assert.Zero(t, list[0].WorkHrs)
	assert.Zero(t, list[0].PendingHrs)
}

func TestSaveDaily_InvalidatesCachedTimesheet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectDel("timesheet:E1:2024-03").SetVal(1)
	f := newAttendanceFixture(cache.New(db, time.Minute))

	_, err := f.svc.SaveDaily(context.Background(), hrActor, dayRequest())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDaily_CacheFailureDoesNotFailSave(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectDel("timesheet:E1:2024-03").SetErr(errors.New("connection refused"))
	f := newAttendanceFixture(cache.New(db, time.Minute))

	_, err := f.svc.SaveDaily(context.Background(), hrActor, dayRequest())
	require.NoError(t, err)

	_, err = f.svc.GetDaily(context.Background(), "E1", "2024-03-12")
	assert.NoError(t, err)
}

func TestSaveDaily_Rejections(t *testing.T) {
	t.Run("employee role cannot mark", func(t *testing.T) {
		f := newAttendanceFixture(cache.New(nil, 0))
		_, err := f.svc.SaveDaily(context.Background(), employeeActor, dayRequest())
		assert.ErrorIs(t, err, user.ErrForbidden)
		assert.Empty(t, f.refresher.calls)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newAttendanceFixture(cache.New(nil, 0))
		req := dayRequest()
		req.EmployeeID = "E404"
		_, err := f.svc.SaveDaily(context.Background(), hrActor, req)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("invalid status and ot hours", func(t *testing.T) {
		f := newAttendanceFixture(cache.New(nil, 0))
		req := dayRequest()
		req.Status = "Sick"
		req.OtHrs = -1
		_, err := f.svc.SaveDaily(context.Background(), hrActor, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status")
		assert.Contains(t, err.Error(), "ot_hrs")
		assert.Empty(t, f.refresher.calls)
	})

	t.Run("refresh failure surfaces", func(t *testing.T) {
		f := newAttendanceFixture(cache.New(nil, 0))
		f.refresher.err = errors.New("boom")
		_, err := f.svc.SaveDaily(context.Background(), hrActor, dayRequest())
		assert.EqualError(t, err, "boom")
		assert.Empty(t, f.publisher.events)
	})
}

func TestGetDaily_NotFound(t *testing.T) {
	f := newAttendanceFixture(cache.New(nil, 0))

	_, err := f.svc.GetDaily(context.Background(), "E1", "2024-03-01")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	_, err = f.svc.GetDaily(context.Background(), "E1", "03/01/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}
