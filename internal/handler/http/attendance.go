package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ListShifts(w http.ResponseWriter, r *http.Request)
	SaveDaily(w http.ResponseWriter, r *http.Request)
	GetDaily(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	ListByEmployeeMonth(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	calendar          *shift.Calendar
}

func NewAttendanceHandler(attendanceService attendance.Service, calendar *shift.Calendar) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		calendar:          calendar,
	}
}

// actorFrom returns the authenticated actor. A missing actor is the zero value,
// which holds no permissions.
func actorFrom(r *http.Request) user.Actor {
	actor, _ := middleware.ActorFromContext(r.Context())
	return actor
}

func (h *attendanceHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.calendar.List())
}

func (h *attendanceHandlerImpl) SaveDaily(w http.ResponseWriter, r *http.Request) {
	var req attendance.SaveDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Date = chi.URLParam(r, "date")
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.SaveDaily(r.Context(), actorFrom(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved", result)
}

func (h *attendanceHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetDaily(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListByEmployeeMonth(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListByEmployeeMonth(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
