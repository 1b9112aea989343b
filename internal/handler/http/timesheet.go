package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	GetMonthly(w http.ResponseWriter, r *http.Request)
	SuperSave(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.Service
}

func NewTimesheetHandler(timesheetService timesheet.Service) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

func (h *timesheetHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetMonthly(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) SuperSave(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.SuperSave(r.Context(), actorFrom(r), chi.URLParam(r, "employeeID"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet super-saved", result)
}
