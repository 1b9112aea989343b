package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/revision"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	GetEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	ListRevisions(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.Service
	revisionService revision.Service
}

func NewEmployeeHandler(employeeService employee.Service, revisionService revision.Service) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		revisionService: revisionService,
	}
}

func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "employeeID")

	result, err := h.employeeService.Update(r.Context(), actorFrom(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

func (h *employeeHandlerImpl) ListRevisions(w http.ResponseWriter, r *http.Request) {
	result, err := h.revisionService.ListRevisions(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
