package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/response"
)

type EsiHandler interface {
	GetRegister(w http.ResponseWriter, r *http.Request)
	RecomputeRegister(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
}

type esiHandlerImpl struct {
	registerService payroll.RegisterService
}

func NewEsiHandler(registerService payroll.RegisterService) EsiHandler {
	return &esiHandlerImpl{registerService: registerService}
}

func (h *esiHandlerImpl) GetRegister(w http.ResponseWriter, r *http.Request) {
	result, err := h.registerService.GetRegister(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *esiHandlerImpl) RecomputeRegister(w http.ResponseWriter, r *http.Request) {
	result, err := h.registerService.RecomputeRegister(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "ESI register recomputed", result)
}

func (h *esiHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateEsiEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Month = chi.URLParam(r, "month")
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.registerService.UpdateEntry(r.Context(), actorFrom(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
