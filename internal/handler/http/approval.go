package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/approval"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/response"
)

type ApprovalHandler interface {
	ListByMonth(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	approvalService approval.Service
}

func NewApprovalHandler(approvalService approval.Service) ApprovalHandler {
	return &approvalHandlerImpl{approvalService: approvalService}
}

func (h *approvalHandlerImpl) ListByMonth(w http.ResponseWriter, r *http.Request) {
	result, err := h.approvalService.ListByMonth(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *approvalHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.approvalService.Get(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *approvalHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.approvalService.Submit(r.Context(), actorFrom(r), chi.URLParam(r, "employeeID"), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Submitted for approval", result)
}

func (h *approvalHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req approval.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.Month = chi.URLParam(r, "month")

	result, err := h.approvalService.Decide(r.Context(), actorFrom(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approval "+string(result.Status), result)
}
