package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportTimesheet(w http.ResponseWriter, r *http.Request)
	ExportEsiRegister(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func exportRequest(r *http.Request) report.ExportRequest {
	return report.ExportRequest{
		Month:  chi.URLParam(r, "month"),
		Format: report.Format(r.URL.Query().Get("format")),
	}
}

func (h *reportHandlerImpl) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportTimesheet(r.Context(), exportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeFile(w, file)
}

func (h *reportHandlerImpl) ExportEsiRegister(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportEsiRegister(r.Context(), exportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeFile(w, file)
}

func writeFile(w http.ResponseWriter, file report.File) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		slog.Error("failed to write export", "file", file.Name, "error", err)
	}
}
