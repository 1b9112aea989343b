package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/jwt"
)

// RouterConfig carries the environment details the router logs and enforces.
type RouterConfig struct {
	Env            string
	Version        string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	timesheetHandler TimesheetHandler,
	approvalHandler ApprovalHandler,
	esiHandler EsiHandler,
	employeeHandler EmployeeHandler,
	reportHandler ReportHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-timesheet"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// SSE authenticates with a query token
		r.Get("/events", eventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Post("/events/token", eventsHandler.GetSSEToken)

			r.Route("/shifts", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
				r.Get("/", attendanceHandler.ListShifts)
			})

			r.Route("/attendance/{date}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", attendanceHandler.ListByDate)
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/{employeeID}", attendanceHandler.GetDaily)
				r.Put("/{employeeID}", attendanceHandler.SaveDaily)
			})

			r.Route("/timesheets/{employeeID}/{month}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTimesheetView)).Get("/", timesheetHandler.GetMonthly)
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/records", attendanceHandler.ListByEmployeeMonth)
				r.Post("/supersave", timesheetHandler.SuperSave)
			})

			r.Route("/approvals", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTimesheetView)).Get("/{month}", approvalHandler.ListByMonth)
				r.Route("/{employeeID}/{month}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionTimesheetView)).Get("/", approvalHandler.Get)
					r.Post("/submit", approvalHandler.Submit)
					r.Post("/decision", approvalHandler.Decide)
				})
			})

			r.Route("/esi/{month}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEsiView)).Get("/", esiHandler.GetRegister)
				r.With(middleware.RequirePermission(user.PermissionEsiManage)).Post("/recompute", esiHandler.RecomputeRegister)
				r.Patch("/{employeeID}", esiHandler.UpdateEntry)
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeEdit)).Get("/", employeeHandler.GetEmployee)
				r.Put("/", employeeHandler.UpdateEmployee)
				r.With(middleware.RequirePermission(user.PermissionRevisionView)).Get("/revisions", employeeHandler.ListRevisions)
			})

			r.Route("/exports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionExportDownload))
				r.Get("/timesheet/{month}", reportHandler.ExportTimesheet)
				r.Get("/esi/{month}", reportHandler.ExportEsiRegister)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "route not found", http.StatusNotFound)
	})

	return r
}
