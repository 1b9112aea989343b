package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-timesheet-go/internal/config"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/domain/shift"
	appHTTP "github.com/cmlabs-hris/hris-timesheet-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-timesheet-go/internal/repository/postgresql"
	approvalService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/approval"
	attendanceService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/report"
	timesheetService "github.com/cmlabs-hris/hris-timesheet-go/internal/service/timesheet"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		log.Fatal("Error migrating database: ", err)
	}

	// Summary cache; without Redis loads still coalesce in-process
	summaryCache := cache.New(nil, cfg.Redis.SummaryTTL)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("redis unavailable, summary cache disabled", "error", err)
		} else {
			defer rdb.Close()
			summaryCache = cache.New(rdb, cfg.Redis.SummaryTTL)
		}
	}

	// Change events go to SSE subscribers and, when configured, Kafka
	hub := sse.NewHub()
	publishers := []events.Publisher{events.NewHubPublisher(hub)}
	if len(cfg.Kafka.Brokers) > 0 {
		publishers = append(publishers, events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)))
	}
	publisher := events.NewMultiPublisher(publishers...)
	defer publisher.Close()

	txManager := postgresql.NewTxManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	superSaveRepo := postgresql.NewSuperSaveRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	esiRepo := postgresql.NewEsiRepository(db)
	creditRepo := postgresql.NewCreditRepository(db)
	revisionRepo := postgresql.NewRevisionRepository(db)

	calendar := shift.DefaultCalendar()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	breakdownSvc := payrollService.NewBreakdownService(holidayRepo, cfg.Payroll.DefaultOTRate)
	timesheetSvc := timesheetService.NewTimesheetService(
		txManager,
		attendanceRepo,
		employeeRepo,
		summaryRepo,
		superSaveRepo,
		timesheetService.NewAggregator(calendar),
		breakdownSvc,
		summaryCache,
		publisher,
		cfg.Payroll.MinMarkedDays,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		attendanceRepo,
		employeeRepo,
		timesheetSvc,
		attendanceService.NewCalculator(calendar),
		summaryCache,
		publisher,
	)
	registerSvc := payrollService.NewRegisterService(
		txManager,
		employeeRepo,
		esiRepo,
		creditRepo,
		timesheetSvc,
		breakdownSvc,
		payrollService.NewEsiCalculator(cfg.Payroll),
		publisher,
	)
	approvalSvc := approvalService.NewApprovalService(txManager, approvalRepo, employeeRepo, timesheetSvc, breakdownSvc, publisher)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo, revisionRepo, publisher)
	reportSvc := reportService.NewReportService(employeeRepo, timesheetSvc, registerSvc)

	scheduler := cron.NewScheduler(time.Local)
	if err := cron.NewPayrollJobs(timesheetSvc, registerSvc).RegisterJobs(scheduler, cfg.Payroll.RecomputeCron); err != nil {
		log.Fatal("Error registering cron jobs: ", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc, calendar),
		appHTTP.NewTimesheetHandler(timesheetSvc),
		appHTTP.NewApprovalHandler(approvalSvc),
		appHTTP.NewEsiHandler(registerSvc),
		appHTTP.NewEmployeeHandler(employeeSvc, employeeSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewEventsHandler(hub, JWTService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
