package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-attendance-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hris-attendance-go/internal/service/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/file"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	localStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Repositories
	employeeRepo := postgresql.NewEmployeeRepository(db)
	dailyRecordRepo := postgresql.NewDailyRecordRepository(db)
	importBatchRepo := postgresql.NewImportBatchRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	// Services
	fileService := file.NewFileService(localStorage)
	attendanceSvc := attendanceService.NewAttendanceService(db, dailyRecordRepo, importBatchRepo, employeeRepo, fileService, cfg.Import.Workers)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, dailyRecordRepo, employeeRepo)

	// Background jobs
	scheduler := cron.NewScheduler(ctx)
	if err := cron.NewImportJobs(fileService, cfg.Import.Retention).RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Handlers
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, attendanceSvc, cfg.Import.MaxUploadBytes())
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:             logger,
			CORSAllowedOrigins: cfg.App.CORSAllowedOrigins,
		},
		attendanceHandler,
		employeeHandler,
		dashboardHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
