package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

const (
	appName    = "hris-attendance"
	appVersion = "v1.0.0"
)

// NewLogger builds the JSON ECS logger shared by the application and the
// request logger.
func NewLogger(env, level string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", env),
	)
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown values are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type RouterOptions struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string
}

func NewRouter(opts RouterOptions, attendanceHandler AttendanceHandler, employeeHandler EmployeeHandler, dashboardHandler DashboardHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/import", attendanceHandler.Import)
			r.Get("/ledger", attendanceHandler.GetLedger)
			r.Get("/export", attendanceHandler.Export)
			r.Get("/imports/{id}/file", attendanceHandler.DownloadImport)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Get("/{id}", employeeHandler.GetEmployee)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashboardHandler.GetDashboard)
			r.Get("/daily", dashboardHandler.GetDailyStats)
			r.Get("/employees/{id}", dashboardHandler.GetEmployeeProductivity)
		})
	})
	return r
}
