package http

import (
	"log/slog"
	"os"

	"github.com/fieldtrack/timeclock-backend-go/internal/config"
	"github.com/fieldtrack/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	Master     MasterHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/device-login", h.Auth.DeviceLogin)
		})

		// Stream auth rides on a query-parameter token, not the Authorization
		// header, so it sits outside the verifier group.
		r.Get("/dashboard/stream", h.Dashboard.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/pause", h.Attendance.TogglePause)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/me", h.Attendance.GetMyAttendance)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.List)
					r.Get("/{id}", h.Attendance.Get)
					r.Put("/{id}", h.Attendance.Update)
				})
			})

			r.Route("/work-areas", func(r chi.Router) {
				r.Get("/", h.Master.ListWorkAreas)
				r.Get("/{id}", h.Master.GetWorkArea)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/live", h.Dashboard.GetLive)
				r.Get("/stream-token", h.Dashboard.GetStreamToken)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/reports/hours", h.Report.GetHoursReport)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Master.ListEmployees)
					r.Get("/{id}", h.Master.GetEmployee)
				})
			})
		})
	})
	return r
}
