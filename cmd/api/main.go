package main

import (
	"fmt"
	"net/http"

	"github.com/fieldtrack/timeclock-backend-go/internal/config"
	appHTTP "github.com/fieldtrack/timeclock-backend-go/internal/handler/http"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/cron"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/database"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/jwt"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/sse"
	"github.com/fieldtrack/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/fieldtrack/timeclock-backend-go/internal/service/attendance"
	authService "github.com/fieldtrack/timeclock-backend-go/internal/service/auth"
	reportService "github.com/fieldtrack/timeclock-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	eventRepo := postgresql.NewEventRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workAreaRepo := postgresql.NewWorkAreaRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	eventSvc := attendanceService.NewEventService(
		eventRepo,
		employeeRepo,
		workAreaRepo,
		postgresql.NewTxManager(db),
		hub,
		cfg.Attendance.Cooldown,
	)
	reportSvc := reportService.NewReportService(eventRepo, employeeRepo, workAreaRepo)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(eventSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(reportSvc, jwtService, hub),
		Master:     appHTTP.NewMasterHandler(workAreaRepo, employeeRepo),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	scheduler := cron.NewScheduler()
	jobs := cron.NewAttendanceJobs(eventRepo, hub, cfg.Attendance.MaxOpenTime)
	jobs.Register(scheduler, cfg.Attendance.SweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
