package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/teampulse/attendance-backend-go/internal/config"
	appHTTP "github.com/teampulse/attendance-backend-go/internal/handler/http"
	"github.com/teampulse/attendance-backend-go/internal/pkg/cron"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
	"github.com/teampulse/attendance-backend-go/internal/pkg/jwt"
	"github.com/teampulse/attendance-backend-go/internal/pkg/sse"
	"github.com/teampulse/attendance-backend-go/internal/pkg/userlock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/webhook"
	"github.com/teampulse/attendance-backend-go/internal/repository/postgresql"
	editRequestService "github.com/teampulse/attendance-backend-go/internal/service/editrequest"
	markService "github.com/teampulse/attendance-backend-go/internal/service/mark"
	overtimeService "github.com/teampulse/attendance-backend-go/internal/service/overtime"
	projectService "github.com/teampulse/attendance-backend-go/internal/service/project"
	reportService "github.com/teampulse/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	markRepo := postgresql.NewMarkRepository(db)
	editRequestRepo := postgresql.NewEditRequestRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	txRunner := postgresql.NewTxRunner(db)
	locker := userlock.NewLocker()
	hub := sse.NewHub()
	webhookSender := webhook.NewNotifier(cfg.Webhook.Timeout, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	markSvc := markService.NewMarkService(markRepo, timeEntryRepo, locker, hub)
	editRequestSvc := editRequestService.NewEditRequestService(txRunner, editRequestRepo, markRepo, locker, hub)
	overtimeSvc := overtimeService.NewOvertimeService(overtimeRepo, hub)
	projectSvc := projectService.NewProjectTimeService(projectRepo, timeEntryRepo, markRepo, teamRepo, locker, webhookSender)
	reportSvc := reportService.NewReportService(markRepo, timeEntryRepo, overtimeRepo, userRepo, holidayRepo)

	markHandler := appHTTP.NewMarkHandler(markSvc)
	editRequestHandler := appHTTP.NewEditRequestHandler(editRequestSvc)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc)
	projectTimeHandler := appHTTP.NewProjectTimeHandler(projectSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, jwtService)

	scheduler := cron.NewScheduler()
	if cfg.AutoExit.Enabled {
		autoExit := cron.NewAutoExitJob(markRepo, locker, hub)
		scheduler.AddJob("auto_exit", cfg.AutoExit.CheckInterval, autoExit.Run)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		markHandler,
		editRequestHandler,
		overtimeHandler,
		projectTimeHandler,
		reportHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
