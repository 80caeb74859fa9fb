package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/boris2442/task-bml/internal/config"
	appHTTP "github.com/boris2442/task-bml/internal/handler/http"
	"github.com/boris2442/task-bml/internal/pkg/cron"
	"github.com/boris2442/task-bml/internal/pkg/database"
	"github.com/boris2442/task-bml/internal/pkg/jwt"
	"github.com/boris2442/task-bml/internal/pkg/storage"
	"github.com/boris2442/task-bml/internal/repository/postgresql"
	approvalService "github.com/boris2442/task-bml/internal/service/approval"
	attendanceService "github.com/boris2442/task-bml/internal/service/attendance"
	authService "github.com/boris2442/task-bml/internal/service/auth"
	"github.com/boris2442/task-bml/internal/service/file"
	scheduleService "github.com/boris2442/task-bml/internal/service/schedule"
	statsService "github.com/boris2442/task-bml/internal/service/stats"
	userService "github.com/boris2442/task-bml/internal/service/user"
	"github.com/boris2442/task-bml/internal/service/workhours"
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

	userRepo := postgresql.NewUserRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	workAlertRepo := postgresql.NewWorkAlertRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	documents := file.NewDocumentStore(fileStorage)

	scheduleProvider := workhours.NewScheduleProvider(workScheduleRepo, holidayRepo)
	engine := workhours.NewEngine(scheduleProvider, attendanceRepo)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo)
	scheduleSvc := scheduleService.NewScheduleService(workScheduleRepo, holidayRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, documents, txManager)
	approvalSvc := approvalService.NewApprovalService(attendanceRepo, approvalRepo, txManager)
	statsSvc := statsService.NewStatsService(engine, userRepo, attendanceRepo, holidayRepo)

	scheduler := cron.NewScheduler()
	cron.NewAlertJobs(statsSvc, workAlertRepo).Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, cfg.App.Env, appHTTP.Handlers{
		Auth:              appHTTP.NewAuthHandler(authSvc, jwtService),
		Attendance:        appHTTP.NewAttendanceHandler(attendanceSvc),
		Approval:          appHTTP.NewApprovalHandler(approvalSvc, attendanceSvc, attendanceRepo, documents),
		Dashboard:         appHTTP.NewDashboardHandler(statsSvc),
		EmployeeDashboard: appHTTP.NewEmployeeDashboardHandler(statsSvc),
		User:              appHTTP.NewUserHandler(userSvc),
		Schedule:          appHTTP.NewScheduleHandler(scheduleSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
