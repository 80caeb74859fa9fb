package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/boris2442/task-bml/internal/handler/http/middleware"
	"github.com/boris2442/task-bml/internal/pkg/jwt"
)

type Handlers struct {
	Auth              AuthHandler
	Attendance        AttendanceHandler
	Approval          ApprovalHandler
	Dashboard         DashboardHandler
	EmployeeDashboard EmployeeDashboardHandler
	User              UserHandler
	Schedule          ScheduleHandler
}

func NewRouter(jwtService jwt.Service, env string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "task-bml"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/arrival", h.Attendance.SubmitArrival)
				r.Post("/departure", h.Attendance.SubmitDeparture)
				r.Get("/history", h.Attendance.History)
			})

			r.Get("/employee/dashboard", h.EmployeeDashboard.Dashboard)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/approvals", func(r chi.Router) {
					r.Get("/", h.Approval.ListPending)
					r.Post("/batch", h.Approval.Batch)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Approval.Detail)
						r.Post("/approve-arrival", h.Approval.ApproveArrival)
						r.Post("/approve-departure", h.Approval.ApproveDeparture)
						r.Post("/reject", h.Approval.Reject)
						r.Get("/documents/{docID}/download", h.Approval.DownloadDocument)
					})
				})

				r.Get("/dashboard", h.Dashboard.AdminDashboard)
				r.Get("/reports", h.Dashboard.Reports)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.User.Get)
						r.Put("/", h.User.Update)
						r.Delete("/", h.User.Delete)
						r.Route("/schedule", func(r chi.Router) {
							r.Get("/", h.Schedule.GetUserSchedule)
							r.Put("/", h.Schedule.UpsertUserSchedule)
							r.Delete("/", h.Schedule.DeleteUserSchedule)
						})
					})
				})
				r.Get("/employees/{id}/detail", h.Dashboard.EmployeeDetail)

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", h.Schedule.ListHolidays)
					r.Post("/", h.Schedule.CreateHoliday)
					r.Delete("/{id}", h.Schedule.DeleteHoliday)
				})
			})
		})
	})

	return r
}
