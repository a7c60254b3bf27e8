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

	"github.com/teampulse/attendance-backend-go/internal/handler/http/middleware"
	"github.com/teampulse/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	markHandler MarkHandler,
	editRequestHandler EditRequestHandler,
	overtimeHandler OvertimeHandler,
	projectTimeHandler ProjectTimeHandler,
	reportHandler ReportHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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

	r.Route("/api/v1", func(r chi.Router) {
		// The stream endpoint authenticates with its own short-lived token
		// passed as a query parameter.
		r.Get("/events", eventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/events/token", eventsHandler.GetSSEToken)

			r.Route("/marks", func(r chi.Router) {
				r.Post("/", markHandler.Register)
				r.Get("/", markHandler.List)
				r.Get("/today", markHandler.Today)
			})

			r.Route("/edit-requests", func(r chi.Router) {
				r.Post("/", editRequestHandler.Submit)
				r.Get("/", editRequestHandler.List)
				r.Get("/missing-exits", editRequestHandler.MissingExits)
				r.Post("/missing-exit", editRequestHandler.RequestMissingExit)
				r.Post("/{id}/approve", editRequestHandler.Approve)
				r.Post("/{id}/reject", editRequestHandler.Reject)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Post("/", overtimeHandler.Submit)
				r.Get("/", overtimeHandler.ListForTeam)
				r.Get("/my", overtimeHandler.ListMine)
				r.Post("/{id}/decide", overtimeHandler.Decide)
			})

			r.Route("/project-time", func(r chi.Router) {
				r.Post("/open", projectTimeHandler.Open)
				r.Post("/close", projectTimeHandler.Close)
				r.Get("/threshold", projectTimeHandler.Threshold)
				r.Get("/my", projectTimeHandler.List)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/range", reportHandler.Range)
				r.Get("/team-day", reportHandler.TeamDay)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
