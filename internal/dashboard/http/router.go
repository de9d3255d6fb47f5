package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/service"
	"github.com/deskboardhq/deskboard/internal/dashboard/store"
	"github.com/deskboardhq/deskboard/pkg/httpx"
	"github.com/deskboardhq/deskboard/pkg/jwtx"
	"github.com/deskboardhq/deskboard/pkg/slogx"

	_ "github.com/deskboardhq/deskboard/api/dashboard" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	uploadDir        string
	maxUploadBytes   int64
	AuthService      *service.AuthService
	UserService      *service.UserService
	TaskService      *service.TaskService
	EventService     *service.EventService
	ActivityService  *service.ActivityService
	AnalyticsService *service.AnalyticsService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	uploadDir string,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		verifier:       verifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		store:          st,
		uploadDir:      uploadDir,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerTasks()
	r.registerEvents()
	r.registerActivity()
	r.registerAnalytics()
	r.registerSystem()

	r.Mux.Handle("GET /uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.uploadDir))))
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Deskboard API
//	@version		0.1.0
//	@description	Backend for the internal admin dashboard: user management,
//	@description	kanban tasks with attachments, a recurring-event calendar,
//	@description	an activity log, and summary analytics.
//	@description
//	@description				Access tokens are HS256-signed JWTs issued by the login endpoint.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints are rate limited strictly by IP to slow brute
	// force attempts.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	securedRead := func(hf http.HandlerFunc) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			requireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	securedWrite := func(hf http.HandlerFunc) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			requireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /api/users", securedRead(h.HandleList))
	r.Mux.Handle("GET /api/users/{id}", securedRead(h.HandleGet))
	r.Mux.Handle("POST /api/users", securedWrite(h.HandleCreate))
	r.Mux.Handle("PUT /api/users/{id}", securedWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/users/{id}", securedWrite(h.HandleDelete))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{
		TaskService:    r.TaskService,
		MaxUploadBytes: r.maxUploadBytes,
	}

	secured := func(hf http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			requireRole(domain.RoleUser),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /api/tasks", secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/tasks", secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/tasks/{id}", secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/tasks/{id}/attachments", secured(h.HandleAttach, httpx.ModerateLimit))
}

func (r *Router) registerEvents() {
	h := &EventsHandler{EventService: r.EventService}

	secured := func(hf http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			requireRole(domain.RoleUser),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /api/events", secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/events", secured(h.HandleCreate, httpx.ModerateLimit))
}

func (r *Router) registerActivity() {
	h := &ActivityHandler{ActivityService: r.ActivityService}

	r.Mux.Handle("GET /api/activity",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			requireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAnalytics() {
	h := &AnalyticsHandler{AnalyticsService: r.AnalyticsService}

	r.Mux.Handle("GET /api/analytics",
		httpx.Chain(http.HandlerFunc(h.HandleSummary),
			httpx.AuthnMiddleware(r.verifier),
			requireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
