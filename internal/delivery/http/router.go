package http

import (
	"net/http"

	"sequoiacare/internal/delivery/http/handler"
	"sequoiacare/internal/delivery/http/middleware"
	"sequoiacare/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	providerHandler   *handler.ProviderHandler
	catalogHandler    *handler.CatalogHandler
	auditLogHandler   *handler.AuditLogHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	providerHandler *handler.ProviderHandler,
	catalogHandler *handler.CatalogHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		providerHandler:   providerHandler,
		catalogHandler:    catalogHandler,
		auditLogHandler:   auditLogHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Not Found")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	r.router.HandleFunc("/users", r.authHandler.RegisterUser).Methods(http.MethodPost)
	r.router.HandleFunc("/token", r.authHandler.Login).Methods(http.MethodPost)
	r.router.HandleFunc("/providers", r.providerHandler.RegisterProvider).Methods(http.MethodPost)
	r.router.HandleFunc("/providers", r.providerHandler.ListProviders).Methods(http.MethodGet)
	r.router.HandleFunc("/providers/{id:[0-9]+}", r.providerHandler.GetProvider).Methods(http.MethodGet)
	r.router.HandleFunc("/subespecialidades", r.catalogHandler.ListSubespecialidades).Methods(http.MethodGet)
	r.router.HandleFunc("/idiomas", r.catalogHandler.ListIdiomas).Methods(http.MethodGet)

	// Protected routes
	protected := r.router.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/users/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := r.router.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)

	// Lets CORS preflight reach the middleware chain for every path
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}
