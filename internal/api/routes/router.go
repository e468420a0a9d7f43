package routes

import (
	"encoding/json"
	"net/http"

	"github.com/ecogai/pollution-backend/internal/api/handlers"
	"github.com/ecogai/pollution-backend/internal/api/middleware"
	"github.com/ecogai/pollution-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler     *handlers.AuthHandler
	profileHandler  *handlers.ProfileHandler
	reportHandler   *handlers.ReportHandler
	locationHandler *handlers.LocationHandler
	adviceHandler   *handlers.AdviceHandler
	voiceHandler    *handlers.VoiceHandler
	mediaHandler    *handlers.MediaHandler
	alertHandler    *handlers.AlertHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	allowedOrigins  string
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	reportHandler *handlers.ReportHandler,
	locationHandler *handlers.LocationHandler,
	adviceHandler *handlers.AdviceHandler,
	voiceHandler *handlers.VoiceHandler,
	mediaHandler *handlers.MediaHandler,
	alertHandler *handlers.AlertHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	allowedOrigins string,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		authHandler:     authHandler,
		profileHandler:  profileHandler,
		reportHandler:   reportHandler,
		locationHandler: locationHandler,
		adviceHandler:   adviceHandler,
		voiceHandler:    voiceHandler,
		mediaHandler:    mediaHandler,
		alertHandler:    alertHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		allowedOrigins:  allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /auth/signup", r.authHandler.SignUp)
	r.mux.HandleFunc("POST /auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /auth/logout", r.authHandler.Logout)
	r.mux.HandleFunc("POST /auth/send-otp", r.authHandler.SendOTP)
	r.mux.HandleFunc("POST /auth/verify-otp", r.authHandler.VerifyOTP)

	// Profile endpoints
	r.mux.HandleFunc("GET /profile/{userId}", r.profileHandler.GetProfile)
	r.mux.HandleFunc("PUT /profile/{userId}", r.profileHandler.UpdateProfile)

	// Report endpoints
	r.mux.HandleFunc("POST /reports", r.reportHandler.CreateReport)
	r.mux.HandleFunc("GET /reports", r.reportHandler.ListReports)
	r.mux.HandleFunc("GET /reports/user/{userId}", r.reportHandler.ListUserReports)
	r.mux.HandleFunc("GET /reports/{id}", r.reportHandler.GetReport)

	// Standalone image upload kept for older client builds that upload
	// the photo before submitting the report
	r.mux.HandleFunc("POST /upload/image", r.mediaHandler.UploadImage)

	// Health alert endpoints
	r.mux.HandleFunc("GET /alerts/{userId}", r.alertHandler.ListUserAlerts)

	// Location endpoints
	r.mux.HandleFunc("GET /location/search", r.locationHandler.SearchPlaces)
	r.mux.HandleFunc("GET /location/places/suggest", r.locationHandler.SuggestPlaces)
	r.mux.HandleFunc("GET /location/geocode/reverse", r.locationHandler.ReverseGeocode)
	r.mux.HandleFunc("GET /location/places/{id}", r.locationHandler.GetPlace)
	r.mux.HandleFunc("POST /location/route", r.locationHandler.CalculateRoute)

	// AI advice; /ai/chat is the alias older client builds call
	r.mux.HandleFunc("POST /health-advice", r.adviceHandler.GetAdvice)
	r.mux.HandleFunc("POST /ai/chat", r.adviceHandler.GetAdvice)

	// Voice session endpoints
	r.mux.HandleFunc("POST /agora/token", r.voiceHandler.GenerateToken)
	r.mux.HandleFunc("POST /agora/report", r.voiceHandler.CreateVoiceReport)
	r.mux.HandleFunc("POST /agora/location-tips", r.voiceHandler.LocationTips)

	// Unknown routes get the envelope too
	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "route not found",
			"path":    req.URL.Path,
		})
	})

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
