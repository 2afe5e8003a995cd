package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/exhibitkit/showroom/internal/api/handler"
	"github.com/exhibitkit/showroom/internal/api/middleware"
	"github.com/exhibitkit/showroom/internal/api/stream"
	"github.com/exhibitkit/showroom/internal/factory"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	App    *factory.App
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	app := cfg.App

	// Create handlers
	authHandler := handler.NewAuthHandler(app.Loop, app.Bus, app.AuthService)
	screenHandler := handler.NewScreenHandler(app.Loop, app.Bus, app.Navigator)
	libraryHandler := handler.NewLibraryHandler(app.Loop, app.Library)
	playbackHandler := handler.NewPlaybackHandler(app.Loop, app.Playback)
	tourHandler := handler.NewTourHandler(app.Loop, app.Tour)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", authHandler.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/acknowledge", authHandler.Acknowledge).Methods(http.MethodPost)
	api.HandleFunc("/auth/exists/{username}", authHandler.Exists).Methods(http.MethodGet)

	// Screen routes
	api.HandleFunc("/screens", screenHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/screens/project1", screenHandler.ChooseProject1).Methods(http.MethodPost)
	api.HandleFunc("/screens/project2", screenHandler.ChooseProject2).Methods(http.MethodPost)

	// Library routes
	api.HandleFunc("/library", libraryHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/library/load", libraryHandler.Load).Methods(http.MethodPost)
	api.HandleFunc("/library/choose", libraryHandler.Choose).Methods(http.MethodPost)

	// Playback routes
	api.HandleFunc("/playback", playbackHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/playback/pause", playbackHandler.TogglePause).Methods(http.MethodPost)
	api.HandleFunc("/playback/seek", playbackHandler.Seek).Methods(http.MethodPost)
	api.HandleFunc("/playback/fast-forward", playbackHandler.FastForward).Methods(http.MethodPost)
	api.HandleFunc("/playback/rewind", playbackHandler.Rewind).Methods(http.MethodPost)
	api.HandleFunc("/playback/stop", playbackHandler.Stop).Methods(http.MethodPost)
	api.HandleFunc("/playback/replay", playbackHandler.Replay).Methods(http.MethodPost)

	// Tour routes
	api.HandleFunc("/tour", tourHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tour/build", tourHandler.Build).Methods(http.MethodPost)
	api.HandleFunc("/tour/next", tourHandler.Next).Methods(http.MethodPost)
	api.HandleFunc("/tour/back", tourHandler.Back).Methods(http.MethodPost)

	// Event stream (SSE)
	api.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		stream.ServeSSE(w, r, app.Hub)
	}).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
