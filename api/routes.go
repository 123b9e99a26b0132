package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"simplstream/handlers"
)

// Handlers bundles the handler set the router wires up.
type Handlers struct {
	Profiles    *handlers.ProfilesHandler
	Watchlist   *handlers.WatchlistHandler
	History     *handlers.HistoryHandler
	Preferences *handlers.PreferencesHandler
	Home        *handlers.HomeHandler
	Detail      *handlers.DetailHandler
	Export      *handlers.ExportHandler
}

// NewRouter builds the HTTP router.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	apiRouter := r.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/profiles", h.Profiles.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles", h.Profiles.Create).Methods(http.MethodPost)
	apiRouter.HandleFunc("/profiles/{id}", h.Profiles.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles/{id}", h.Profiles.Update).Methods(http.MethodPut)
	apiRouter.HandleFunc("/profiles/{id}", h.Profiles.Delete).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/profiles/{id}/pin", h.Profiles.SetPin).Methods(http.MethodPut)
	apiRouter.HandleFunc("/profiles/{id}/pin", h.Profiles.ClearPin).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/profiles/{id}/pin/verify", h.Profiles.VerifyPin).Methods(http.MethodPost)
	apiRouter.HandleFunc("/profiles/{id}/pin/recover", h.Profiles.RecoverPin).Methods(http.MethodPost)
	apiRouter.HandleFunc("/profiles/{id}/welcome", h.Profiles.CompleteWelcome).Methods(http.MethodPost)
	apiRouter.HandleFunc("/profiles/{id}/remove-data", h.Profiles.RemoveData).Methods(http.MethodPost)

	apiRouter.HandleFunc("/profiles/{id}/watchlist", h.Watchlist.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles/{id}/watchlist", h.Watchlist.Add).Methods(http.MethodPost)
	apiRouter.HandleFunc("/profiles/{id}/watchlist/{tmdbId}", h.Watchlist.Remove).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/profiles/{id}/watchlist/{tmdbId}", h.Watchlist.Contains).Methods(http.MethodGet)

	apiRouter.HandleFunc("/profiles/{id}/history", h.History.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles/{id}/history", h.History.Save).Methods(http.MethodPost)
	apiRouter.HandleFunc("/profiles/{id}/history/{mediaType}/{tmdbId}", h.History.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles/{id}/continue-watching", h.History.ContinueWatching).Methods(http.MethodGet)

	apiRouter.HandleFunc("/profiles/{id}/preferences", h.Preferences.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles/{id}/preferences/search-history", h.Preferences.SearchHistory).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles/{id}/preferences/search-history", h.Preferences.RecordSearch).Methods(http.MethodPost)
	apiRouter.HandleFunc("/profiles/{id}/preferences/search-history", h.Preferences.ClearSearchHistory).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/profiles/{id}/preferences/search-history/enabled", h.Preferences.SetSearchHistoryEnabled).Methods(http.MethodPut)
	apiRouter.HandleFunc("/profiles/{id}/preferences/avatar", h.Preferences.SetAvatar).Methods(http.MethodPut)
	apiRouter.HandleFunc("/profiles/{id}/preferences/avatar", h.Preferences.ClearAvatar).Methods(http.MethodDelete)

	apiRouter.HandleFunc("/profiles/{id}/home", h.Home.Home).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles/{id}/seasonal/ack", h.Home.AckSeasonal).Methods(http.MethodPost)

	apiRouter.HandleFunc("/titles/{mediaType}/{tmdbId}", h.Detail.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/titles/tv/{tmdbId}/season/{seasonNumber}", h.Detail.Season).Methods(http.MethodGet)

	apiRouter.HandleFunc("/profiles/{id}/export", h.Export.Export).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profiles/{id}/import", h.Export.Import).Methods(http.MethodPost)

	apiRouter.HandleFunc("/terms", handlers.Terms).Methods(http.MethodGet)

	r.PathPrefix("/api").HandlerFunc(handleOptions).Methods(http.MethodOptions)

	r.HandleFunc("/static/poster-placeholder.svg", servePosterPlaceholder).Methods(http.MethodGet)

	return r
}

const posterPlaceholder = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 750">` +
	`<rect width="500" height="750" fill="#1f2937"/>` +
	`<circle cx="250" cy="330" r="70" fill="#374151"/>` +
	`<rect x="150" y="440" width="200" height="24" rx="12" fill="#374151"/>` +
	`</svg>`

func servePosterPlaceholder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write([]byte(posterPlaceholder))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
