package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/badges", handler.ListBadgeCatalog)
	mux.HandleFunc("GET /v1/seasons/{season}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/seasons/{season}/badges", handler.GetSeasonBadges)
	mux.HandleFunc("GET /v1/seasons/{season}/stats", handler.GetSeasonStats)
	mux.HandleFunc("GET /v1/seasons/{season}/players", handler.ListSeasonPlayers)
	mux.HandleFunc("GET /v1/seasons/{season}/players/{playerID}", handler.GetSeasonPlayer)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("POST /v1/admin/picks/{pickID}/approve", adminOnly(handler.ApprovePick))
	mux.Handle("POST /v1/admin/players/{playerID}/penalties", adminOnly(handler.ApplyPenalty))
	mux.Handle("POST /v1/admin/persons", adminOnly(handler.RegisterPerson))
	mux.Handle("POST /v1/admin/persons/{personID}/death", adminOnly(handler.ConfirmDeath))
}
