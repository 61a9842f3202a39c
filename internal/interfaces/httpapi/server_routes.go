package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/plays/{esbid}/{playID}", handler.GetPlay)
	mux.HandleFunc("POST /v1/plays/find", handler.FindPlay)
	mux.HandleFunc("GET /v1/cache/stats", handler.CacheStats)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/plays/update", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdatePlay)))
	mux.Handle("POST /v1/internal/jobs/import", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunImportJob)))
	mux.Handle("POST /v1/internal/cache/reload", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ReloadCache)))
}
