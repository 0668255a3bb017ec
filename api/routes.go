package api

import (
	"net/http"
	"regexp"
	"strings"
)

func cleanOrigin(origin string) string {
	cleanedOrigin := strings.TrimPrefix(origin, "https://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "http://")
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func isAllowedOrigin(origin string, allowedOrigins []string, devMode bool) bool {
	cleanedRequest := cleanOrigin(origin)

	// Allow localhost for development
	if devMode && localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		if cleanOrigin(allowed) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin == "" {
			origin = r.Header.Get("Referer")
		}

		if origin == "" || isAllowedOrigin(origin, app.Config.AllowedOrigins, app.Config.DevMode) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("origin not allowed: " + cleanOrigin(origin)))
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) *http.ServeMux {
	finalMux := http.NewServeMux()

	// Stateless endpoints
	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/v1/health", app.health)
	mux.HandleFunc("/v1/colors/parse", app.parseColor)
	mux.HandleFunc("/v1/colors/mix", app.mixColors)

	// Session endpoints
	mux.HandleFunc("/v1/colors/search", app.withSession(app.searchColor))
	mux.HandleFunc("/v1/colors/current", app.withSession(app.getCurrentColor))
	mux.HandleFunc("/v1/mixer", app.withSession(app.getMixer))
	mux.HandleFunc("/v1/mixer/mode", app.withSession(app.setMixerMode))
	mux.HandleFunc("/v1/mixer/slots/", app.withSession(app.setMixerSlot))
	mux.HandleFunc("/v1/mixer/mix", app.withSession(app.mixSlots))
	mux.HandleFunc("/v1/palette", app.withSession(app.palette))
	mux.HandleFunc("/v1/palette/", app.withSession(app.paletteEntry))

	// Wrap entire mux with CORS and origins check
	finalMux.Handle("/", app.logRequests(wrapMuxWithCorsAndOrigins(mux, app)))

	return finalMux
}
