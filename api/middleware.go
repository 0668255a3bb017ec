package api

import (
	"context"
	"net/http"
	"time"

	"github.com/colorix/api/models"
)

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Access-Control-Allow-Credentials, Access-Control-Allow-Origin, Accept, Content-Type, Content-Length, Accept-Encoding")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	}
}

type contextKey string

const sessionContextKey contextKey = "session"

// sessionID returns the id withSession placed on the request.
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionContextKey).(string)
	return id
}

// withSession resolves the session cookie to a live session. A missing,
// invalid or expired cookie, or a session the janitor already removed,
// starts a fresh session and sets a new cookie.
func (app *Application) withSession(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := app.sessionFromCookie(r)
		if !ok {
			session, err := app.SessionRepo.Create()
			if err != nil {
				app.internalServerError(w, r, err)
				return
			}
			if err := app.setSessionCookie(w, session.ID); err != nil {
				app.internalServerError(w, r, err)
				return
			}
			app.Logger.Debug("started session", "session", session.ID)
			id = session.ID
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, id)
		h.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (app *Application) sessionFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(models.JWT.SESSION_COOKIE_NAME)
	if err != nil {
		return "", false
	}

	claims, err := models.ValidateSessionToken(cookie.Value, app.sessionKey)
	if err != nil {
		return "", false
	}

	if _, err := app.SessionRepo.Touch(claims.SessionID); err != nil {
		return "", false
	}
	return claims.SessionID, true
}

func (app *Application) setSessionCookie(w http.ResponseWriter, id string) error {
	now := time.Now()
	expiry := now.Add(app.Config.SessionMaxAge)

	token, err := models.NewSessionToken(id, app.sessionKey, now, expiry)
	if err != nil {
		return err
	}

	sameSite := http.SameSiteStrictMode
	if app.Config.SessionDomain == "" {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.JWT.SESSION_COOKIE_NAME,
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
		Domain:   app.Config.SessionDomain,
		Expires:  expiry,
	})
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (app *Application) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		app.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
