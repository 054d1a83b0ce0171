package middleware

import (
	"context"
	"net/http"

	"doctor-admin-dashboard/pkg/jwt"
	"doctor-admin-dashboard/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const SessionIDKey contextKey = "session_id"

// SessionCookieName holds the signed session token
const SessionCookieName = "dashboard_session"

type SessionMiddleware struct {
	jwtService *jwt.JWTService
	log        *logrus.Logger
	secure     bool
}

func NewSessionMiddleware(jwtService *jwt.JWTService, log *logrus.Logger, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		jwtService: jwtService,
		log:        log,
		secure:     secure,
	}
}

// Handle resolves the session from its cookie, starting a new one when the cookie is missing or invalid.
func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			claims, err := m.jwtService.ValidateToken(cookie.Value)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionIDKey, claims.SessionID)))
				return
			}
			m.log.Debugf("Discarding invalid session cookie: %+v", err)
		}

		token, sessionID, err := m.jwtService.GenerateSessionToken()
		if err != nil {
			m.log.Warnf("Failed to generate session token: %+v", err)
			response.InternalServerError(w, "Failed to start session")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(m.jwtService.GetSessionExpiry().Seconds()),
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionIDKey, sessionID)))
	})
}

// GetSessionIDFromContext extracts the session ID from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}
