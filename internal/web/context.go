package web

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/JonMunkholm/ledgerview/internal/core"
	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
)

// withSession attaches the browser session to the request context, issuing a
// new session cookie when the request has none or its session expired.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.sessionFromCookie(r)
		if !ok {
			id = s.service.NewSession()
			http.SetCookie(w, s.sessionCookie(id))
		}

		ctx := core.ContextWithSessionID(r.Context(), id)
		ctx = core.ContextWithIPAddress(ctx, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) sessionFromCookie(r *http.Request) (uuid.UUID, bool) {
	c, err := r.Cookie(s.cfg.Session.CookieName)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return uuid.Nil, false
	}
	if _, err := s.service.Session(id); err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) sessionCookie(id uuid.UUID) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int(s.cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionModel returns the model of the request's session.
func (s *Server) sessionModel(r *http.Request) (uuid.UUID, *viewmodel.Model, error) {
	id, ok := core.SessionIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, nil, core.ErrSessionNotFound
	}
	model, err := s.service.Session(id)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, model, nil
}
