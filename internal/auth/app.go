package auth

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

const adminSubject = "admin"

type Server struct {
	Log       *zap.Logger
	JWT       *TokenMaker
	Passwords *PasswordVerifier
}

type loginReq struct {
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "password required", nil)
		return
	}

	if err := s.Passwords.Verify(req.Password); err != nil {
		if s.Log != nil {
			s.Log.Warn("admin login rejected", zap.String("remote", r.RemoteAddr))
		}
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	tok, claims, err := s.JWT.Issue(adminSubject, RoleAdmin)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("token issue", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{
		AccessToken: tok,
		ExpiresAt:   claims.ExpiresAt.Time.UTC(),
	})
}

// HandleSession echoes the session attached by the admin guard.
func (s *Server) HandleSession(w http.ResponseWriter, r *http.Request) {
	c, ok := ClaimsFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"subject":    c.Subject,
		"role":       c.Role,
		"expires_at": c.ExpiresAt.Time.UTC(),
	})
}
