package settings

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/pkg/kit"
)

type Server struct {
	Service *Service
	Log     *zap.Logger
}

// AdminRoutes must be mounted behind the admin guard.
func (s *Server) AdminRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.list)
	r.Put("/", s.put)
	return r
}

func (s *Server) PublicRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/public", s.list)
	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	pairs, err := s.Service.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("settings read failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, pairs)
}

type putReq struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

func (s *Server) put(w http.ResponseWriter, r *http.Request) {
	var req putReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	err := s.Service.Set(r.Context(), req.Key, req.Value)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidArgument):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	default:
		if s.Log != nil {
			s.Log.Error("settings write failed", zap.Error(err), zap.String("key", req.Key))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Info("setting updated",
			zap.String("key", req.Key),
			zap.String("admin", auth.Subject(r.Context())))
	}
	kit.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
