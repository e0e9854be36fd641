package catalog

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/pkg/kit"
)

type Server struct {
	Store   Store
	Loader  *Loader
	Log     *zap.Logger
	Metrics *Metrics

	validate *validator.Validate
	now      func() time.Time
}

func NewServer(store Store, log *zap.Logger, m *Metrics) *Server {
	return &Server{
		Store:    store,
		Loader:   &Loader{Store: store},
		Log:      log,
		Metrics:  m,
		validate: NewValidator(),
		now:      time.Now,
	}
}

func (s *Server) ProductRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.listProducts)
	r.Get("/{id}", s.getProduct)
	return r
}

func (s *Server) BrandRoutes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.listBrands)
	return r
}

// AdminBrandRoutes must be mounted behind the admin guard.
func (s *Server) AdminBrandRoutes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.createBrand)
	r.Put("/{id}", s.updateBrand)
	return r
}

// selectionFromQuery reads category, brand and q. brand_click mirrors the
// brand carousel and overrides the other parameters.
func selectionFromQuery(r *http.Request) Selection {
	q := r.URL.Query()
	if name := q.Get("brand_click"); name != "" {
		return BrandSelection(name)
	}
	return Selection{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Query:    q.Get("q"),
	}.Normalize()
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Loader.Load(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("load catalog failed", zap.Error(err))
		}
		if s.Metrics != nil {
			s.Metrics.LoadFailures.Inc()
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "catalog unavailable", nil)
		return
	}

	view := snap.View(selectionFromQuery(r))
	if s.Metrics != nil {
		s.Metrics.FilterResults.Observe(float64(view.Shown))
	}
	kit.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.GetProduct(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.Store.ListBrands(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list brands failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if brands == nil {
		brands = []Brand{}
	}
	kit.WriteJSON(w, http.StatusOK, brands)
}

func (s *Server) createBrand(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeBrand(w, r)
	if !ok {
		return
	}

	b := newBrand(in, s.now().UTC())
	if err := s.Store.CreateBrand(r.Context(), b); err != nil {
		s.writeBrandError(w, r, err, b.ID)
		return
	}

	if s.Log != nil {
		s.Log.Info("brand created",
			zap.String("id", b.ID),
			zap.String("slug", b.Slug),
			zap.String("admin", auth.Subject(r.Context())))
	}
	kit.WriteJSON(w, http.StatusCreated, b)
}

func (s *Server) updateBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, ok := s.decodeBrand(w, r)
	if !ok {
		return
	}

	b := newBrand(in, s.now().UTC())
	b.ID = id

	found, err := s.Store.UpdateBrand(r.Context(), b)
	if err != nil {
		s.writeBrandError(w, r, err, id)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	if s.Log != nil {
		s.Log.Info("brand updated",
			zap.String("id", id),
			zap.String("admin", auth.Subject(r.Context())))
	}
	kit.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) decodeBrand(w http.ResponseWriter, r *http.Request) (BrandInput, bool) {
	var in BrandInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return BrandInput{}, false
	}

	in, err := validateBrand(s.validate, in)
	if err != nil {
		var verr *BrandValidationError
		if errors.As(err, &verr) {
			kit.WriteError(w, r, http.StatusBadRequest, "invalid brand", verr.Fields)
			return BrandInput{}, false
		}
		kit.WriteError(w, r, http.StatusBadRequest, "invalid brand", nil)
		return BrandInput{}, false
	}
	return in, true
}

func (s *Server) writeBrandError(w http.ResponseWriter, r *http.Request, err error, id string) {
	if errors.Is(err, ErrBrandExists) {
		kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
		return
	}
	if s.Log != nil {
		s.Log.Error("brand write failed", zap.Error(err), zap.String("id", id))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
