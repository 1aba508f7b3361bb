package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"QKart/pkg/kit"
)

const serverErrorMsg = "Something went wrong. Check the backend console for more details"

type Server struct {
	Store Store
	Log   *zap.Logger
}

// Mount registers the product routes on an existing router.
func (s *Server) Mount(r chi.Router) {
	r.Get("/products", s.list)
	r.Get("/products/search", s.search)
	r.Get("/products/{id}", s.get)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.log().Error("list products failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, serverErrorMsg)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

// search answers 404 without a body when nothing matches.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")

	products, err := s.Store.Search(r.Context(), value)
	if err != nil {
		s.log().Error("search products failed", zap.Error(err), zap.String("value", value))
		kit.WriteError(w, r, http.StatusInternalServerError, serverErrorMsg)
		return
	}
	if len(products) == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.log().Error("get product failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, serverErrorMsg)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) log() *zap.Logger { return kit.OrNop(s.Log) }
