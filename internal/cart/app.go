package cart

import (
	"github.com/go-chi/chi/v5"

	"QKart/internal/auth"
)

// Mount registers the Bearer-protected cart routes on an existing router.
func (s *Server) Mount(r chi.Router, jwt *auth.TokenMaker) {
	r.Group(func(pr chi.Router) {
		pr.Use(AuthJWT(jwt))
		pr.Get("/cart", s.GetHandler())
		pr.Post("/cart", s.UpsertHandler())
	})
}
