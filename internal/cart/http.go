package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"QKart/internal/catalog"
	"QKart/pkg/kit"
)

const maxUpsertBody = 1 << 20

// ProductLookup is the slice of the catalog the cart service needs.
type ProductLookup interface {
	Get(ctx context.Context, id string) (catalog.Product, bool, error)
}

type Server struct {
	Store    Store
	Products ProductLookup
	Log      *zap.Logger
}

type upsertReq struct {
	ProductID string `json:"productId"`
	Qty       *int   `json:"qty"`
}

func (s *Server) GetHandler() http.HandlerFunc    { return s.get }
func (s *Server) UpsertHandler() http.HandlerFunc { return s.upsert }

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
		return
	}

	recs, err := s.Store.Get(r.Context(), u.ID)
	if err != nil {
		s.log().Error("store get cart failed", zap.Error(err), zap.String("user_id", u.ID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteJSON(w, http.StatusOK, recs)
}

// upsert replaces the product's quantity rather than adding to it.
func (s *Server) upsert(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
		return
	}

	req, err := decodeUpsertRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json")
		return
	}

	pid := strings.TrimSpace(req.ProductID)
	switch {
	case pid == "":
		kit.WriteError(w, r, http.StatusBadRequest, "productId is required")
		return
	case req.Qty == nil:
		kit.WriteError(w, r, http.StatusBadRequest, "qty is required")
		return
	case *req.Qty < 0:
		kit.WriteError(w, r, http.StatusBadRequest, "qty must not be negative")
		return
	}

	// Removing a product that has since left the catalog is still allowed.
	if *req.Qty > 0 {
		_, found, err := s.Products.Get(r.Context(), pid)
		if err != nil {
			s.log().Error("product lookup failed", zap.Error(err), zap.String("product_id", pid))
			kit.WriteError(w, r, http.StatusInternalServerError, "server error")
			return
		}
		if !found {
			kit.WriteError(w, r, http.StatusBadRequest, "Product doesn't exist")
			return
		}
	}

	recs, err := s.Store.Set(r.Context(), u.ID, pid, *req.Qty)
	if err != nil {
		if errors.Is(err, ErrBadQty) {
			kit.WriteError(w, r, http.StatusBadRequest, "qty must not be negative")
			return
		}
		s.log().Error("store set cart failed", zap.Error(err), zap.String("user_id", u.ID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	kit.WriteJSON(w, http.StatusOK, recs)
}

func decodeUpsertRequest(w http.ResponseWriter, r *http.Request) (upsertReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpsertBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req upsertReq
	if err := dec.Decode(&req); err != nil {
		return upsertReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return upsertReq{}, errors.New("extra data after json object")
	}

	return req, nil
}

func (s *Server) log() *zap.Logger { return kit.OrNop(s.Log) }
