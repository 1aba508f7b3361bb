package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QKart/internal/cart"
	"QKart/internal/catalog"
)

func newStub(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", 2*time.Second)
}

func TestClient_SearchSendsValueAndDecodes(t *testing.T) {
	want := []catalog.Product{{ID: "p1", Name: "Ball", Category: "Sports", Cost: 10, Rating: 4}}

	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "ba ll", r.URL.Query().Get("value"))
		_ = json.NewEncoder(w).Encode(want)
	})

	got, err := c.Search(context.Background(), "ba ll")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("products mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_NotFoundIsErrNotFound(t *testing.T) {
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Search(context.Background(), "zzz")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_StatusErrorCarriesServerMessage(t *testing.T) {
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Product doesn't exist"}`))
	})

	_, err := c.SetCartItem(context.Background(), "tok", "nope", 1)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "Product doesn't exist", se.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestClient_SetCartItemSendsBearerAndBody(t *testing.T) {
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var rec cart.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		assert.Equal(t, cart.Record{ProductID: "p1", Qty: 3}, rec)

		_ = json.NewEncoder(w).Encode([]cart.Record{rec})
	})

	got, err := c.SetCartItem(context.Background(), "tok", "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, []cart.Record{{ProductID: "p1", Qty: 3}}, got)
}

func TestClient_BadJSONIsErrBadResponse(t *testing.T) {
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := c.Products(context.Background())
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_UnreachableIsErrUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, time.Second).Products(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
