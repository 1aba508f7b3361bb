package gateway_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"QKart/internal/auth"
	"QKart/internal/cart"
	"QKart/internal/catalog"
	"QKart/internal/gateway"
	"QKart/pkg/kit"
)

const jwtSecret = "test-secret"

func newAPITS(t *testing.T, httpDeps gateway.HTTPDeps) *httptest.Server {
	t.Helper()

	products := catalog.NewStore()
	h, err := gateway.NewHandler(
		gateway.Deps{
			JWTSecret: jwtSecret,
			Users:     auth.NewStore(),
			Products:  products,
			Carts:     cart.NewStore(),
		},
		httpDeps,
	)
	if err != nil {
		t.Fatalf("gateway.NewHandler: %v", err)
	}

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, c *http.Client, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func registerAndLogin(t *testing.T, c *http.Client, baseURL string) string {
	t.Helper()

	creds := map[string]any{"username": "crio.do", "password": "learnbydoing"}

	resp, raw := doJSON(t, c, http.MethodPost, baseURL+"/auth/register", creds, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, c, http.MethodPost, baseURL+"/auth/login", creds, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("login status=%d body=%s", resp.StatusCode, string(raw))
	}

	var lr struct {
		Success  bool   `json:"success"`
		Token    string `json:"token"`
		Username string `json:"username"`
		Balance  int64  `json:"balance"`
	}
	if err := json.Unmarshal(raw, &lr); err != nil {
		t.Fatalf("decode login: %v body=%s", err, string(raw))
	}
	if !lr.Success || lr.Token == "" {
		t.Fatalf("bad login reply: %s", string(raw))
	}
	if lr.Username != "crio.do" {
		t.Fatalf("username=%q", lr.Username)
	}
	if lr.Balance != auth.DefaultBalance {
		t.Fatalf("balance=%d want=%d", lr.Balance, auth.DefaultBalance)
	}
	return lr.Token
}

func decodeCart(t *testing.T, raw []byte) []cart.Record {
	t.Helper()

	var recs []cart.Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		t.Fatalf("decode cart: %v body=%s", err, string(raw))
	}
	return recs
}

func TestAPI_CartHappyPath(t *testing.T) {
	ts := newAPITS(t, gateway.HTTPDeps{Log: zap.NewNop(), Service: "api"})
	c := &http.Client{}

	token := registerAndLogin(t, c, ts.URL)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	var products []catalog.Product
	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/products", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("products status=%d", resp.StatusCode)
		}
		if err := json.Unmarshal(raw, &products); err != nil {
			t.Fatalf("decode products: %v", err)
		}
		if len(products) < 2 {
			t.Fatalf("expected seeded products, got %d", len(products))
		}
	}

	p1, p2 := products[0].ID, products[1].ID

	{
		resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/cart", map[string]any{"productId": p1, "qty": 2}, bearer)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
		}
		resp, raw = doJSON(t, c, http.MethodPost, ts.URL+"/cart", map[string]any{"productId": p2, "qty": 1}, bearer)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	// Quantity is replaced, not added.
	{
		resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/cart", map[string]any{"productId": p1, "qty": 5}, bearer)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("update status=%d body=%s", resp.StatusCode, string(raw))
		}
		recs := decodeCart(t, raw)
		if len(recs) != 2 || recs[0].ProductID != p1 || recs[0].Qty != 5 {
			t.Fatalf("cart after update=%+v", recs)
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/cart", map[string]any{"productId": p1, "qty": 0}, bearer)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("remove status=%d body=%s", resp.StatusCode, string(raw))
		}
	}

	{
		resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/cart", nil, bearer)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("get cart status=%d body=%s", resp.StatusCode, string(raw))
		}
		recs := decodeCart(t, raw)
		if len(recs) != 1 || recs[0].ProductID != p2 || recs[0].Qty != 1 {
			t.Fatalf("cart=%+v", recs)
		}
	}
}

func TestAPI_CartRequiresAuth(t *testing.T) {
	ts := newAPITS(t, gateway.HTTPDeps{Log: zap.NewNop(), Service: "api"})
	c := &http.Client{}

	resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/cart", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, c, http.MethodPost, ts.URL+"/cart", map[string]any{"productId": "x", "qty": 1}, map[string]string{
		"Authorization": "Bearer not-a-jwt",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}
	msg, _ := kit.ReadAPIError(bytes.NewReader(raw))
	if msg != "Invalid or expired token" {
		t.Fatalf("message=%q", msg)
	}
}

func TestAPI_CartRejectsBadUpserts(t *testing.T) {
	ts := newAPITS(t, gateway.HTTPDeps{Log: zap.NewNop(), Service: "api"})
	c := &http.Client{}
	bearer := map[string]string{"Authorization": "Bearer " + registerAndLogin(t, c, ts.URL)}

	cases := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"unknown product", map[string]any{"productId": "nope", "qty": 1}, "Product doesn't exist"},
		{"negative qty", map[string]any{"productId": "upLK9JbQ4rMhTwt4", "qty": -1}, "qty must not be negative"},
		{"missing qty", map[string]any{"productId": "upLK9JbQ4rMhTwt4"}, "qty is required"},
		{"missing product", map[string]any{"qty": 1}, "productId is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/cart", tc.body, bearer)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
			}
			msg, _ := kit.ReadAPIError(bytes.NewReader(raw))
			if msg != tc.msg {
				t.Fatalf("message=%q want=%q", msg, tc.msg)
			}
		})
	}
}

func TestAPI_Search(t *testing.T) {
	ts := newAPITS(t, gateway.HTTPDeps{Log: zap.NewNop(), Service: "api"})
	c := &http.Client{}

	resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/products/search?value=SPORTS", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}
	var got []catalog.Product
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches=%d want=2", len(got))
	}

	resp, raw = doJSON(t, c, http.MethodGet, ts.URL+"/products/search?value=zzzz", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want=404", resp.StatusCode)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty body, got %s", string(raw))
	}
}

func TestAPI_RegisterValidation(t *testing.T) {
	ts := newAPITS(t, gateway.HTTPDeps{Log: zap.NewNop(), Service: "api"})
	c := &http.Client{}

	resp, raw := doJSON(t, c, http.MethodPost, ts.URL+"/auth/register", map[string]any{
		"username": "abc",
		"password": "learnbydoing",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if msg, _ := kit.ReadAPIError(bytes.NewReader(raw)); msg != "Username must be at least 6 characters" {
		t.Fatalf("message=%q", msg)
	}

	registerAndLogin(t, c, ts.URL)

	resp, raw = doJSON(t, c, http.MethodPost, ts.URL+"/auth/register", map[string]any{
		"username": "crio.do",
		"password": "learnbydoing",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if msg, _ := kit.ReadAPIError(bytes.NewReader(raw)); msg != "Username is already taken" {
		t.Fatalf("message=%q", msg)
	}
}

func TestAPI_MetricsRequireToken(t *testing.T) {
	ts := newAPITS(t, gateway.HTTPDeps{
		Log:            zap.NewNop(),
		Service:        "api",
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   "scrape-me",
	})
	c := &http.Client{}

	doJSON(t, c, http.MethodGet, ts.URL+"/products", nil, nil)

	resp, _ := doJSON(t, c, http.MethodGet, ts.URL+"/metrics", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unauthenticated metrics status=%d", resp.StatusCode)
	}

	resp, raw := doJSON(t, c, http.MethodGet, ts.URL+"/metrics", nil, map[string]string{
		"Authorization": "Bearer scrape-me",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status=%d", resp.StatusCode)
	}
	if !bytes.Contains(raw, []byte("qkart_http_requests_total")) {
		t.Fatalf("missing request counter in metrics output")
	}
}

func TestAPI_Probes(t *testing.T) {
	ts := newAPITS(t, gateway.HTTPDeps{Log: zap.NewNop(), Service: "api"})
	c := &http.Client{}

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, _ := doJSON(t, c, http.MethodGet, ts.URL+path, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status=%d", path, resp.StatusCode)
		}
	}
}

func TestNewHandler_RequiresSecretAndStores(t *testing.T) {
	if _, err := gateway.NewHandler(gateway.Deps{}, gateway.HTTPDeps{}); err == nil {
		t.Fatalf("expected error without JWT secret")
	}
	if _, err := gateway.NewHandler(gateway.Deps{JWTSecret: jwtSecret}, gateway.HTTPDeps{}); err == nil {
		t.Fatalf("expected error without stores")
	}
}
