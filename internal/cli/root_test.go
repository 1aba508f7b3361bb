package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"QKart/internal/auth"
	"QKart/internal/cart"
	"QKart/internal/catalog"
	"QKart/internal/gateway"
)

var cliProducts = []catalog.Product{
	{ID: "p1", Name: "Ball", Category: "Sports", Cost: 100, Rating: 5},
	{ID: "p2", Name: "iPhone XR", Category: "Phones", Cost: 250, Rating: 4},
}

func newTestAPI(t *testing.T) string {
	t.Helper()

	h, err := gateway.NewHandler(gateway.Deps{
		JWTSecret: "cli-test-secret",
		Users:     auth.NewMemStore(),
		Products:  catalog.NewMemStore(cliProducts),
		Carts:     cart.NewMemStore(),
	}, gateway.HTTPDeps{Log: zap.NewNop(), Service: "api"})
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts.URL
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	for _, k := range []string{"QKART_ENDPOINT", "QKART_TOKEN", "QKART_LOG_LEVEL", "QKART_REQUEST_TIMEOUT", "QKART_SEARCH_DELAY"} {
		t.Setenv(k, "")
	}

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func login(t *testing.T, endpoint string) string {
	t.Helper()

	out, err := run(t, "", "--endpoint", endpoint, "--format", "json", "login", "shopper1", "-p", "secret123", "--register")
	require.NoError(t, err)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "", "--format", "xml", "products")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestProducts_ListsCatalog(t *testing.T) {
	endpoint := newTestAPI(t)

	out, err := run(t, "", "--endpoint", endpoint, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "Ball")
	assert.Contains(t, out, "iPhone XR")
}

func TestSearch_WithArgs(t *testing.T) {
	endpoint := newTestAPI(t)

	out, err := run(t, "", "--endpoint", endpoint, "--format", "json", "search", "phones")
	require.NoError(t, err)

	var got []catalog.Product
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestSearch_StdinRunsLastQuery(t *testing.T) {
	endpoint := newTestAPI(t)

	out, err := run(t, "b\nba\nbal\n", "--endpoint", endpoint, "--format", "json", "search")
	require.NoError(t, err)

	var got []catalog.Product
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestCart_RequiresLogin(t *testing.T) {
	endpoint := newTestAPI(t)

	_, err := run(t, "", "--endpoint", endpoint, "cart")
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestAddAndSet_UpdateCart(t *testing.T) {
	endpoint := newTestAPI(t)
	token := login(t, endpoint)

	_, err := run(t, "", "--endpoint", endpoint, "--token", token, "add", "p1")
	require.NoError(t, err)

	_, err = run(t, "", "--endpoint", endpoint, "--token", token, "add", "p1")
	require.Error(t, err, "second add is a duplicate")

	out, err := run(t, "", "--endpoint", endpoint, "--token", token, "--format", "json", "set", "p1", "3")
	require.NoError(t, err)

	var view cartView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Qty)
	assert.Equal(t, 3, view.Count)
	assert.Equal(t, "300.00", view.Total)
}

func TestSet_RejectsBadQty(t *testing.T) {
	_, err := run(t, "", "set", "p1", "two")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid qty")
}
