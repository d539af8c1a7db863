package http_test

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-starter/framework/http"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newJSONRequest(t *testing.T, body string) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return gohttp.NewRequest(req)
}

func newFormRequest(t *testing.T, values url.Values) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return gohttp.NewRequest(req)
}

func newGetRequest(t *testing.T, rawQuery string) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return gohttp.NewRequest(req)
}

// ── Bind ─────────────────────────────────────────────────────────────────────

func TestRequest_BindJSON(t *testing.T) {
	type user struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	var u user
	require.NoError(t, newJSONRequest(t, `{"name":"Alice","email":"alice@example.com"}`).Bind(&u))
	assert.Equal(t, user{Name: "Alice", Email: "alice@example.com"}, u)
}

func TestRequest_BindJSON_Errors(t *testing.T) {
	var v map[string]any
	assert.Error(t, newJSONRequest(t, ``).Bind(&v), "empty body")
	assert.Error(t, newJSONRequest(t, `{bad json}`).Bind(&v), "invalid json")
}

func TestRequest_BindForm(t *testing.T) {
	var p struct {
		Name string `json:"name"`
	}
	require.NoError(t, newFormRequest(t, url.Values{"name": {"Bob"}}).Bind(&p))
	assert.Equal(t, "Bob", p.Name)
}

// ── Input / Query ─────────────────────────────────────────────────────────────

func TestRequest_Input(t *testing.T) {
	req := newFormRequest(t, url.Values{"username": {"charlie"}})
	assert.Equal(t, "charlie", req.Input("username"))
	assert.Equal(t, "default", newGetRequest(t, "").Input("missing", "default"))
}

func TestRequest_Query(t *testing.T) {
	req := newGetRequest(t, "page=2&limit=10")
	assert.Equal(t, "2", req.Query("page"))
	assert.Equal(t, "10", req.Query("limit"))
	assert.Equal(t, "1", req.Query("missing", "1"))
}

// ── Headers / Auth ────────────────────────────────────────────────────────────

func TestRequest_BearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, gohttp.NewRequest(r).BearerToken())

	r.Header.Set("Authorization", "Bearer my-secret-token")
	req := gohttp.NewRequest(r)
	assert.Equal(t, "my-secret-token", req.BearerToken())
	assert.Equal(t, "Bearer my-secret-token", req.Header("Authorization"))
}

func TestRequest_IsJSON(t *testing.T) {
	assert.True(t, newJSONRequest(t, `{}`).IsJSON())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, gohttp.NewRequest(r).IsJSON())
	r.Header.Set("Accept", "application/json")
	assert.True(t, gohttp.NewRequest(r).IsJSON())
}

// ── Routing view ─────────────────────────────────────────────────────────────

func TestRequest_MethodPathHost(t *testing.T) {
	r := httptest.NewRequest(http.MethodDelete, "http://api.example.com:8080/resource/1?x=1", nil)
	req := gohttp.NewRequest(r)

	assert.Equal(t, http.MethodDelete, req.Method())
	assert.Equal(t, "/resource/1", req.Path())
	assert.Equal(t, "api.example.com:8080", req.Host())
}

func TestRequest_PathKeepsEncodedSlash(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/users/a%2Fb", nil))

	assert.Equal(t, "/users/a%2Fb", req.Path())
}

func TestRequest_IP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:53211"
	assert.Equal(t, "10.0.0.7", gohttp.NewRequest(r).IP())

	r.RemoteAddr = "10.0.0.8"
	assert.Equal(t, "10.0.0.8", gohttp.NewRequest(r).IP(), "address without port is kept")
}

func TestRequest_Scheme(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "http", gohttp.NewRequest(r).Scheme())

	r.Header.Set("X-Forwarded-Proto", "HTTPS")
	assert.Equal(t, "https", gohttp.NewRequest(r).Scheme())

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https", gohttp.NewRequest(r).Scheme())
}
