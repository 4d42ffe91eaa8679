package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func tagger(tag string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/users/{id}", "users.show", ok)
	r.Post("/users", "users.store", ok)

	path, found := r.Path("users.show")
	require.True(t, found)
	assert.Equal(t, "/users/{id}", path)

	_, found = r.Path("users.missing")
	assert.False(t, found)

	url, err := r.URL("users.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/users/42", url)

	_, err = r.URL("users.show", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndTrailingSlashes(t *testing.T) {
	r := router.New()

	api := r.Group("/api/")
	orders := api.Group("orders")
	orders.Get("/", "orders.index", ok)
	orders.Get("/recent/", "orders.recent", ok)

	path, _ := r.Path("orders.index")
	assert.Equal(t, "/api/orders", path)
	path, _ = r.Path("orders.recent")
	assert.Equal(t, "/api/orders/recent", path)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareOrder(t *testing.T) {
	r := router.New()

	group := r.Group("/admin", tagger("group"))
	group.Get("/panel", "admin.panel", ok, tagger("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/panel", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	// Group middleware wraps route middleware.
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Chain"))
}

func TestMethodsAreDistinct(t *testing.T) {
	r := router.New()
	r.Get("/thing", "thing.get", ok)
	r.Delete("/thing", "thing.delete", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/thing", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/thing", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutesListingSorted(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.store", ok)
	r.Get("/a", "a.index", ok)
	r.Get("/b", "b.index", ok)

	infos := r.Routes()
	require.Len(t, infos, 3)
	assert.Equal(t, "/a", infos[0].Path)
	assert.Equal(t, http.MethodGet, infos[1].Method)
	assert.Equal(t, http.MethodPost, infos[2].Method)
}
