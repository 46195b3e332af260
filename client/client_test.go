package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawonbufatim/storefront-server/src/models"
)

func newAPIStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_Login_StoresToken(t *testing.T) {
	server := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "admin", req["username"])

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Login successful",
			"data": map[string]interface{}{
				"token": "issued-token",
				"admin": map[string]interface{}{
					"id": 1, "username": "admin", "name": "Administrator", "email": "admin@pawonbufatim.com",
				},
			},
		})
	})

	c := New(server.URL)
	admin, err := c.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", admin.Name)
	assert.Equal(t, "issued-token", c.Token())
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	server := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"error":   "Invalid credentials",
		})
	})

	c := New(server.URL)
	_, err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Empty(t, c.Token())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    []models.Category{},
		})
	})

	c := New(server.URL, WithToken("stored-token"))
	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer stored-token", gotAuth)
}

func TestClient_Verify_DropsTokenOnFailure(t *testing.T) {
	server := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"success": false,
			"error":   "Invalid or expired token",
		})
	})

	c := New(server.URL, WithToken("expired-token"))
	_, err := c.Verify(context.Background())
	require.Error(t, err)
	assert.Empty(t, c.Token(), "failed verification must clear the stored token")
}

func TestClient_NewSession(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		c := New("http://unused.invalid")
		session := c.NewSession(context.Background())
		assert.False(t, session.Authenticated)
		assert.Nil(t, session.Admin)
	})

	t.Run("valid token", func(t *testing.T) {
		server := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/admin/verify", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"id": 1, "username": "admin", "role": "admin"},
			})
		})

		c := New(server.URL, WithToken("stored-token"))
		session := c.NewSession(context.Background())
		require.True(t, session.Authenticated)
		assert.Equal(t, "admin", session.Admin.Username)
	})
}

func TestClient_ListProducts(t *testing.T) {
	server := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("category_id"))
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": []models.Product{
				{ID: 21, Name: "Tekwan", Price: 40000},
			},
			"pagination": models.Pagination{Page: 3, Limit: 10, Total: 21, Pages: 3},
		})
	})

	c := New(server.URL)
	categoryID := 2
	products, pagination, err := c.ListProducts(context.Background(), ListProductsOptions{
		CategoryID: &categoryID,
		Page:       3,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tekwan", products[0].Name)
	assert.Equal(t, 3, pagination.Pages)
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	server := newAPIStub(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   "Product not found",
		})
	})

	c := New(server.URL)
	_, err := c.GetProduct(context.Background(), 99)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_ImageURL(t *testing.T) {
	c := New("http://shop.example")
	stored := "/uploads/image-123-abcd.png"
	bare := "image-123-abcd.png"
	absolute := "https://cdn.example/pic.png"
	empty := ""

	assert.Equal(t, PlaceholderImage, c.ImageURL(nil))
	assert.Equal(t, PlaceholderImage, c.ImageURL(&empty))
	assert.Equal(t, "http://shop.example/uploads/image-123-abcd.png", c.ImageURL(&stored))
	assert.Equal(t, "http://shop.example/uploads/image-123-abcd.png", c.ImageURL(&bare))
	assert.Equal(t, absolute, c.ImageURL(&absolute))
}
