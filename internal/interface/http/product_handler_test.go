package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buatanmy/discovery-backend/internal/application"
	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	"github.com/buatanmy/discovery-backend/internal/infrastructure/memory"
	"github.com/buatanmy/discovery-backend/pkg/validation"
)

func newProductRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := memory.NewStore()
	svc := application.NewProductService(store.Products(), store.Users(), nil, nil, "")
	h := NewProductHandler(svc, nil)

	r := gin.New()
	g := r.Group("/api/products")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/trending", h.ListTrending)
	g.GET("/by-location", h.ListByLocation)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	return r, store
}

func seedAuthor(t *testing.T, store *memory.Store) *entity.User {
	t.Helper()
	u := &entity.User{ID: "author-1", Name: "Aina", Email: "aina@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProductEndpoint(t *testing.T) {
	r, store := newProductRouter(t)
	seedAuthor(t, store)

	w := doJSON(r, http.MethodPost, "/api/products", `{
		"title": "KopiKita",
		"description": "Local coffee subscription",
		"url": "https://kopikita.example.com",
		"tags": ["coffee"],
		"author_id": "author-1"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID         string `json:"id"`
			IsMadeInMY bool   `json:"is_made_in_my"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.ID)
	assert.True(t, body.Data.IsMadeInMY)
}

func TestCreateProductValidation(t *testing.T) {
	r, store := newProductRouter(t)
	seedAuthor(t, store)

	w := doJSON(r, http.MethodPost, "/api/products", `{"description": "d", "url": "not-a-url", "author_id": "author-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductUnknownAuthor(t *testing.T) {
	r, _ := newProductRouter(t)

	w := doJSON(r, http.MethodPost, "/api/products", `{
		"title": "x", "description": "d", "url": "https://x.example.com", "author_id": "ghost"
	}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductAbsentReturnsNullData(t *testing.T) {
	r, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["data"])
}

func TestUpdateProductRejectsNullTitle(t *testing.T) {
	r, store := newProductRouter(t)
	seedAuthor(t, store)

	created := doJSON(r, http.MethodPost, "/api/products", `{
		"title": "x", "description": "d", "url": "https://x.example.com", "author_id": "author-1"
	}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var body struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))

	w := doJSON(r, http.MethodPut, "/api/products/"+body.Data.ID, `{"title": null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductMissing(t *testing.T) {
	r, _ := newProductRouter(t)

	w := doJSON(r, http.MethodPut, "/api/products/nope", `{"title": "y"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrendingUnknownTimeframe(t *testing.T) {
	r, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/trending?timeframe=hourly", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListByLocationRequiresQuery(t *testing.T) {
	r, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/by-location", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
