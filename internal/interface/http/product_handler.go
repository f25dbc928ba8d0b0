package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/buatanmy/discovery-backend/internal/application"
	"github.com/buatanmy/discovery-backend/pkg/patch"
	"github.com/buatanmy/discovery-backend/pkg/response"
	"github.com/buatanmy/discovery-backend/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	URL         string   `json:"url" binding:"required,url"`
	Tags        []string `json:"tags"`
	Location    *string  `json:"location"`
	IsMadeInMY  *bool    `json:"is_made_in_my"`
	AuthorID    string   `json:"author_id" binding:"required"`
}

type updateProductRequest struct {
	Title       patch.Field[string]   `json:"title"`
	Description patch.Field[string]   `json:"description"`
	URL         patch.Field[string]   `json:"url"`
	Tags        patch.Field[[]string] `json:"tags"`
	Location    patch.Field[string]   `json:"location"`
	IsMadeInMY  patch.Field[bool]     `json:"is_made_in_my"`
}

func (r *updateProductRequest) validate() map[string]string {
	for field, f := range map[string]patch.Field[string]{
		"title":       r.Title,
		"description": r.Description,
		"url":         r.URL,
	} {
		if f.IsNull() {
			return map[string]string{field: "must not be null"}
		}
		if v, ok := f.Get(); ok && v == "" {
			return map[string]string{field: "is required"}
		}
	}
	if r.Tags.IsNull() || r.IsMadeInMY.IsNull() {
		return map[string]string{"payload": "tags and is_made_in_my must not be null"}
	}
	return nil
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	p, err := h.Svc.CreateProduct(c.Request.Context(), application.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Tags:        req.Tags,
		Location:    req.Location,
		IsMadeInMY:  req.IsMadeInMY,
		AuthorID:    req.AuthorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	p, err := h.Svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

func (h *ProductHandler) ListByLocation(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"location": "is required"})
		return
	}
	products, err := h.Svc.ListProductsByLocation(c.Request.Context(), location)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductHandler) ListByTags(c *gin.Context) {
	// No tags means no filter; all qualifying products come back.
	products, err := h.Svc.ListProductsByTags(c.Request.Context(), c.QueryArray("tags"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductHandler) ListByAuthor(c *gin.Context) {
	products, err := h.Svc.ListProductsByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if details := req.validate(); details != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}

	p, err := h.Svc.UpdateProduct(c.Request.Context(), c.Param("id"), application.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Tags:        req.Tags,
		Location:    req.Location,
		IsMadeInMY:  req.IsMadeInMY,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

func (h *ProductHandler) ListWithVotes(c *gin.Context) {
	var viewerID *string
	if v := c.Query("user_id"); v != "" {
		viewerID = &v
	}
	products, err := h.Svc.ListProductsWithVotes(c.Request.Context(), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "products with votes", nil)
}

func (h *ProductHandler) ListTrending(c *gin.Context) {
	products, err := h.Svc.ListTrendingProducts(c.Request.Context(), c.Query("timeframe"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products, "trending products", nil)
}

func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
