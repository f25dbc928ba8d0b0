package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/buatanmy/discovery-backend/internal/application"
	"github.com/buatanmy/discovery-backend/pkg/response"
	"github.com/buatanmy/discovery-backend/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	Content   string `json:"content" binding:"required"`
	AuthorID  string `json:"author_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	comment, err := h.Svc.CreateComment(c.Request.Context(), application.CreateCommentInput{
		Content:   req.Content,
		AuthorID:  req.AuthorID,
		ProductID: req.ProductID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment created", nil)
}

func (h *CommentHandler) ListByProduct(c *gin.Context) {
	comments, err := h.Svc.ListCommentsByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments", nil)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	comment, err := h.Svc.UpdateComment(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment, "comment updated", nil)
}
