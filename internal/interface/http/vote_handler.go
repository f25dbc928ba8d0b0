package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/buatanmy/discovery-backend/internal/application"
	"github.com/buatanmy/discovery-backend/pkg/response"
	"github.com/buatanmy/discovery-backend/pkg/validation"
)

type VoteHandler struct {
	Svc    *application.VoteService
	Logger *logrus.Logger
}

func NewVoteHandler(svc *application.VoteService, logger *logrus.Logger) *VoteHandler {
	return &VoteHandler{Svc: svc, Logger: logger}
}

type voteRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
}

func (h *VoteHandler) Create(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	v, err := h.Svc.CreateVote(c.Request.Context(), application.CreateVoteInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "vote created", nil)
}

func (h *VoteHandler) Delete(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	deleted, err := h.Svc.DeleteVote(c.Request.Context(), req.UserID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	// Deleting an absent vote is an idempotent no-op, reported as deleted=false.
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted}, "vote retracted", nil)
}
