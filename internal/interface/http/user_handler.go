package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/buatanmy/discovery-backend/internal/application"
	"github.com/buatanmy/discovery-backend/pkg/patch"
	"github.com/buatanmy/discovery-backend/pkg/response"
	"github.com/buatanmy/discovery-backend/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Location  *string `json:"location"`
}

type updateUserRequest struct {
	Name      patch.Field[string] `json:"name"`
	AvatarURL patch.Field[string] `json:"avatar_url"`
	Location  patch.Field[string] `json:"location"`
}

// validate rejects what binding tags cannot see inside tri-state fields:
// null or empty for non-nullable name.
func (r *updateUserRequest) validate() map[string]string {
	if r.Name.IsNull() {
		return map[string]string{"name": "must not be null"}
	}
	if v, ok := r.Name.Get(); ok && v == "" {
		return map[string]string{"name": "is required"}
	}
	return nil
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.CreateUser(c.Request.Context(), application.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Location:  req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	// Reads never 404; an absent user is a null payload.
	response.Success(c, http.StatusOK, u, "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if details := req.validate(); details != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}

	u, err := h.Svc.UpdateUser(c.Request.Context(), c.Param("id"), application.UpdateUserInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Location:  req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.Param("id"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}
