package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/buatanmy/discovery-backend/internal/interface/http"
)

type UserModule struct {
	handler    *handlers.UserHandler
	writeLimit gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, writeLimit gin.HandlerFunc) *UserModule {
	return &UserModule{handler: h, writeLimit: writeLimit}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.POST("", m.writeLimit, m.handler.Create)
	g.GET("/:id", m.handler.GetByID)
	g.PUT("/:id", m.writeLimit, m.handler.Update)
	g.POST("/:id/avatar", m.writeLimit, m.handler.UploadAvatar)
}
