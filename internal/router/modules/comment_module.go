package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/buatanmy/discovery-backend/internal/interface/http"
)

type CommentModule struct {
	handler    *handlers.CommentHandler
	writeLimit gin.HandlerFunc
}

func NewCommentModule(h *handlers.CommentHandler, writeLimit gin.HandlerFunc) *CommentModule {
	return &CommentModule{handler: h, writeLimit: writeLimit}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/comments")
	g.POST("", m.writeLimit, m.handler.Create)
	g.PUT("/:id", m.writeLimit, m.handler.Update)
}
