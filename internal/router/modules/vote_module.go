package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/buatanmy/discovery-backend/internal/interface/http"
)

type VoteModule struct {
	handler    *handlers.VoteHandler
	writeLimit gin.HandlerFunc
}

func NewVoteModule(h *handlers.VoteHandler, writeLimit gin.HandlerFunc) *VoteModule {
	return &VoteModule{handler: h, writeLimit: writeLimit}
}

func (m *VoteModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/votes")
	g.POST("", m.writeLimit, m.handler.Create)
	g.DELETE("", m.writeLimit, m.handler.Delete)
}
