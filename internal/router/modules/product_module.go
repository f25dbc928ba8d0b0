package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/buatanmy/discovery-backend/internal/interface/http"
)

type ProductModule struct {
	products   *handlers.ProductHandler
	comments   *handlers.CommentHandler
	writeLimit gin.HandlerFunc
}

func NewProductModule(p *handlers.ProductHandler, c *handlers.CommentHandler, writeLimit gin.HandlerFunc) *ProductModule {
	return &ProductModule{products: p, comments: c, writeLimit: writeLimit}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/products")
	g.POST("", m.writeLimit, m.products.Create)
	g.GET("", m.products.List)
	g.GET("/search", m.products.Search)
	g.GET("/with-votes", m.products.ListWithVotes)
	g.GET("/trending", m.products.ListTrending)
	g.GET("/by-location", m.products.ListByLocation)
	g.GET("/by-tags", m.products.ListByTags)
	g.GET("/by-author/:id", m.products.ListByAuthor)
	g.GET("/:id", m.products.GetByID)
	g.PUT("/:id", m.writeLimit, m.products.Update)
	g.GET("/:id/comments", m.comments.ListByProduct)
}
