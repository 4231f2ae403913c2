package ebooks

import (
	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/store"
)

// RegisterRoutesWithGroup mounts the ebook page operations on g.
func RegisterRoutesWithGroup(g *echo.Group, client *catalog.Client, ebookStore *store.Store[models.Ebook], authorStore *store.Store[models.Author], categoryStore *store.Store[models.Category]) {
	h := &handler{
		client:        client,
		store:         ebookStore,
		authorStore:   authorStore,
		categoryStore: categoryStore,
	}

	g.GET("", h.list)
	g.GET("/options", h.options)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}
