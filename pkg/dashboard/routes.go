package dashboard

import (
	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/store"
)

// RegisterRoutesWithGroup mounts the dashboard overview on g.
func RegisterRoutesWithGroup(g *echo.Group, client *catalog.Client, ebookStore *store.Store[models.Ebook], authorStore *store.Store[models.Author], categoryStore *store.Store[models.Category]) {
	h := &handler{
		client:        client,
		ebookStore:    ebookStore,
		authorStore:   authorStore,
		categoryStore: categoryStore,
	}

	g.GET("", h.overview)
}
