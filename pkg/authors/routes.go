package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/store"
)

// RegisterRoutesWithGroup registers author page routes on a pre-configured
// (session-guarded) group.
func RegisterRoutesWithGroup(g *echo.Group, client *catalog.Client, st *store.Store[models.Author]) {
	h := &handler{
		client: client,
		store:  st,
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}
