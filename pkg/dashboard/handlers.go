package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/store"
	"github.com/pkg/errors"
)

type handler struct {
	client        *catalog.Client
	ebookStore    *store.Store[models.Ebook]
	authorStore   *store.Store[models.Author]
	categoryStore *store.Store[models.Category]
}

func apiError(err error) error {
	apiErr := &catalog.Error{}
	if errors.As(err, &apiErr) {
		return errcodes.Upstream(apiErr.Message)
	}
	return errors.WithStack(err)
}

// overview aggregates catalog totals for the landing page. Each collection is
// fetched on first use and served from the in-memory mirror afterwards.
func (h *handler) overview(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.ebookStore.Loaded() {
		fetched, err := h.client.ListBooks(ctx)
		if err != nil {
			return apiError(err)
		}
		h.ebookStore.ReplaceAll(fetched)
	}
	if !h.authorStore.Loaded() {
		fetched, err := h.client.ListAuthors(ctx)
		if err != nil {
			return apiError(err)
		}
		h.authorStore.ReplaceAll(fetched)
	}
	if !h.categoryStore.Loaded() {
		fetched, err := h.client.ListCategories(ctx)
		if err != nil {
			return apiError(err)
		}
		h.categoryStore.ReplaceAll(fetched)
	}

	statusCounts := map[string]int{}
	for _, status := range models.ContentStatuses {
		statusCounts[status] = 0
	}

	totalChapters := 0
	for _, book := range h.ebookStore.List() {
		statusCounts[book.ContentStatus]++
		totalChapters += len(book.Chapters)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"totalBooks":      h.ebookStore.Len(),
		"totalAuthors":    h.authorStore.Len(),
		"totalCategories": h.categoryStore.Len(),
		"totalChapters":   totalChapters,
		"booksByStatus":   statusCounts,
	}))
}
