package categories

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
	"github.com/msubham193/buckinn-console/pkg/inflight"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/store"
	"github.com/pkg/errors"
)

type handler struct {
	client *catalog.Client
	store  *store.Store[models.Category]
	gate   inflight.Gate
}

func apiError(err error) error {
	apiErr := &catalog.Error{}
	if errors.As(err, &apiErr) {
		return errcodes.Upstream(apiErr.Message)
	}
	return errors.WithStack(err)
}

// list serves the category collection, fetching it from the catalog only the
// first time. Search filters the mirror in memory.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListCategoriesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if !h.store.Loaded() {
		fetched, err := h.client.ListCategories(ctx)
		if err != nil {
			return apiError(err)
		}
		h.store.ReplaceAll(fetched)
	}

	matches := h.store.Filter(func(cat models.Category) bool {
		return store.MatchesSearch(cat.Name, params.Search)
	})

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"categories": matches,
		"total":      len(matches),
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.gate.Enter() {
		return errcodes.Busy("Saving a category")
	}
	defer h.gate.Leave()

	params := CategoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	created, err := h.client.CreateCategory(ctx, catalog.CategoryUpload{
		Name:        params.Name,
		Description: params.Description,
	})
	if err != nil {
		return apiError(err)
	}

	h.store.Add(*created)

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{
		"message":  "Category created successfully",
		"category": created,
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, ok := h.store.Get(id); !ok {
		return errcodes.NotFound("Category")
	}

	if !h.gate.Enter() {
		return errcodes.Busy("Saving a category")
	}
	defer h.gate.Leave()

	params := CategoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.client.UpdateCategory(ctx, id, catalog.CategoryUpload{
		Name:        params.Name,
		Description: params.Description,
	})
	if err != nil {
		return apiError(err)
	}

	h.store.Update(id, models.CategoryPatch{
		Name:        &updated.Name,
		Description: &updated.Description,
	})

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message":  "Category updated successfully",
		"category": updated,
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, ok := h.store.Get(id); !ok {
		return errcodes.NotFound("Category")
	}

	if !h.gate.Enter() {
		return errcodes.Busy("Deleting a category")
	}
	defer h.gate.Leave()

	if err := h.client.DeleteCategory(ctx, id); err != nil {
		return apiError(err)
	}

	h.store.Remove(id)

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "Category deleted successfully",
	}))
}
