package ebooks

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/categories"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
	"github.com/msubham193/buckinn-console/pkg/forms"
	"github.com/msubham193/buckinn-console/pkg/inflight"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/store"
	"github.com/pkg/errors"
)

type handler struct {
	client        *catalog.Client
	store         *store.Store[models.Ebook]
	authorStore   *store.Store[models.Author]
	categoryStore *store.Store[models.Category]
	gate          inflight.Gate
}

func apiError(err error) error {
	apiErr := &catalog.Error{}
	if errors.As(err, &apiErr) {
		return errcodes.Upstream(apiErr.Message)
	}
	return errors.WithStack(err)
}

// list serves the ebook collection, fetching it from the catalog only the
// first time. Search filters the mirror in memory by title.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListEbooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if !h.store.Loaded() {
		fetched, err := h.client.ListBooks(ctx)
		if err != nil {
			return apiError(err)
		}
		h.store.ReplaceAll(fetched)
	}

	matches := h.store.Filter(func(e models.Ebook) bool {
		return store.MatchesSearch(e.Title, params.Search)
	})

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"books": matches,
		"total": len(matches),
	}))
}

// options supplies the ebook form's select choices: author references,
// category references, and the valid content statuses. The static category
// list stands in while the server-backed collection is empty.
func (h *handler) options(c echo.Context) error {
	ctx := c.Request().Context()

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

	authorRefs := []models.AuthorRef{}
	for _, a := range h.authorStore.List() {
		authorRefs = append(authorRefs, models.AuthorRef{ID: a.ID, Name: a.Name})
	}

	categoryRefs := []models.CategoryRef{}
	for _, cat := range h.selectableCategories() {
		categoryRefs = append(categoryRefs, models.CategoryRef{ID: cat.ID, Name: cat.Name})
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"authors":         authorRefs,
		"categories":      categoryRefs,
		"contentStatuses": models.ContentStatuses,
	}))
}

func (h *handler) selectableCategories() []models.Category {
	if h.categoryStore.Len() == 0 {
		return categories.Fallback()
	}
	return h.categoryStore.List()
}

// resolveCategories maps selected identifiers to denormalized id+name pairs
// before submission.
func (h *handler) resolveCategories(ids []string) ([]models.CategoryRef, error) {
	selectable := map[string]models.Category{}
	for _, cat := range h.selectableCategories() {
		selectable[cat.ID] = cat
	}

	refs := []models.CategoryRef{}
	for _, id := range ids {
		cat, ok := selectable[id]
		if !ok {
			return nil, errcodes.ValidationError("Unknown category " + id)
		}
		refs = append(refs, models.CategoryRef{ID: cat.ID, Name: cat.Name})
	}
	return refs, nil
}

// buildUpload validates the form and packages it for the catalog API. The
// chapter sequence is normalized to a contiguous 1..N order on the way out.
func (h *handler) buildUpload(params *EbookPayload) (catalog.BookUpload, error) {
	refs, err := h.resolveCategories(params.Categories)
	if err != nil {
		return catalog.BookUpload{}, err
	}

	chapters := make([]models.Chapter, len(params.Chapters))
	for i, ch := range params.Chapters {
		chapters[i] = models.Chapter{
			Title:                ch.Title,
			Content:              ch.Content,
			Order:                ch.Order,
			WordCount:            ch.WordCount,
			EstimatedReadingTime: ch.EstimatedReadingTime,
		}
	}

	image := models.ImageRef{}
	if fh, ok := params.FormFiles["coverImage"]; ok {
		image, err = forms.ValidateImage(fh)
		if err != nil {
			if errors.Is(err, forms.ErrImageTooLarge) || errors.Is(err, forms.ErrUnsupportedType) {
				return catalog.BookUpload{}, errcodes.ValidationError(err.Error())
			}
			return catalog.BookUpload{}, err
		}
	}

	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}

	return catalog.BookUpload{
		Title:         params.Title,
		Description:   params.Description,
		AuthorID:      params.Author,
		CategoryIDs:   ids,
		ContentStatus: params.ContentStatus,
		Chapters:      forms.NewChapterList(chapters).Chapters(),
		CoverImage:    image,
	}, nil
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.gate.Enter() {
		return errcodes.Busy("Saving an eBook")
	}
	defer h.gate.Leave()

	params := EbookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	upload, err := h.buildUpload(&params)
	if err != nil {
		return err
	}

	created, err := h.client.CreateBook(ctx, upload)
	if err != nil {
		return apiError(err)
	}

	h.store.Add(*created)

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{
		"message": "eBook created successfully",
		"book":    created,
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, ok := h.store.Get(id); !ok {
		return errcodes.NotFound("eBook")
	}

	if !h.gate.Enter() {
		return errcodes.Busy("Saving an eBook")
	}
	defer h.gate.Leave()

	params := EbookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	upload, err := h.buildUpload(&params)
	if err != nil {
		return err
	}

	updated, err := h.client.UpdateBook(ctx, id, upload)
	if err != nil {
		return apiError(err)
	}

	h.store.Update(id, models.EbookPatch{
		Title:         &updated.Title,
		Description:   &updated.Description,
		Author:        &updated.Author,
		Categories:    &updated.Categories,
		ContentStatus: &updated.ContentStatus,
		CoverImage:    &updated.CoverImage,
		Chapters:      &updated.Chapters,
	})

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "eBook updated successfully",
		"book":    updated,
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, ok := h.store.Get(id); !ok {
		return errcodes.NotFound("eBook")
	}

	if !h.gate.Enter() {
		return errcodes.Busy("Deleting an eBook")
	}
	defer h.gate.Leave()

	if err := h.client.DeleteBook(ctx, id); err != nil {
		return apiError(err)
	}

	h.store.Remove(id)

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "eBook deleted successfully",
	}))
}
