package authors

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
	"github.com/msubham193/buckinn-console/pkg/forms"
	"github.com/msubham193/buckinn-console/pkg/inflight"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/store"
	"github.com/pkg/errors"
)

type handler struct {
	client *catalog.Client
	store  *store.Store[models.Author]
	gate   inflight.Gate
}

func apiError(err error) error {
	apiErr := &catalog.Error{}
	if errors.As(err, &apiErr) {
		return errcodes.Upstream(apiErr.Message)
	}
	return errors.WithStack(err)
}

// attachedImage validates the optional profile image part. A missing part
// leaves the reference unset.
func attachedImage(params *AuthorPayload) (models.ImageRef, error) {
	fh, ok := params.FormFiles["profileImage"]
	if !ok {
		return models.ImageRef{}, nil
	}
	ref, err := forms.ValidateImage(fh)
	if err != nil {
		if errors.Is(err, forms.ErrImageTooLarge) || errors.Is(err, forms.ErrUnsupportedType) {
			return models.ImageRef{}, errcodes.ValidationError(err.Error())
		}
		return models.ImageRef{}, err
	}
	return ref, nil
}

// list serves the author collection, fetching it from the catalog only the
// first time. Search filters the mirror in memory.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListAuthorsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if !h.store.Loaded() {
		fetched, err := h.client.ListAuthors(ctx)
		if err != nil {
			return apiError(err)
		}
		h.store.ReplaceAll(fetched)
	}

	matches := h.store.Filter(func(a models.Author) bool {
		return store.MatchesSearch(a.Name, params.Search)
	})

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"authors": matches,
		"total":   len(matches),
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.gate.Enter() {
		return errcodes.Busy("Saving an author")
	}
	defer h.gate.Leave()

	params := AuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	image, err := attachedImage(&params)
	if err != nil {
		return err
	}

	created, err := h.client.CreateAuthor(ctx, catalog.AuthorUpload{
		Name:         params.Name,
		Bio:          params.Bio,
		ProfileImage: image,
	})
	if err != nil {
		return apiError(err)
	}

	h.store.Add(*created)

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{
		"message": "Author created successfully",
		"author":  created,
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, ok := h.store.Get(id); !ok {
		return errcodes.NotFound("Author")
	}

	if !h.gate.Enter() {
		return errcodes.Busy("Saving an author")
	}
	defer h.gate.Leave()

	params := AuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	image, err := attachedImage(&params)
	if err != nil {
		return err
	}

	updated, err := h.client.UpdateAuthor(ctx, id, catalog.AuthorUpload{
		Name:         params.Name,
		Bio:          params.Bio,
		ProfileImage: image,
	})
	if err != nil {
		return apiError(err)
	}

	h.store.Update(id, models.AuthorPatch{
		Name:         &updated.Name,
		Bio:          &updated.Bio,
		ProfileImage: &updated.ProfileImage,
	})

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "Author updated successfully",
		"author":  updated,
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if _, ok := h.store.Get(id); !ok {
		return errcodes.NotFound("Author")
	}

	if !h.gate.Enter() {
		return errcodes.Busy("Deleting an author")
	}
	defer h.gate.Leave()

	if err := h.client.DeleteAuthor(ctx, id); err != nil {
		return apiError(err)
	}

	h.store.Remove(id)

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"message": "Author deleted successfully",
	}))
}
