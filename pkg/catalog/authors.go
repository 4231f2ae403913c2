package catalog

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/pkg/errors"
)

// AuthorUpload is the multipart payload for creating or updating an author.
// The profile image travels as a file part only while in the pending state; a
// remote URL means the catalog already has it and nothing is sent.
type AuthorUpload struct {
	Name         string
	Bio          string
	ProfileImage models.ImageRef
}

func (u AuthorUpload) write(mw *multipart.Writer) error {
	if err := mw.WriteField("name", u.Name); err != nil {
		return errors.WithStack(err)
	}
	if err := mw.WriteField("bio", u.Bio); err != nil {
		return errors.WithStack(err)
	}
	return writeImagePart(mw, "profileImage", u.ProfileImage)
}

// ListAuthors fetches the full author collection.
func (c *Client) ListAuthors(ctx context.Context) ([]models.Author, error) {
	out := struct {
		Authors []models.Author `json:"authors"`
	}{}
	err := c.doJSON(ctx, http.MethodGet, "/authors", nil, &out, "Failed to fetch authors")
	if err != nil {
		return nil, err
	}
	return out.Authors, nil
}

// CreateAuthor posts a new author and returns the server-assigned record.
func (c *Client) CreateAuthor(ctx context.Context, upload AuthorUpload) (*models.Author, error) {
	out := struct {
		Author models.Author `json:"author"`
	}{}
	err := c.doMultipart(ctx, http.MethodPost, "/authors", upload.write, &out, "Failed to create author")
	if err != nil {
		return nil, err
	}
	return &out.Author, nil
}

// UpdateAuthor puts changed fields and returns the updated record. Unlike
// create, the API returns the author directly under data.
func (c *Client) UpdateAuthor(ctx context.Context, id string, upload AuthorUpload) (*models.Author, error) {
	out := &models.Author{}
	err := c.doMultipart(ctx, http.MethodPut, "/authors/"+id, upload.write, out, "Failed to update author")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAuthor removes an author by identifier.
func (c *Client) DeleteAuthor(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/authors/"+id, nil, nil, "Failed to delete author")
}
