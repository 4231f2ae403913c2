package catalog

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/pkg/errors"
)

// BookUpload is the multipart payload for creating or updating an ebook.
// Chapters are indexed form fields (chapters[i][title] and friends) per the
// catalog API's bracket convention.
type BookUpload struct {
	Title         string
	Description   string
	AuthorID      string
	CategoryIDs   []string
	ContentStatus string
	Chapters      []models.Chapter
	CoverImage    models.ImageRef
}

func (u BookUpload) write(mw *multipart.Writer) error {
	fields := map[string]string{
		"title":         u.Title,
		"description":   u.Description,
		"author":        u.AuthorID,
		"contentStatus": u.ContentStatus,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return errors.WithStack(err)
		}
	}
	for i, id := range u.CategoryIDs {
		if err := mw.WriteField(fmt.Sprintf("categories[%d]", i), id); err != nil {
			return errors.WithStack(err)
		}
	}
	for i, ch := range u.Chapters {
		parts := map[string]string{
			fmt.Sprintf("chapters[%d][title]", i):   ch.Title,
			fmt.Sprintf("chapters[%d][content]", i): ch.Content,
			fmt.Sprintf("chapters[%d][order]", i):   strconv.Itoa(ch.Order),
		}
		for name, value := range parts {
			if err := mw.WriteField(name, value); err != nil {
				return errors.WithStack(err)
			}
		}
	}
	return writeImagePart(mw, "coverImage", u.CoverImage)
}

// writeImagePart attaches pending image bytes as a file part. Unset and remote
// references write nothing.
func writeImagePart(mw *multipart.Writer, field string, img models.ImageRef) error {
	if img.State() != models.ImagePending {
		return nil
	}
	data, mime := img.Pending()
	fw, err := mw.CreateFormFile(field, field+extensionFor(mime, data))
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := fw.Write(data); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func extensionFor(declared string, data []byte) string {
	if t := mimetype.Lookup(declared); t != nil && t.Extension() != "" {
		return t.Extension()
	}
	return mimetype.Detect(data).Extension()
}

// ListBooks fetches the full ebook collection.
func (c *Client) ListBooks(ctx context.Context) ([]models.Ebook, error) {
	out := struct {
		Books []models.Ebook `json:"books"`
	}{}
	err := c.doJSON(ctx, http.MethodGet, "/books", nil, &out, "Failed to fetch eBooks")
	if err != nil {
		return nil, err
	}
	return out.Books, nil
}

// CreateBook posts a new ebook and returns the server-assigned record.
func (c *Client) CreateBook(ctx context.Context, upload BookUpload) (*models.Ebook, error) {
	out := struct {
		Book models.Ebook `json:"book"`
	}{}
	err := c.doMultipart(ctx, http.MethodPost, "/books", upload.write, &out, "Failed to create eBook")
	if err != nil {
		return nil, err
	}
	return &out.Book, nil
}

// UpdateBook puts changed fields and returns the updated record.
func (c *Client) UpdateBook(ctx context.Context, id string, upload BookUpload) (*models.Ebook, error) {
	out := struct {
		Book models.Ebook `json:"book"`
	}{}
	err := c.doMultipart(ctx, http.MethodPut, "/books/"+id, upload.write, &out, "Failed to update eBook")
	if err != nil {
		return nil, err
	}
	return &out.Book, nil
}

// DeleteBook removes an ebook by identifier.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/books/"+id, nil, nil, "Failed to delete eBook")
}
