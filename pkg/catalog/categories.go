package catalog

import (
	"context"
	"net/http"

	"github.com/msubham193/buckinn-console/pkg/models"
)

// CategoryUpload is the JSON payload for creating or updating a category.
type CategoryUpload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListCategories fetches the full category collection.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := struct {
		Categories []models.Category `json:"categories"`
	}{}
	err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &out, "Failed to fetch categories")
	if err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CreateCategory posts a new category and returns the server-assigned record.
func (c *Client) CreateCategory(ctx context.Context, upload CategoryUpload) (*models.Category, error) {
	out := struct {
		Category models.Category `json:"category"`
	}{}
	err := c.doJSON(ctx, http.MethodPost, "/categories", upload, &out, "Failed to create category")
	if err != nil {
		return nil, err
	}
	return &out.Category, nil
}

// UpdateCategory puts changed fields and returns the updated record.
func (c *Client) UpdateCategory(ctx context.Context, id string, upload CategoryUpload) (*models.Category, error) {
	out := struct {
		Category models.Category `json:"category"`
	}{}
	err := c.doJSON(ctx, http.MethodPut, "/categories/"+id, upload, &out, "Failed to update category")
	if err != nil {
		return nil, err
	}
	return &out.Category, nil
}

// DeleteCategory removes a category by identifier.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/categories/"+id, nil, nil, "Failed to delete category")
}
