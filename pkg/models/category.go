package models

import "time"

// Category is a catalog category. Ebooks reference categories by a denormalized
// id+name pair, so renames don't propagate until the next full fetch.
type Category struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c Category) EntityID() string {
	return c.ID
}

// CategoryRef is the denormalized reference embedded in an ebook.
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CategoryPatch is a typed partial update. Only non-nil fields are merged.
type CategoryPatch struct {
	Name        *string
	Description *string
}

func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	return c
}
