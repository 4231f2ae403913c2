package ebooks

import "mime/multipart"

// ListEbooksQuery filters the in-memory collection; searching never triggers
// a fetch.
type ListEbooksQuery struct {
	Search string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

// ChapterInput is one chapter of the ebook form. The derived fields are
// display values the console carries through without recomputing.
type ChapterInput struct {
	Title                string `form:"title" json:"title" validate:"required"`
	Content              string `form:"content" json:"content" validate:"required"`
	Order                int    `form:"order" json:"order" validate:"omitempty,min=1"`
	WordCount            int    `form:"wordCount" json:"wordCount,omitempty"`
	EstimatedReadingTime int    `form:"estimatedReadingTime" json:"estimatedReadingTime,omitempty"`
}

// EbookPayload is the create/update multipart form body. Chapters arrive as
// indexed fields (chapters.0.title and so on); the optional cover arrives as
// the coverImage file part.
type EbookPayload struct {
	Title         string         `form:"title" json:"title" validate:"required,min=2,max=100"`
	Description   string         `form:"description" json:"description" validate:"required,max=1000"`
	Author        string         `form:"author" json:"author" validate:"required"`
	Categories    []string       `form:"categories" json:"categories,omitempty"`
	ContentStatus string         `form:"contentStatus" json:"contentStatus" default:"draft" validate:"oneof=draft published archived"`
	Chapters      []ChapterInput `form:"chapters" json:"chapters,omitempty" validate:"omitempty,dive"`

	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}
