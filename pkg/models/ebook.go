package models

const (
	ContentStatusDraft     = "draft"
	ContentStatusPublished = "published"
	ContentStatusArchived  = "archived"
)

// ContentStatuses lists every valid ebook content status.
var ContentStatuses = []string{ContentStatusDraft, ContentStatusPublished, ContentStatusArchived}

// AuthorRef is the denormalized author reference embedded in an ebook.
type AuthorRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Chapter is one section of an ebook. Order is the sole sequencing key and is
// kept contiguous 1..N within an ebook. WordCount and EstimatedReadingTime are
// server-derived display values; the console carries them through untouched.
type Chapter struct {
	Title                string `json:"title"`
	Content              string `json:"content"`
	Order                int    `json:"order"`
	WordCount            int    `json:"wordCount"`
	EstimatedReadingTime int    `json:"estimatedReadingTime"`
}

type Ebook struct {
	ID            string        `json:"_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Author        AuthorRef     `json:"author"`
	Categories    []CategoryRef `json:"categories"`
	ContentStatus string        `json:"contentStatus"`
	CoverImage    ImageRef      `json:"coverImage"`
	Chapters      []Chapter     `json:"chapters"`
}

func (e Ebook) EntityID() string {
	return e.ID
}

// EbookPatch is a typed partial update. Only non-nil fields are merged.
type EbookPatch struct {
	Title         *string
	Description   *string
	Author        *AuthorRef
	Categories    *[]CategoryRef
	ContentStatus *string
	CoverImage    *ImageRef
	Chapters      *[]Chapter
}

func (p EbookPatch) Apply(e Ebook) Ebook {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Author != nil {
		e.Author = *p.Author
	}
	if p.Categories != nil {
		e.Categories = *p.Categories
	}
	if p.ContentStatus != nil {
		e.ContentStatus = *p.ContentStatus
	}
	if p.CoverImage != nil {
		e.CoverImage = *p.CoverImage
	}
	if p.Chapters != nil {
		e.Chapters = *p.Chapters
	}
	return e
}
