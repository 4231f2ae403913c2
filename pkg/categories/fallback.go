package categories

import "github.com/msubham193/buckinn-console/pkg/models"

// Fallback is the static category list offered by the ebook form when the
// server-backed collection is empty, so a new install can still label books.
func Fallback() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Fiction", Description: "Literary works created from the imagination, not presented as fact."},
		{ID: "2", Name: "Science Fiction", Description: "Speculative fiction dealing with imaginative and futuristic concepts."},
		{ID: "3", Name: "Mystery", Description: "Fiction that follows a crime from the moment it is committed to the moment it is solved."},
		{ID: "4", Name: "Self-Help", Description: "Books written with the intention to instruct readers on solving personal problems."},
	}
}
