package categories

// ListCategoriesQuery filters the in-memory collection; searching never
// triggers a fetch.
type ListCategoriesQuery struct {
	Search string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

// CategoryPayload is the create/update form body.
type CategoryPayload struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required,max=1000"`
}
