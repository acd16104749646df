package dto

// CategoryForm creates a category.
type CategoryForm struct {
	Name string `json:"name" form:"name"`
}

// MessageForm creates a message in a category.
type MessageForm struct {
	CategoryID string `json:"category_id" form:"category_id"`
	Text       string `json:"message_text" form:"message_text"`
}

// MessageFilter narrows message listings.
type MessageFilter struct {
	CategoryID string `query:"category_id"`
}
