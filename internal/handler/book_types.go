package handler

import "books-api/internal/model"

// CreateBookRequest carries the four business fields of a book. Price is a
// pointer so a literal 0 counts as present; the text fields fail "required"
// when absent or empty.
type CreateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Author        string   `json:"author" binding:"required"`
	PublishedYear string   `json:"publishedYear" binding:"required"`
	Price         *float64 `json:"price" binding:"required"`
}

// UpdateBookRequest is a full replacement: every business field must be
// re-supplied, same as on create.
type UpdateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Author        string   `json:"author" binding:"required"`
	PublishedYear string   `json:"publishedYear" binding:"required"`
	Price         *float64 `json:"price" binding:"required"`
}

type BookResponse struct {
	Success bool       `json:"success"`
	Data    model.Book `json:"data"`
}

type BookListResponse struct {
	Success bool         `json:"success"`
	Data    []model.Book `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
