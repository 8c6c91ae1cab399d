package repository

import (
	"context"
	"errors"

	"books-api/internal/model"
)

var (
	// ErrNotFound is returned when no book matches the given id.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidID is returned when the id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid book id")
	// ErrValidation is returned when a write is missing required fields.
	ErrValidation = errors.New("missing required fields")
)

// BookRepository is the only component that talks to the document store.
type BookRepository interface {
	// Insert persists a new book, assigning its id and timestamps.
	Insert(ctx context.Context, book *model.Book) error
	// FindAll returns every stored book. No ordering is guaranteed.
	FindAll(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id string) (*model.Book, error)
	// ReplaceByID overwrites the four business fields and refreshes
	// updatedAt, returning the updated document.
	ReplaceByID(ctx context.Context, id string, book *model.Book) (*model.Book, error)
	// DeleteByID removes the book and returns the deleted snapshot.
	DeleteByID(ctx context.Context, id string) (*model.Book, error)
}
