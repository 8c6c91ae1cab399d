package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"books-api/internal/model"
)

// MemoryBookRepository keeps books in a process-local map. It honors the
// same id and validation semantics as the Mongo implementation so handler
// tests and local runs exercise identical behavior.
type MemoryBookRepository struct {
	mu    sync.RWMutex
	books map[string]model.Book
}

func NewMemoryBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{books: make(map[string]model.Book)}
}

func (r *MemoryBookRepository) Insert(_ context.Context, book *model.Book) error {
	if missing := book.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	book.ID = primitive.NewObjectID()
	book.CreatedAt = now
	book.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[book.ID.Hex()] = *book
	return nil
}

func (r *MemoryBookRepository) FindAll(_ context.Context) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b)
	}
	return books, nil
}

func (r *MemoryBookRepository) FindByID(_ context.Context, id string) (*model.Book, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &book, nil
}

func (r *MemoryBookRepository) ReplaceByID(_ context.Context, id string, book *model.Book) (*model.Book, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}
	if missing := book.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.books[id]
	if !ok {
		return nil, ErrNotFound
	}

	stored.Title = book.Title
	stored.Author = book.Author
	stored.PublishedYear = book.PublishedYear
	stored.Price = book.Price
	stored.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	r.books[id] = stored

	return &stored, nil
}

func (r *MemoryBookRepository) DeleteByID(_ context.Context, id string) (*model.Book, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.books, id)
	return &book, nil
}
