package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"books-api/internal/model"
	"books-api/internal/repository"
	"books-api/internal/validation"
)

type fakeBookRepo struct {
	InsertFn      func(ctx context.Context, b *model.Book) error
	FindAllFn     func(ctx context.Context) ([]model.Book, error)
	FindByIDFn    func(ctx context.Context, id string) (*model.Book, error)
	ReplaceByIDFn func(ctx context.Context, id string, b *model.Book) (*model.Book, error)
	DeleteByIDFn  func(ctx context.Context, id string) (*model.Book, error)
}

func (f *fakeBookRepo) Insert(ctx context.Context, b *model.Book) error {
	if f.InsertFn != nil {
		return f.InsertFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) FindAll(ctx context.Context) ([]model.Book, error) {
	if f.FindAllFn != nil {
		return f.FindAllFn(ctx)
	}
	return []model.Book{}, nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id string) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookRepo) ReplaceByID(ctx context.Context, id string, b *model.Book) (*model.Book, error) {
	if f.ReplaceByIDFn != nil {
		return f.ReplaceByIDFn(ctx, id, b)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookRepo) DeleteByID(ctx context.Context, id string) (*model.Book, error) {
	if f.DeleteByIDFn != nil {
		return f.DeleteByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateBook_Success(t *testing.T) {
	repo := repository.NewMemoryBookRepository()
	router := setupRouter(repo)

	body := CreateBookRequest{
		Title:         "Dune",
		Author:        "Herbert",
		PublishedYear: "1965",
		Price:         floatPtr(15),
	}

	w := doRequest(t, router, http.MethodPost, "/books", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp BookResponse
	decodeJSON(t, w, &resp)

	if !resp.Success {
		t.Errorf("expected success=true")
	}
	if resp.Data.ID.IsZero() {
		t.Errorf("expected non-empty ID")
	}
	if resp.Data.Title != "Dune" {
		t.Errorf("expected title %q, got %q", "Dune", resp.Data.Title)
	}
	if resp.Data.Author != "Herbert" {
		t.Errorf("expected author %q, got %q", "Herbert", resp.Data.Author)
	}
	if resp.Data.PublishedYear != "1965" {
		t.Errorf("expected publishedYear %q, got %q", "1965", resp.Data.PublishedYear)
	}
	if resp.Data.Price != 15 {
		t.Errorf("expected price 15, got %v", resp.Data.Price)
	}
	if resp.Data.CreatedAt.IsZero() || resp.Data.UpdatedAt.IsZero() {
		t.Errorf("expected createdAt/updatedAt to be populated")
	}

	stored, err := repo.FindByID(context.Background(), resp.Data.ID.Hex())
	if err != nil {
		t.Fatalf("expected book in store, got error: %v", err)
	}
	if stored.Title != "Dune" {
		t.Errorf("expected stored title %q, got %q", "Dune", stored.Title)
	}
}

func TestCreateBook_MissingField(t *testing.T) {
	cases := map[string]map[string]any{
		"title":         {"author": "Herbert", "publishedYear": "1965", "price": 15},
		"author":        {"title": "Dune", "publishedYear": "1965", "price": 15},
		"publishedYear": {"title": "Dune", "author": "Herbert", "price": 15},
		"price":         {"title": "Dune", "author": "Herbert", "publishedYear": "1965"},
	}

	for missing, payload := range cases {
		t.Run(missing, func(t *testing.T) {
			repo := repository.NewMemoryBookRepository()
			router := setupRouter(repo)

			w := doRequest(t, router, http.MethodPost, "/books", payload)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d, body=%s", w.Code, w.Body.String())
			}

			var resp validation.ErrorResponse
			decodeJSON(t, w, &resp)

			if resp.Success {
				t.Errorf("expected success=false")
			}
			if resp.Message != validation.MissingFieldsMessage {
				t.Errorf("expected message %q, got %q", validation.MissingFieldsMessage, resp.Message)
			}

			books, err := repo.FindAll(context.Background())
			if err != nil {
				t.Fatalf("failed to list books: %v", err)
			}
			if len(books) != 0 {
				t.Errorf("expected no book created, got %d", len(books))
			}
		})
	}
}

func TestCreateBook_ZeroPriceIsValid(t *testing.T) {
	repo := repository.NewMemoryBookRepository()
	router := setupRouter(repo)

	payload := map[string]any{
		"title":         "Free Culture",
		"author":        "Lessig",
		"publishedYear": "2004",
		"price":         0,
	}

	w := doRequest(t, router, http.MethodPost, "/books", payload)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for zero price, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp BookResponse
	decodeJSON(t, w, &resp)
	if resp.Data.Price != 0 {
		t.Errorf("expected price 0, got %v", resp.Data.Price)
	}
}

func TestCreateBook_MalformedJSON(t *testing.T) {
	router := setupRouter(repository.NewMemoryBookRepository())

	req, _ := http.NewRequest(http.MethodPost, "/books", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp validation.ErrorResponse
	decodeJSON(t, w, &resp)
	if resp.Success {
		t.Errorf("expected success=false")
	}
}

func TestCreateBook_StoreFailure(t *testing.T) {
	repo := &fakeBookRepo{
		InsertFn: func(ctx context.Context, b *model.Book) error {
			return errors.New("connection reset")
		},
	}
	router := setupRouter(repo)

	body := CreateBookRequest{
		Title:         "Dune",
		Author:        "Herbert",
		PublishedYear: "1965",
		Price:         floatPtr(15),
	}

	w := doRequest(t, router, http.MethodPost, "/books", body)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp validation.ErrorResponse
	decodeJSON(t, w, &resp)
	if strings.Contains(resp.Message, "connection reset") {
		t.Errorf("internal error detail leaked to the client: %q", resp.Message)
	}
}

func TestListBooks_Empty(t *testing.T) {
	router := setupRouter(repository.NewMemoryBookRepository())

	w := doRequest(t, router, http.MethodGet, "/books", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp BookListResponse
	decodeJSON(t, w, &resp)

	if !resp.Success {
		t.Errorf("expected success=true")
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected empty list, got %d books", len(resp.Data))
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("expected data to serialize as an empty array, body=%s", w.Body.String())
	}
}

func TestListBooks_ReturnsAll(t *testing.T) {
	repo := repository.NewMemoryBookRepository()
	router := setupRouter(repo)

	b1 := seedBook(t, repo, "Dune", "Herbert", "1965", 15)
	b2 := seedBook(t, repo, "Hyperion", "Simmons", "1989", 12)

	w := doRequest(t, router, http.MethodGet, "/books", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp BookListResponse
	decodeJSON(t, w, &resp)

	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 books, got %d", len(resp.Data))
	}

	seen := map[string]bool{}
	for _, b := range resp.Data {
		seen[b.ID.Hex()] = true
	}
	if !seen[b1.ID.Hex()] || !seen[b2.ID.Hex()] {
		t.Errorf("expected both seeded books in list, got %v", seen)
	}
}

func TestGetBook_Success(t *testing.T) {
	repo := repository.NewMemoryBookRepository()
	router := setupRouter(repo)

	book := seedBook(t, repo, "Dune", "Herbert", "1965", 15)

	w := doRequest(t, router, http.MethodGet, "/books/"+book.ID.Hex(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp BookResponse
	decodeJSON(t, w, &resp)

	if resp.Data.ID != book.ID {
		t.Errorf("expected id %s, got %s", book.ID.Hex(), resp.Data.ID.Hex())
	}
	if resp.Data.Title != "Dune" {
		t.Errorf("expected title %q, got %q", "Dune", resp.Data.Title)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	router := setupRouter(repository.NewMemoryBookRepository())

	w := doRequest(t, router, http.MethodGet, "/books/"+primitive.NewObjectID().Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp validation.ErrorResponse
	decodeJSON(t, w, &resp)

	if resp.Success {
		t.Errorf("expected success=false")
	}
	if resp.Message != "Book not found" {
		t.Errorf("expected message %q, got %q", "Book not found", resp.Message)
	}
}

func TestGetBook_InvalidID(t *testing.T) {
	router := setupRouter(repository.NewMemoryBookRepository())

	w := doRequest(t, router, http.MethodGet, "/books/not-a-hex-id", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateBook_Success(t *testing.T) {
	repo := repository.NewMemoryBookRepository()
	router := setupRouter(repo)

	book := seedBook(t, repo, "Dune", "Herbert", "1965", 15)

	body := UpdateBookRequest{
		Title:         "Dune",
		Author:        "Herbert",
		PublishedYear: "1965",
		Price:         floatPtr(20),
	}

	w := doRequest(t, router, http.MethodPut, "/books/"+book.ID.Hex(), body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp BookResponse
	decodeJSON(t, w, &resp)

	if resp.Data.Price != 20 {
		t.Errorf("expected price 20, got %v", resp.Data.Price)
	}
	if resp.Data.ID != book.ID {
		t.Errorf("expected id to be immutable, got %s", resp.Data.ID.Hex())
	}
	if !resp.Data.CreatedAt.Equal(book.CreatedAt) {
		t.Errorf("expected createdAt to be immutable, got %v", resp.Data.CreatedAt)
	}
	if resp.Data.UpdatedAt.Before(book.UpdatedAt) {
		t.Errorf("expected updatedAt to be refreshed")
	}
}

func TestUpdateBook_Idempotent(t *testing.T) {
	repo := repository.NewMemoryBookRepository()
	router := setupRouter(repo)

	book := seedBook(t, repo, "Dune", "Herbert", "1965", 15)

	body := UpdateBookRequest{
		Title:         "Dune Messiah",
		Author:        "Herbert",
		PublishedYear: "1969",
		Price:         floatPtr(18),
	}

	w1 := doRequest(t, router, http.MethodPut, "/books/"+book.ID.Hex(), body)
	if w1.Code != http.StatusOK {
		t.Fatalf("first update failed: %d, body=%s", w1.Code, w1.Body.String())
	}
	var first BookResponse
	decodeJSON(t, w1, &first)

	// Stored timestamps have millisecond precision; make sure the second
	// update lands on a later instant.
	time.Sleep(2 * time.Millisecond)

	w2 := doRequest(t, router, http.MethodPut, "/books/"+book.ID.Hex(), body)
	if w2.Code != http.StatusOK {
		t.Fatalf("second update failed: %d, body=%s", w2.Code, w2.Body.String())
	}
	var second BookResponse
	decodeJSON(t, w2, &second)

	if second.Data.Title != first.Data.Title ||
		second.Data.Author != first.Data.Author ||
		second.Data.PublishedYear != first.Data.PublishedYear ||
		second.Data.Price != first.Data.Price {
		t.Errorf("expected business fields unchanged on replay")
	}
	if !second.Data.UpdatedAt.After(first.Data.UpdatedAt) {
		t.Errorf("expected updatedAt to advance, first=%v second=%v",
			first.Data.UpdatedAt, second.Data.UpdatedAt)
	}
}

func TestUpdateBook_MissingField(t *testing.T) {
	repo := repository.NewMemoryBookRepository()
	router := setupRouter(repo)

	book := seedBook(t, repo, "Dune", "Herbert", "1965", 15)

	payload := map[string]any{
		"title":  "Dune",
		"author": "Herbert",
		"price":  20,
	}

	w := doRequest(t, router, http.MethodPut, "/books/"+book.ID.Hex(), payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d, body=%s", w.Code, w.Body.String())
	}

	stored, err := repo.FindByID(context.Background(), book.ID.Hex())
	if err != nil {
		t.Fatalf("failed to re-read book: %v", err)
	}
	if stored.Price != 15 {
		t.Errorf("expected book unchanged after rejected update, price=%v", stored.Price)
	}
}

func TestUpdateBook_NotFound(t *testing.T) {
	router := setupRouter(repository.NewMemoryBookRepository())

	body := UpdateBookRequest{
		Title:         "Dune",
		Author:        "Herbert",
		PublishedYear: "1965",
		Price:         floatPtr(20),
	}

	w := doRequest(t, router, http.MethodPut, "/books/"+primitive.NewObjectID().Hex(), body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteBook_Success(t *testing.T) {
	repo := repository.NewMemoryBookRepository()
	router := setupRouter(repo)

	book := seedBook(t, repo, "Dune", "Herbert", "1965", 15)

	w := doRequest(t, router, http.MethodDelete, "/books/"+book.ID.Hex(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp MessageResponse
	decodeJSON(t, w, &resp)

	if !resp.Success {
		t.Errorf("expected success=true")
	}
	if resp.Message != "Book deleted successfully" {
		t.Errorf("expected message %q, got %q", "Book deleted successfully", resp.Message)
	}

	// A delete is a one-shot: the record is gone for good.
	w = doRequest(t, router, http.MethodGet, "/books/"+book.ID.Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteBook_NotFound(t *testing.T) {
	router := setupRouter(repository.NewMemoryBookRepository())

	w := doRequest(t, router, http.MethodDelete, "/books/"+primitive.NewObjectID().Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteBook_StoreFailure(t *testing.T) {
	repo := &fakeBookRepo{
		DeleteByIDFn: func(ctx context.Context, id string) (*model.Book, error) {
			return nil, errors.New("socket timeout")
		},
	}
	router := setupRouter(repo)

	w := doRequest(t, router, http.MethodDelete, "/books/"+primitive.NewObjectID().Hex(), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d, body=%s", w.Code, w.Body.String())
	}
}
