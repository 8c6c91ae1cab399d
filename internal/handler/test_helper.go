package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"books-api/internal/logger"
	"books-api/internal/model"
	"books-api/internal/repository"
)

func setupRouter(repo repository.BookRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewBookHandler(repo, logger.NewNop())
	h.RegisterRoutes(r.Group(""))

	return r
}

func seedBook(t *testing.T, repo repository.BookRepository, title, author, year string, price float64) model.Book {
	t.Helper()

	book := model.Book{
		Title:         title,
		Author:        author,
		PublishedYear: year,
		Price:         price,
	}

	if err := repo.Insert(context.Background(), &book); err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
}
