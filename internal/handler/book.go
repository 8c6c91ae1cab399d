package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"books-api/internal/logger"
	"books-api/internal/model"
	"books-api/internal/repository"
	"books-api/internal/validation"
)

type BookHandler struct {
	repo repository.BookRepository
	log  logger.Logger
}

func NewBookHandler(repo repository.BookRepository, log logger.Logger) *BookHandler {
	return &BookHandler{repo: repo, log: log}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.POST("", h.CreateBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a new book with title, author, published year and price
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Missing or malformed fields"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Price:         *req.Price,
	}

	if err := h.repo.Insert(c.Request.Context(), &book); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			writeError(c, http.StatusBadRequest, validation.MissingFieldsMessage)
			return
		}

		h.log.Error("create book", logger.Error(err))
		writeError(c, http.StatusInternalServerError, "failed to create book")
		return
	}

	c.JSON(http.StatusCreated, BookResponse{Success: true, Data: book})
}

// ListBooks godoc
// @Summary      List books
// @Description  Get every stored book
// @Tags         books
// @Produce      json
// @Success      200  {object}  BookListResponse
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		h.log.Error("list books", logger.Error(err))
		writeError(c, http.StatusInternalServerError, "failed to fetch books")
		return
	}

	c.JSON(http.StatusOK, BookListResponse{Success: true, Data: books})
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Description  Get a single book by its ObjectID hex
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  BookResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	book, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondFetchError(c, err, "fetch book")
		return
	}

	c.JSON(http.StatusOK, BookResponse{Success: true, Data: *book})
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Fully replace the business fields of a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Book ID"
// @Param        payload  body      UpdateBookRequest   true  "Replacement fields"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	fields := model.Book{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Price:         *req.Price,
	}

	updated, err := h.repo.ReplaceByID(c.Request.Context(), c.Param("id"), &fields)
	if err != nil {
		if errors.Is(err, repository.ErrValidation) {
			writeError(c, http.StatusBadRequest, validation.MissingFieldsMessage)
			return
		}
		h.respondFetchError(c, err, "update book")
		return
	}

	c.JSON(http.StatusOK, BookResponse{Success: true, Data: *updated})
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Permanently remove a book by its ObjectID hex
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if _, err := h.repo.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		h.respondFetchError(c, err, "delete book")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Book deleted successfully"})
}

// respondFetchError maps the repository's id-lookup failures onto the HTTP
// contract shared by Get, Update and Delete.
func (h *BookHandler) respondFetchError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		writeError(c, http.StatusBadRequest, "invalid book id")
	case errors.Is(err, repository.ErrNotFound):
		writeError(c, http.StatusNotFound, "Book not found")
	default:
		h.log.Error(op, logger.Error(err))
		writeError(c, http.StatusInternalServerError, "failed to "+op)
	}
}
