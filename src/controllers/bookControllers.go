package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf-backend/src/models"
	"github.com/openshelf/openshelf-backend/src/services"
)

type BookController struct {
	service *services.BookService
}

func NewBookController(service *services.BookService) *BookController {
	return &BookController{service: service}
}

// GetAllBooks handles GET requests to retrieve the whole catalog
func (c *BookController) GetAllBooks(ctx *gin.Context) {
	books, err := c.service.GetAllBooks()
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, books)
}

// GetBookByID handles GET requests to retrieve a book by its ID
func (c *BookController) GetBookByID(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	book, err := c.service.GetBookByID(id)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, book)
}

// CreateBook handles POST requests to add a book to the catalog
func (c *BookController) CreateBook(ctx *gin.Context) {
	var book models.BookModel
	if err := ctx.ShouldBindJSON(&book); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(book.Title) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if strings.TrimSpace(book.Author) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Author is required"})
		return
	}

	created, err := c.service.CreateBook(&book)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// UpdateBook handles PUT requests to edit the catalog fields of a book
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	var book models.BookModel
	if err := ctx.ShouldBindJSON(&book); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := c.service.UpdateBook(id, &book)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteBook handles DELETE requests to remove a book from the catalog
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	if err := c.service.DeleteBook(id); err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// ImportBooks handles POST requests uploading an xlsx catalog file
func (c *BookController) ImportBooks(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File must be an .xlsx workbook"})
		return
	}

	result, err := c.service.ImportBooksFromExcel(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}
