package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf-backend/src/dtos"
	"github.com/openshelf/openshelf-backend/src/services"
)

type LoanController struct {
	service *services.LoanService
}

func NewLoanController(service *services.LoanService) *LoanController {
	return &LoanController{service: service}
}

// GetAllLoans handles GET requests to retrieve the whole loan ledger
func (c *LoanController) GetAllLoans(ctx *gin.Context) {
	loans, err := c.service.GetAllLoans()
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, loans)
}

// GetLoanByID handles GET requests to retrieve a loan by its ID
func (c *LoanController) GetLoanByID(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	loan, err := c.service.GetLoanByID(id)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, loan)
}

// Borrow handles POST /borrowed-books/borrow with a JSON body
func (c *LoanController) Borrow(ctx *gin.Context) {
	var req dtos.BorrowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BookId == 0 || req.UserId == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "bookId and userId are required"})
		return
	}

	loan, err := c.service.Borrow(req.BookId, req.UserId)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, loan)
}

// BorrowByPath handles POST /books/borrow/:bookId/user/:userId
func (c *LoanController) BorrowByPath(ctx *gin.Context) {
	bookId, err := strconv.Atoi(ctx.Param("bookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	loan, err := c.service.Borrow(bookId, userId)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, loan)
}

// ReturnByLoanID handles POST /borrowed-books/return/:id
func (c *LoanController) ReturnByLoanID(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	loan, err := c.service.ReturnByLoanID(id)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, loan)
}

// ReturnByBookID handles POST /books/return/:bookId
func (c *LoanController) ReturnByBookID(ctx *gin.Context) {
	bookId, err := strconv.Atoi(ctx.Param("bookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	loan, err := c.service.ReturnByBookID(bookId)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, loan)
}
