package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf-backend/src/controllers"
	"github.com/openshelf/openshelf-backend/src/middleware"
	"github.com/openshelf/openshelf-backend/src/models"
	"github.com/openshelf/openshelf-backend/src/services"
)

func SetupBookRoutes(router *gin.Engine, bookService *services.BookService, loanService *services.LoanService) {

	bookController := controllers.NewBookController(bookService)
	loanController := controllers.NewLoanController(loanService)

	// Public routes
	router.GET("/books", bookController.GetAllBooks)
	router.GET("/books/:id", bookController.GetBookByID)

	// Catalog management, Admin only
	admin := router.Group("/books")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("", bookController.CreateBook)
		admin.PUT("/:id", bookController.UpdateBook)
		admin.DELETE("/:id", bookController.DeleteBook)
		admin.POST("/import", bookController.ImportBooks)
	}

	// Borrow and return, any authenticated caller
	borrow := router.Group("/books")
	borrow.Use(middleware.AuthMiddleware())
	{
		borrow.POST("/borrow/:bookId/user/:userId", loanController.BorrowByPath)
		borrow.POST("/return/:bookId", loanController.ReturnByBookID)
	}
}
