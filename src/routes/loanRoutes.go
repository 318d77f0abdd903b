package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf-backend/src/controllers"
	"github.com/openshelf/openshelf-backend/src/middleware"
	"github.com/openshelf/openshelf-backend/src/services"
)

func SetupLoanRoutes(router *gin.Engine, service *services.LoanService) {

	loanController := controllers.NewLoanController(service)

	// Protected routes
	loans := router.Group("/borrowed-books")
	loans.Use(middleware.AuthMiddleware())
	{
		loans.GET("", loanController.GetAllLoans)
		loans.GET("/:id", loanController.GetLoanByID)
		loans.POST("/borrow", loanController.Borrow)
		loans.POST("/return/:id", loanController.ReturnByLoanID)
	}
}
