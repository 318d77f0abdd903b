package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf-backend/src/controllers"
	"github.com/openshelf/openshelf-backend/src/middleware"
	"github.com/openshelf/openshelf-backend/src/services"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {
	userController := controllers.NewUserController(service)

	// Public routes
	router.POST("/auth/register", userController.Register)
	router.POST("/auth/login", userController.Login)

	// Protected routes
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", userController.GetAllUsers)
		users.GET("/:id", userController.GetUserByID)
		users.GET("/:id/borrowed-books", userController.GetUserWithBorrowedBooks)
		users.DELETE("/:id", userController.DeleteUser)
	}
}
