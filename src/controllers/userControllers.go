package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf-backend/src/dtos"
	"github.com/openshelf/openshelf-backend/src/models"
	"github.com/openshelf/openshelf-backend/src/services"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// Register handles POST /auth/register
func (c *UserController) Register(ctx *gin.Context) {
	var req dtos.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
		return
	}
	if req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	role := models.Role(req.Role)
	if req.Role != "" && !role.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role must be Admin or User"})
		return
	}

	user := models.UserModel{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}

	created, err := c.service.Register(&user)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, created)
}

// Login handles POST /auth/login
func (c *UserController) Login(ctx *gin.Context) {
	var req dtos.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := c.service.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dtos.TokenResponse{Token: token})
}

// GetAllUsers handles GET requests to retrieve all users
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.service.GetAllUsers()
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID handles GET requests to retrieve a user by ID
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := c.service.GetUserByID(id)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// GetUserWithBorrowedBooks handles GET /users/:id/borrowed-books
func (c *UserController) GetUserWithBorrowedBooks(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, loans, err := c.service.GetUserWithLoans(id)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dtos.UserWithLoansDTO{
		Id:            user.Id,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		BorrowedBooks: loans,
	})
}

// DeleteUser handles DELETE requests to close an account
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.service.DeleteUser(id); err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
