package dtos

import (
	"github.com/openshelf/openshelf-backend/src/models"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type BorrowRequest struct {
	BookId int `json:"bookId"`
	UserId int `json:"userId"`
}

// UserWithLoansDTO is the response of GET /users/:id/borrowed-books:
// the user plus every loan they appear in, open and historical.
type UserWithLoansDTO struct {
	Id            int                `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Role          models.Role        `json:"role"`
	BorrowedBooks []models.LoanModel `json:"borrowedBooks"`
}
