package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf-backend/src/middleware"
	"github.com/openshelf/openshelf-backend/src/models"
)

// tokenLifetime is how long an issued bearer token stays valid.
const tokenLifetime = 2 * time.Hour

type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetAllUsers retrieves all User records from the database
func (s *UserService) GetAllUsers() ([]models.UserModel, error) {
	var users []models.UserModel
	result := s.db.Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// GetUserByID retrieves a User record by its ID
func (s *UserService) GetUserByID(id int) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserWithLoans retrieves a user together with every loan they appear
// in, open and historical, with the books preloaded.
func (s *UserService) GetUserWithLoans(id int) (*models.UserModel, []models.LoanModel, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, nil, err
	}

	var loans []models.LoanModel
	if err := s.db.
		Preload("Book").
		Where("user_id = ?", id).
		Find(&loans).Error; err != nil {
		return nil, nil, err
	}

	return user, loans, nil
}

// Register creates a new User record. Emails are unique and the role
// defaults to User when not given.
func (s *UserService) Register(user *models.UserModel) (*models.UserModel, error) {
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	var existing models.UserModel
	err := s.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%s: %w", user.Email, ErrEmailTaken)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Hash the password before saving
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashedPassword)

	if err := s.db.Create(user).Error; err != nil {
		// A concurrent registration can slip past the lookup above and
		// land on the unique index instead
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%s: %w", user.Email, ErrEmailTaken)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a User record by ID. A user still holding books
// cannot close their account.
func (s *UserService) DeleteUser(id int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.UserModel
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", id, ErrNotFound)
			}
			return err
		}

		var open int64
		if err := tx.Model(&models.LoanModel{}).
			Where("user_id = ? AND returned = ?", id, false).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("user %d: %w", id, ErrHasOpenLoans)
		}

		return tx.Delete(&models.UserModel{}, id).Error
	})
}

// AuthenticateUser checks user credentials and returns a signed bearer
// token if valid.
func (s *UserService) AuthenticateUser(email, password string) (string, error) {
	var user models.UserModel
	result := s.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", result.Error
	}

	// Compare the provided password with the hashed password in the database
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := middleware.Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.Id),
			Issuer:    middleware.GetIssuer(),
			Audience:  jwt.ClaimStrings{middleware.GetAudience()},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
