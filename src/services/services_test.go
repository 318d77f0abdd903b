package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf-backend/src/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "library.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=10000"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.BookModel{},
		&models.UserModel{},
		&models.LoanModel{},
	))

	return db
}

func createBook(t *testing.T, db *gorm.DB, title string) *models.BookModel {
	t.Helper()

	book := models.BookModel{
		Title:       title,
		Author:      "Test Author",
		Publisher:   "Test Publisher",
		Genre:       "Fiction",
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&book).Error)
	return &book
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.UserModel {
	t.Helper()

	user := models.UserModel{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// assertLedgerConsistent checks the core invariant: a book is unavailable
// if and only if exactly one open loan references it.
func assertLedgerConsistent(t *testing.T, db *gorm.DB) {
	t.Helper()

	var books []models.BookModel
	require.NoError(t, db.Find(&books).Error)

	for _, book := range books {
		var open int64
		require.NoError(t, db.Model(&models.LoanModel{}).
			Where("book_id = ? AND returned = ?", book.Id, false).
			Count(&open).Error)

		if book.IsAvailable {
			require.Zero(t, open,
				fmt.Sprintf("available book %d has %d open loans", book.Id, open))
		} else {
			require.EqualValues(t, 1, open,
				fmt.Sprintf("borrowed book %d has %d open loans", book.Id, open))
		}
	}
}
