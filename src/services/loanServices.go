package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf-backend/src/models"
)

// LoanService owns every transition of a book between available and
// borrowed. Nothing else writes BookModel.IsAvailable or UserId, and no
// loan row is ever deleted: closed loans are the borrow history.
type LoanService struct {
	db          *gorm.DB
	bookService *BookService // optional, for cache invalidation
}

// NewLoanService creates a new instance of LoanService.
// bookService may be nil if no cache needs invalidating.
func NewLoanService(db *gorm.DB, bookService *BookService) *LoanService {
	return &LoanService{
		db:          db,
		bookService: bookService,
	}
}

// GetAllLoans retrieves all loan records from the ledger
func (s *LoanService) GetAllLoans() ([]models.LoanModel, error) {
	var loans []models.LoanModel

	result := s.db.
		Preload("Book").
		Preload("User").
		Find(&loans)

	return loans, result.Error
}

// GetLoanByID retrieves a loan record by its ID
func (s *LoanService) GetLoanByID(id int) (*models.LoanModel, error) {
	var loan models.LoanModel

	result := s.db.
		Preload("Book").
		Preload("User").
		First(&loan, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("loan %d: %w", id, ErrNotFound)
		}
		return nil, result.Error
	}
	return &loan, nil
}

// Borrow moves a book from available to borrowed and opens a loan for it,
// all inside one transaction. The availability flip is a guarded update
// (WHERE is_available), so of two concurrent borrows for the same book
// exactly one commits and the other gets ErrAlreadyBorrowed.
func (s *LoanService) Borrow(bookId, userId int) (*models.LoanModel, error) {
	var loan models.LoanModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book models.BookModel
		if err := tx.First(&book, bookId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("book %d: %w", bookId, ErrNotFound)
			}
			return err
		}

		var user models.UserModel
		if err := tx.First(&user, userId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userId, ErrNotFound)
			}
			return err
		}

		// Compare-and-swap on the availability flag
		result := tx.Model(&models.BookModel{}).
			Where("id = ? AND is_available = ?", bookId, true).
			Updates(map[string]interface{}{
				"is_available": false,
				"user_id":      userId,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("book %d: %w", bookId, ErrAlreadyBorrowed)
		}

		loan = models.LoanModel{
			BookId:     bookId,
			UserId:     userId,
			BorrowedAt: time.Now(),
			Returned:   false,
		}
		return tx.Create(&loan).Error
	})

	if err != nil {
		return nil, err
	}

	if err := s.db.
		Preload("Book").
		Preload("User").
		First(&loan, loan.Id).Error; err != nil {
		return nil, err
	}

	// Availability changed, book reads must not serve stale data
	if s.bookService != nil {
		s.bookService.InvalidateBookCache(bookId)
	}

	return &loan, nil
}

// ReturnByLoanID closes the loan identified by its ledger id. A loan that
// is already closed counts as not found, so a double return never
// silently succeeds.
func (s *LoanService) ReturnByLoanID(loanId int) (*models.LoanModel, error) {
	var loan models.LoanModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id = ? AND returned = ?", loanId, false).
			First(&loan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("open loan %d: %w", loanId, ErrNotFound)
			}
			return err
		}
		return s.closeLoan(tx, &loan)
	})

	if err != nil {
		return nil, err
	}

	if s.bookService != nil {
		s.bookService.InvalidateBookCache(loan.BookId)
	}

	return &loan, nil
}

// ReturnByBookID closes the open loan of the given book, if one exists.
func (s *LoanService) ReturnByBookID(bookId int) (*models.LoanModel, error) {
	var loan models.LoanModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("book_id = ? AND returned = ?", bookId, false).
			First(&loan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("book %d: %w", bookId, ErrNotBorrowed)
			}
			return err
		}
		return s.closeLoan(tx, &loan)
	})

	if err != nil {
		return nil, err
	}

	if s.bookService != nil {
		s.bookService.InvalidateBookCache(loan.BookId)
	}

	return &loan, nil
}

// closeLoan stamps the loan returned and restores the book's
// availability inside the caller's transaction. The close is a guarded
// update like the borrow side: if the loan was closed by a concurrent
// return between the read and this write, zero rows match and the
// caller gets ErrNotFound instead of silently re-releasing a book that
// may already be out on a newer loan.
func (s *LoanService) closeLoan(tx *gorm.DB, loan *models.LoanModel) error {
	now := time.Now()

	result := tx.Model(&models.LoanModel{}).
		Where("id = ? AND returned = ?", loan.Id, false).
		Updates(map[string]interface{}{
			"returned":    true,
			"returned_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("open loan %d: %w", loan.Id, ErrNotFound)
	}
	loan.Returned = true
	loan.ReturnedAt = &now

	return tx.Model(&models.BookModel{}).
		Where("id = ? AND is_available = ?", loan.BookId, false).
		Updates(map[string]interface{}{
			"is_available": true,
			"user_id":      nil,
		}).Error
}
