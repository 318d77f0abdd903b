package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf-backend/src/models"
)

// Cache entry
type CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

type BookService struct {
	db    *gorm.DB
	cache map[string]*CacheEntry
	mutex sync.RWMutex
}

func NewBookService(db *gorm.DB) *BookService {
	service := &BookService{
		db:    db,
		cache: make(map[string]*CacheEntry),
	}

	// Clean up cache every 30 minutes
	go service.cleanupCache()

	return service
}

func (s *BookService) cleanupCache() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for key, entry := range s.cache {
			if now.After(entry.ExpiresAt) {
				delete(s.cache, key)
			}
		}
		s.mutex.Unlock()
	}
}

func (s *BookService) setCache(key string, data interface{}, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cache[key] = &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(duration),
	}
}

func (s *BookService) getCache(key string) (interface{}, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.cache[key]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (s *BookService) invalidateCache(prefix string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.cache {
		if strings.HasPrefix(key, prefix) {
			delete(s.cache, key)
		}
	}
}

// InvalidateBookCache drops the cached entry of one book plus the list
// caches. The loan service calls this whenever availability flips.
func (s *BookService) InvalidateBookCache(id int) {
	s.invalidateCache(fmt.Sprintf("book_%d", id))
	s.invalidateCache("all_books")
}

// GetAllBooks retrieves all catalog entries
func (s *BookService) GetAllBooks() ([]models.BookModel, error) {
	cacheKey := "all_books"

	if cached, found := s.getCache(cacheKey); found {
		return cached.([]models.BookModel), nil
	}

	var books []models.BookModel
	if err := s.db.Find(&books).Error; err != nil {
		return nil, err
	}

	s.setCache(cacheKey, books, 5*time.Minute)
	return books, nil
}

// GetBookByID retrieves a catalog entry by its ID
func (s *BookService) GetBookByID(id int) (*models.BookModel, error) {
	cacheKey := fmt.Sprintf("book_%d", id)

	if cached, found := s.getCache(cacheKey); found {
		book := cached.(models.BookModel)
		return &book, nil
	}

	var book models.BookModel
	if err := s.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	s.setCache(cacheKey, book, 5*time.Minute)
	return &book, nil
}

// CreateBook creates a new catalog entry. New books start available.
func (s *BookService) CreateBook(book *models.BookModel) (*models.BookModel, error) {
	book.Id = 0
	book.IsAvailable = true
	book.UserId = nil

	if err := s.db.Create(book).Error; err != nil {
		return nil, err
	}

	s.invalidateCache("all_books")
	return book, nil
}

// UpdateBook updates the catalog fields of a book. Availability and the
// holder reference belong to the loan service and are never touched here.
func (s *BookService) UpdateBook(id int, updated *models.BookModel) (*models.BookModel, error) {
	var book models.BookModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("book %d: %w", id, ErrNotFound)
			}
			return err
		}

		return tx.Model(&book).Updates(map[string]interface{}{
			"title":     updated.Title,
			"author":    updated.Author,
			"publisher": updated.Publisher,
			"genre":     updated.Genre,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateBookCache(id)

	if err := s.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a catalog entry. A book with an open loan cannot be
// deleted; it has to be returned first.
func (s *BookService) DeleteBook(id int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book models.BookModel
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("book %d: %w", id, ErrNotFound)
			}
			return err
		}

		if !book.IsAvailable {
			return fmt.Errorf("book %d: %w", id, ErrBookBorrowed)
		}

		return tx.Delete(&models.BookModel{}, id).Error
	})
	if err != nil {
		return err
	}

	s.InvalidateBookCache(id)
	return nil
}

// ImportBooksFromExcel reads an xlsx upload and creates one book per row.
// Expected columns on the first sheet: Title | Author | Publisher | Genre,
// with a header row. Bad rows are collected, not fatal.
func (s *BookService) ImportBooksFromExcel(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}

	result := &ImportResult{Imported: 0, Errors: []string{}}

	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}

		get := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		book := models.BookModel{
			Title:       get(0),
			Author:      get(1),
			Publisher:   get(2),
			Genre:       get(3),
			IsAvailable: true,
		}

		if book.Title == "" || book.Author == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d: title and author are required", i+1))
			continue
		}

		if err := s.db.Create(&book).Error; err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	s.invalidateCache("all_books")
	return result, nil
}
