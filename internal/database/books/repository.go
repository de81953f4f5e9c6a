// Package books provides database operations for catalog management.
//
// This package implements the CatalogStore interface defined in
// internal/services/interfaces.go.
//
// # Interface Implementation
//
//	var _ services.CatalogStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/openshelf/librarian/internal/entities"
)

// SearchFields are the book columns search may match against.
var SearchFields = map[string]string{
	"title":  "title",
	"author": "author",
	"isbn":   "isbn",
}

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a new catalog entry.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookByISBN retrieves a book by its exact ISBN.
func (r *Repository) GetBookByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks retrieves the full catalog in insertion order.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// SearchBooksByField searches one column with a case-insensitive
// partial match, preserving datastore order. An unknown field returns
// an empty result rather than an error; the service treats both empty
// terms and unknown search types as empty searches.
func (r *Repository) SearchBooksByField(field, term string) ([]entities.Book, error) {
	column, ok := SearchFields[field]
	if !ok {
		return []entities.Book{}, nil
	}

	var books []entities.Book
	searchPattern := "%" + term + "%"
	err := r.db.
		Where("LOWER("+column+") LIKE LOWER(?)", searchPattern).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []entities.Book{}
	}
	return books, nil
}

// AdjustAvailableCopies shifts the available count by delta (-1 on
// borrow, +1 on return).
func (r *Repository) AdjustAvailableCopies(id uint, delta int) error {
	return r.db.Model(&entities.Book{}).
		Where("id = ?", id).
		UpdateColumn("available_copies", gorm.Expr("available_copies + ?", delta)).Error
}
