// Package borrows provides database operations for borrow records and
// overdue notices.
//
// This package implements the BorrowStore interface defined in
// internal/services/interfaces.go.
//
// # Interface Implementation
//
//	var _ services.BorrowStore = (*Repository)(nil)
package borrows

import (
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/librarian/internal/entities"
)

// Repository handles all borrow-record database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrow-record repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBorrowRecord inserts a new open borrow record.
func (r *Repository) CreateBorrowRecord(record *entities.BorrowRecord) error {
	return r.db.Create(record).Error
}

// GetOpenRecord returns the open record for a (patron, book) pair.
// There is at most one: borrowing checks for an existing open record
// before inserting.
func (r *Repository) GetOpenRecord(patronID string, bookID uint) (*entities.BorrowRecord, error) {
	var record entities.BorrowRecord
	err := r.db.
		Where("patron_id = ? AND book_id = ? AND return_date IS NULL", patronID, bookID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CountOpenRecords returns how many books a patron currently holds.
func (r *Repository) CountOpenRecords(patronID string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.BorrowRecord{}).
		Where("patron_id = ? AND return_date IS NULL", patronID).
		Count(&count).Error
	return count, err
}

// GetOpenRecordsForPatron returns a patron's outstanding loans with
// book details, oldest first.
func (r *Repository) GetOpenRecordsForPatron(patronID string) ([]entities.BorrowRecord, error) {
	var records []entities.BorrowRecord
	err := r.db.Preload("Book").
		Where("patron_id = ? AND return_date IS NULL", patronID).
		Order("borrow_date ASC").
		Find(&records).Error
	return records, err
}

// GetAllRecordsForPatron returns a patron's full borrowing history,
// open and closed, most recent first.
func (r *Repository) GetAllRecordsForPatron(patronID string) ([]entities.BorrowRecord, error) {
	var records []entities.BorrowRecord
	err := r.db.Preload("Book").
		Where("patron_id = ?", patronID).
		Order("borrow_date DESC").
		Find(&records).Error
	return records, err
}

// MarkReturned closes an open record by setting its return date.
func (r *Repository) MarkReturned(recordID uint, returnedAt time.Time) error {
	return r.db.Model(&entities.BorrowRecord{}).
		Where("id = ?", recordID).
		Update("return_date", returnedAt).Error
}

// SetDueDate rewrites the due date of an open record. Used by tests
// and librarian tooling to simulate or grant extensions.
func (r *Repository) SetDueDate(recordID uint, dueDate time.Time) error {
	return r.db.Model(&entities.BorrowRecord{}).
		Where("id = ?", recordID).
		Update("due_date", dueDate).Error
}

// ListOverdueOpenRecords returns every open record whose due date has
// passed, with book details loaded. Consumed by the overdue scan.
func (r *Repository) ListOverdueOpenRecords(now time.Time) ([]entities.BorrowRecord, error) {
	var records []entities.BorrowRecord
	err := r.db.Preload("Book").
		Where("return_date IS NULL AND due_date < ?", now).
		Order("due_date ASC").
		Find(&records).Error
	return records, err
}

// CreateOverdueNotice records that a notice was produced for an
// overdue loan.
func (r *Repository) CreateOverdueNotice(notice *entities.OverdueNotice) error {
	return r.db.Create(notice).Error
}

// HasRecentNotice reports whether a notice was already produced for
// the (patron, book) pair within the window. Keeps the daily scan from
// re-noticing the same loan.
func (r *Repository) HasRecentNotice(patronID string, bookID uint, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&entities.OverdueNotice{}).
		Where("patron_id = ? AND book_id = ? AND sent_at >= ?", patronID, bookID, since).
		Count(&count).Error
	return count > 0, err
}
