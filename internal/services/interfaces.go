package services

import (
	"time"

	"github.com/openshelf/librarian/internal/entities"
)

// CatalogStore provides access to the book catalog.
type CatalogStore interface {
	CreateBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	GetBookByISBN(isbn string) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	SearchBooksByField(field, term string) ([]entities.Book, error)
	AdjustAvailableCopies(id uint, delta int) error
}

// BorrowStore provides access to borrow records.
type BorrowStore interface {
	CreateBorrowRecord(record *entities.BorrowRecord) error
	GetOpenRecord(patronID string, bookID uint) (*entities.BorrowRecord, error)
	CountOpenRecords(patronID string) (int64, error)
	GetOpenRecordsForPatron(patronID string) ([]entities.BorrowRecord, error)
	GetAllRecordsForPatron(patronID string) ([]entities.BorrowRecord, error)
	MarkReturned(recordID uint, returnedAt time.Time) error
}

// PaymentLedger records gateway-accepted late-fee payments.
type PaymentLedger interface {
	RecordPayment(payment *entities.FeePayment) error
	GetPaymentsForPatron(patronID string) ([]entities.FeePayment, error)
	TotalPaidForPatron(patronID string) (float64, error)
}

// PaymentGateway is the external payment collaborator. Declines are
// returned as a false success with a message; unexpected faults
// (connectivity and the like) come back as a non-nil error and are
// converted to failure results by the orchestration layer.
type PaymentGateway interface {
	ProcessPayment(patronID string, amount float64, description string) (success bool, transactionID string, message string, err error)
	RefundPayment(transactionID string, amount float64) (success bool, message string, err error)
}

// Clock abstracts wall-clock time so due dates and fee calculations
// are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
