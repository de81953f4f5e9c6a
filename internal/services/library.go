// Package services implements the library's circulation rules:
// catalog validation, borrow/return state transitions, late-fee
// calculation, search, patron reporting, and payment orchestration.
//
// Every operation returns a boolean-plus-message outcome (or a result
// struct) instead of an error; expected validation and business
// failures are values the caller branches on. Only the payment
// gateway can fault, and that fault is caught at the call site.
package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/openshelf/librarian/internal/entities"
)

const (
	// LoanPeriodDays is how long a patron may keep a book.
	LoanPeriodDays = 14

	// MaxBooksPerPatron caps concurrently open borrow records.
	MaxBooksPerPatron = 5

	// MaxTitleLength and MaxAuthorLength bound catalog fields.
	MaxTitleLength  = 200
	MaxAuthorLength = 100
)

var (
	patronIDPattern = regexp.MustCompile(`^\d{6}$`)
	isbnPattern     = regexp.MustCompile(`^\d{13}$`)
)

// Service is the business-rule layer. It owns all catalog and
// borrow-record mutations; the stores underneath carry no lifecycle
// logic of their own.
type Service struct {
	books   CatalogStore
	borrows BorrowStore
	ledger  PaymentLedger
	clock   Clock
}

// NewService wires the circulation service. A nil clock defaults to
// the system clock.
func NewService(books CatalogStore, borrows BorrowStore, ledger PaymentLedger, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		books:   books,
		borrows: borrows,
		ledger:  ledger,
		clock:   clock,
	}
}

// AddBookToCatalog validates and inserts a new catalog entry. Checks
// run in a fixed order and the first failure wins.
func (s *Service) AddBookToCatalog(title, author, isbn string, totalCopies int) (bool, string) {
	if title == "" {
		return false, "Title is required."
	}
	if author == "" {
		return false, "Author is required."
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return false, fmt.Sprintf("Title must be less than %d characters.", MaxTitleLength)
	}
	if utf8.RuneCountInString(author) > MaxAuthorLength {
		return false, fmt.Sprintf("Author must be less than %d characters.", MaxAuthorLength)
	}
	if !isbnPattern.MatchString(isbn) {
		return false, "ISBN must be exactly 13 digits."
	}

	if _, err := s.books.GetBookByISBN(isbn); err == nil {
		return false, "A book with this ISBN already exists."
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, databaseErrorMessage(err, "look up ISBN")
	}

	if totalCopies <= 0 {
		return false, "Total copies must be a positive integer."
	}

	book := &entities.Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
	if err := s.books.CreateBook(book); err != nil {
		return false, databaseErrorMessage(err, "insert book")
	}

	return true, fmt.Sprintf("Book %q successfully added to the catalog.", title)
}

// BorrowBookByPatron checks out a copy: decrements availability and
// opens a borrow record due in LoanPeriodDays.
func (s *Service) BorrowBookByPatron(patronID string, bookID int) (bool, string) {
	if !IsValidPatronID(patronID) {
		return false, "Invalid patron ID. Must be exactly 6 digits."
	}

	book, err := s.lookupBook(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "Book not found."
		}
		return false, databaseErrorMessage(err, "look up book")
	}

	if book.AvailableCopies <= 0 {
		return false, "This book is currently not available."
	}

	// At most one open record per (patron, book) pair.
	if _, err := s.borrows.GetOpenRecord(patronID, book.ID); err == nil {
		return false, "You have already borrowed this book."
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, databaseErrorMessage(err, "look up open record")
	}

	openCount, err := s.borrows.CountOpenRecords(patronID)
	if err != nil {
		return false, databaseErrorMessage(err, "count open records")
	}
	if openCount >= MaxBooksPerPatron {
		return false, fmt.Sprintf("You have reached the maximum borrowing limit of %d books.", MaxBooksPerPatron)
	}

	now := s.clock.Now()
	record := &entities.BorrowRecord{
		PatronID:   patronID,
		BookID:     book.ID,
		BorrowDate: now,
		DueDate:    now.AddDate(0, 0, LoanPeriodDays),
	}
	if err := s.borrows.CreateBorrowRecord(record); err != nil {
		return false, databaseErrorMessage(err, "create borrow record")
	}
	if err := s.books.AdjustAvailableCopies(book.ID, -1); err != nil {
		return false, databaseErrorMessage(err, "decrement available copies")
	}

	return true, fmt.Sprintf("Successfully borrowed %q. Due date: %s.", book.Title, record.DueDate.Format("2006-01-02"))
}

// ReturnBookByPatron closes the open borrow record, restores
// availability, and reports the late fee owed.
func (s *Service) ReturnBookByPatron(patronID string, bookID int) (bool, string) {
	if !IsValidPatronID(patronID) {
		return false, "Invalid patron ID. Must be exactly 6 digits."
	}
	if bookID <= 0 {
		return false, "Invalid book ID. Must be a positive integer."
	}

	book, err := s.lookupBook(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "Book not found."
		}
		return false, databaseErrorMessage(err, "look up book")
	}

	record, err := s.borrows.GetOpenRecord(patronID, book.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "Book was not borrowed by this patron and is unable to be returned."
		}
		return false, databaseErrorMessage(err, "look up borrow record")
	}

	now := s.clock.Now()
	fee := s.feeForDueDate(record.DueDate, now)

	if err := s.borrows.MarkReturned(record.ID, now); err != nil {
		return false, databaseErrorMessage(err, "close borrow record")
	}
	if err := s.books.AdjustAvailableCopies(book.ID, 1); err != nil {
		return false, databaseErrorMessage(err, "increment available copies")
	}

	return true, fmt.Sprintf("Returned book successfully with a late fee of $%.2f.", fee.FeeAmount)
}

func (s *Service) lookupBook(bookID int) (*entities.Book, error) {
	if bookID <= 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.books.GetBookByID(uint(bookID))
}

// IsValidPatronID reports whether the ID is exactly 6 numeric digits.
func IsValidPatronID(patronID string) bool {
	return patronIDPattern.MatchString(patronID)
}

// databaseErrorMessage logs an unexpected datastore failure and
// returns the caller-facing message. Business callers get a stable
// string, not the raw error.
func databaseErrorMessage(err error, context string) string {
	log.Printf("Database error (%s): %v", context, err)
	return "Unexpected database error. Please try again."
}
