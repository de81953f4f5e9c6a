package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBooksInCatalog(t *testing.T) {
	service, _, _, cleanup := setupTestService(t)
	defer cleanup()

	addTestBook(t, service, "The Great Adventure", "9999234567890", 1)
	ok, _ := service.AddBookToCatalog("Harry Potter", "JK Rowling", "9999234567891", 2)
	require.True(t, ok)

	t.Run("title substring, case-insensitive", func(t *testing.T) {
		results := service.SearchBooksInCatalog("great adv", "title")
		require.Len(t, results, 1)
		assert.Equal(t, "The Great Adventure", results[0].Title)
	})

	t.Run("author substring", func(t *testing.T) {
		results := service.SearchBooksInCatalog("Rowling", "author")
		require.Len(t, results, 1)
		assert.Equal(t, "Harry Potter", results[0].Title)
	})

	t.Run("isbn substring", func(t *testing.T) {
		// Substring matching applies to ISBN as well
		results := service.SearchBooksInCatalog("99992345678", "isbn")
		assert.Len(t, results, 2)

		results = service.SearchBooksInCatalog("9999234567891", "isbn")
		require.Len(t, results, 1)
		assert.Equal(t, "9999234567891", results[0].ISBN)
	})

	t.Run("empty term", func(t *testing.T) {
		results := service.SearchBooksInCatalog("", "title")
		assert.Empty(t, results)
	})

	t.Run("unknown search type", func(t *testing.T) {
		results := service.SearchBooksInCatalog("Great", "year")
		assert.Empty(t, results)
	})

	t.Run("no matches", func(t *testing.T) {
		results := service.SearchBooksInCatalog("NonexistentBookXYZ123", "title")
		assert.Empty(t, results)
	})
}

func TestGetPatronStatusReport(t *testing.T) {
	service, _, clock, cleanup := setupTestService(t)
	defer cleanup()

	t.Run("invalid patron id returns nil", func(t *testing.T) {
		assert.Nil(t, service.GetPatronStatusReport("123"))
		assert.Nil(t, service.GetPatronStatusReport("1234567890123"))
		assert.Nil(t, service.GetPatronStatusReport("12345a"))
	})

	t.Run("patron with no history gets zeroed report", func(t *testing.T) {
		report := service.GetPatronStatusReport("654321")

		require.NotNil(t, report)
		assert.Equal(t, "654321", report.PatronID)
		assert.Equal(t, 0, report.BorrowCount)
		assert.Equal(t, 0.0, report.TotalLateFees)
		assert.Empty(t, report.CurrentlyBorrowed)
		assert.Empty(t, report.BorrowingHistory)
	})

	t.Run("open loans, fees, and history", func(t *testing.T) {
		patronID := "400002"

		firstID := addTestBook(t, service, "Status Book A", "8882234567890", 1)
		secondID := addTestBook(t, service, "Status Book B", "8882234567891", 1)
		returnedID := addTestBook(t, service, "Status Book C", "8882234567892", 1)

		ok, _ := service.BorrowBookByPatron(patronID, int(returnedID))
		require.True(t, ok)
		ok, _ = service.ReturnBookByPatron(patronID, int(returnedID))
		require.True(t, ok)

		// First loan ends up 10 days overdue, the second 5
		ok, _ = service.BorrowBookByPatron(patronID, int(firstID))
		require.True(t, ok)
		clock.now = clock.now.AddDate(0, 0, 5)
		ok, _ = service.BorrowBookByPatron(patronID, int(secondID))
		require.True(t, ok)
		clock.now = clock.now.AddDate(0, 0, LoanPeriodDays+5)

		report := service.GetPatronStatusReport(patronID)

		require.NotNil(t, report)
		assert.Equal(t, patronID, report.PatronID)
		assert.Equal(t, 2, report.BorrowCount)
		assert.Len(t, report.CurrentlyBorrowed, 2)
		// 10 days: 7*0.50 + 3*1.00 = 6.50; 5 days: 2.50; total 9.00
		assert.Equal(t, 9.00, report.TotalLateFees)
		assert.Len(t, report.BorrowingHistory, 3)

		for _, record := range report.CurrentlyBorrowed {
			assert.NotEmpty(t, record.Book.Title)
			assert.Nil(t, record.ReturnDate)
		}
	})
}
