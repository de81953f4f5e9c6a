package services

import (
	"github.com/openshelf/librarian/internal/entities"
)

// PatronStatusReport summarizes a patron's outstanding loans, accrued
// fees, and full borrowing history.
type PatronStatusReport struct {
	PatronID          string                  `json:"patron_id"`
	BorrowCount       int                     `json:"borrow_count"`
	CurrentlyBorrowed []entities.BorrowRecord `json:"currently_borrowed"`
	TotalLateFees     float64                 `json:"total_late_fees"`
	BorrowingHistory  []entities.BorrowRecord `json:"borrowing_history"`
}

// GetPatronStatusReport builds the report for a patron. A
// badly-formatted patron ID returns nil; a valid ID with no history
// returns a populated report with zero counts and empty lists.
func (s *Service) GetPatronStatusReport(patronID string) *PatronStatusReport {
	if !IsValidPatronID(patronID) {
		return nil
	}

	open, err := s.borrows.GetOpenRecordsForPatron(patronID)
	if err != nil {
		databaseErrorMessage(err, "load open records")
		return nil
	}
	history, err := s.borrows.GetAllRecordsForPatron(patronID)
	if err != nil {
		databaseErrorMessage(err, "load borrowing history")
		return nil
	}

	now := s.clock.Now()
	totalFees := 0.0
	for _, record := range open {
		totalFees += s.feeForDueDate(record.DueDate, now).FeeAmount
	}
	totalFees = roundToCents(totalFees)

	if open == nil {
		open = []entities.BorrowRecord{}
	}
	if history == nil {
		history = []entities.BorrowRecord{}
	}

	return &PatronStatusReport{
		PatronID:          patronID,
		BorrowCount:       len(open),
		CurrentlyBorrowed: open,
		TotalLateFees:     totalFees,
		BorrowingHistory:  history,
	}
}
