package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/openshelf/librarian/internal/entities"
)

// PayLateFees collects the fee owed on a book through the payment
// gateway. The gateway is never contacted when the patron ID is
// malformed or when no fee is owed. Gateway faults are caught here and
// surfaced as failure messages, never propagated.
func (s *Service) PayLateFees(patronID string, bookID int, gateway PaymentGateway) (bool, string, string) {
	if !IsValidPatronID(patronID) {
		return false, "Invalid patron ID. Must be exactly 6 digits.", ""
	}

	fee := s.CalculateLateFeeForBook(patronID, bookID)
	if fee.FeeAmount <= 0 {
		return false, "No late fees to pay for this book.", ""
	}

	book, err := s.lookupBook(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "Book not found.", ""
		}
		return false, databaseErrorMessage(err, "look up book"), ""
	}

	description := fmt.Sprintf("Late fees for '%s'", book.Title)
	success, transactionID, message, err := gateway.ProcessPayment(patronID, fee.FeeAmount, description)
	if err != nil {
		return false, fmt.Sprintf("Payment processing error: %v", err), ""
	}
	if !success {
		return false, fmt.Sprintf("Payment failed: %s", message), ""
	}

	// The gateway already took the money; a ledger failure is logged,
	// not surfaced as a payment failure.
	if s.ledger != nil {
		payment := &entities.FeePayment{
			PatronID:      patronID,
			BookID:        book.ID,
			TransactionID: transactionID,
			Amount:        fee.FeeAmount,
			PaidAt:        s.clock.Now(),
		}
		if err := s.ledger.RecordPayment(payment); err != nil {
			log.Printf("Database error (record fee payment %s): %v", transactionID, err)
		}
	}

	return true, message, transactionID
}

// PaymentHistory is a patron's settled late fees.
type PaymentHistory struct {
	PatronID  string                `json:"patron_id"`
	Payments  []entities.FeePayment `json:"payments"`
	TotalPaid float64               `json:"total_paid"`
}

// GetPaymentHistory returns a patron's recorded fee payments, most
// recent first. A badly-formatted patron ID returns nil.
func (s *Service) GetPaymentHistory(patronID string) *PaymentHistory {
	if !IsValidPatronID(patronID) {
		return nil
	}
	if s.ledger == nil {
		return &PaymentHistory{PatronID: patronID, Payments: []entities.FeePayment{}}
	}

	rows, err := s.ledger.GetPaymentsForPatron(patronID)
	if err != nil {
		log.Printf("Database error (load payment history): %v", err)
		return nil
	}
	total, err := s.ledger.TotalPaidForPatron(patronID)
	if err != nil {
		log.Printf("Database error (sum payments): %v", err)
		return nil
	}

	if rows == nil {
		rows = []entities.FeePayment{}
	}
	return &PaymentHistory{
		PatronID:  patronID,
		Payments:  rows,
		TotalPaid: total,
	}
}

// RefundLateFeePayment refunds a previously collected late fee. The
// amount is bounded by the maximum possible late fee; out-of-range
// amounts never reach the gateway.
func (s *Service) RefundLateFeePayment(transactionID string, amount float64, gateway PaymentGateway) (bool, string) {
	if amount <= 0 {
		return false, "Refund amount must be greater than 0."
	}
	if amount > MaxLateFee {
		return false, "Refund amount exceeds maximum late fee."
	}

	success, message, err := gateway.RefundPayment(transactionID, amount)
	if err != nil {
		return false, fmt.Sprintf("Refund processing error: %v", err)
	}
	if !success {
		return false, fmt.Sprintf("Refund failed: %s", message)
	}
	return true, message
}
