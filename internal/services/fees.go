package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

// Late-fee tiers: the first week overdue accrues at the daily rate,
// every day after at the escalated rate, capped at MaxLateFee.
const (
	FirstWeekOverdueDays = 7
	DailyRateFirstWeek   = 0.50
	DailyRateAfterWeek   = 1.00
	MaxLateFee           = 15.00
)

// LateFeeResult is the outcome of a late-fee calculation. Invalid
// inputs and missing records produce a zero fee with an explanatory
// status rather than a failure.
type LateFeeResult struct {
	FeeAmount   float64 `json:"fee_amount"`
	DaysOverdue int     `json:"days_overdue"`
	Status      string  `json:"status"`
}

// CalculateLateFeeForBook computes the fee currently owed on the open
// borrow record for the (patron, book) pair.
func (s *Service) CalculateLateFeeForBook(patronID string, bookID int) LateFeeResult {
	if !IsValidPatronID(patronID) {
		return LateFeeResult{Status: "Invalid patron ID"}
	}

	if _, err := s.lookupBook(bookID); err != nil {
		return LateFeeResult{Status: "Invalid book ID"}
	}

	record, err := s.borrows.GetOpenRecord(patronID, uint(bookID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LateFeeResult{Status: "No borrow record found"}
		}
		return LateFeeResult{Status: databaseErrorMessage(err, "look up borrow record")}
	}

	return s.feeForDueDate(record.DueDate, s.clock.Now())
}

func (s *Service) feeForDueDate(dueDate, now time.Time) LateFeeResult {
	return FeeForDueDate(dueDate, now)
}

// FeeForDueDate is the pure tier calculation shared by returns, fee
// quotes, patron reports, and the overdue scan.
func FeeForDueDate(dueDate, now time.Time) LateFeeResult {
	daysOverdue := OverdueDays(dueDate, now)
	if daysOverdue == 0 {
		return LateFeeResult{Status: "Book is on time. No late fee."}
	}

	firstWeek := daysOverdue
	if firstWeek > FirstWeekOverdueDays {
		firstWeek = FirstWeekOverdueDays
	}
	afterWeek := daysOverdue - firstWeek

	fee := DailyRateFirstWeek*float64(firstWeek) + DailyRateAfterWeek*float64(afterWeek)
	if fee > MaxLateFee {
		fee = MaxLateFee
	}
	fee = roundToCents(fee)

	return LateFeeResult{
		FeeAmount:   fee,
		DaysOverdue: daysOverdue,
		Status:      fmt.Sprintf("Book is %d day(s) overdue. Late fee: $%.2f.", daysOverdue, fee),
	}
}

// OverdueDays returns the whole days elapsed past the due date,
// floored, never negative.
func OverdueDays(dueDate, now time.Time) int {
	overdue := now.Sub(dueDate)
	if overdue <= 0 {
		return 0
	}
	return int(math.Floor(overdue.Hours() / 24))
}

func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
