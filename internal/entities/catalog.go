package entities

import "time"

// Book is a catalog entry. AvailableCopies moves between 0 and
// TotalCopies as copies are borrowed and returned; catalog entries are
// never deleted.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:200" json:"title"`
	Author          string    `gorm:"index;size:100" json:"author"`
	ISBN            string    `gorm:"uniqueIndex;size:13" json:"isbn"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BorrowRecord tracks one checkout of one book copy by one patron.
// ReturnDate is nil while the book is out. Records are never deleted;
// closed records form the patron's borrowing history.
type BorrowRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	PatronID   string     `gorm:"index;size:6" json:"patron_id"`
	BookID     uint       `gorm:"index" json:"book_id"`
	Book       Book       `gorm:"foreignKey:BookID" json:"book,omitempty"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// FeePayment is a ledger row written after the gateway accepts a
// late-fee payment. Borrow records are never updated by payments; the
// ledger is the only persisted trace of settlement.
type FeePayment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PatronID      string    `gorm:"index;size:6" json:"patron_id"`
	BookID        uint      `gorm:"index" json:"book_id"`
	TransactionID string    `gorm:"size:64" json:"transaction_id"`
	Amount        float64   `json:"amount"`
	PaidAt        time.Time `json:"paid_at"`
}

// OverdueNotice records that the overdue scan flagged an open record.
type OverdueNotice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PatronID    string    `gorm:"index;size:6" json:"patron_id"`
	BookID      uint      `gorm:"index" json:"book_id"`
	DaysOverdue int       `json:"days_overdue"`
	FeeAmount   float64   `json:"fee_amount"`
	SentAt      time.Time `json:"sent_at"`
}
