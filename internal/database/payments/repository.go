// Package payments provides database operations for the late-fee
// payment ledger.
package payments

import (
	"gorm.io/gorm"

	"github.com/openshelf/librarian/internal/entities"
)

// Repository handles fee-payment ledger operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new payment-ledger repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RecordPayment appends a ledger row for a gateway-accepted payment.
func (r *Repository) RecordPayment(payment *entities.FeePayment) error {
	return r.db.Create(payment).Error
}

// GetPaymentsForPatron returns a patron's payment history, most
// recent first.
func (r *Repository) GetPaymentsForPatron(patronID string) ([]entities.FeePayment, error) {
	var rows []entities.FeePayment
	err := r.db.Where("patron_id = ?", patronID).Order("paid_at DESC").Find(&rows).Error
	return rows, err
}

// TotalPaidForPatron sums everything a patron has paid in late fees.
func (r *Repository) TotalPaidForPatron(patronID string) (float64, error) {
	var total float64
	err := r.db.Model(&entities.FeePayment{}).
		Where("patron_id = ?", patronID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
