// Package payments provides the simulated payment gateway used for
// late-fee collection. It honors the collaborator contract the
// service layer expects: declines come back as unsuccessful results,
// simulated outages as errors.
package payments

import (
	"fmt"
	"math/rand"
	"regexp"
	"sync"
	"time"
)

// Transaction IDs look like txn_<patron>_<unix timestamp>. Refunds
// validate the shape loosely before accepting an ID.
var transactionIDPattern = regexp.MustCompile(`^txn_\d{6}_\d+$`)

// Gateway simulates an external payment processor. A non-zero failure
// rate injects random declines and outages; leave it at zero for
// deterministic behavior.
type Gateway struct {
	failureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGateway creates a simulated gateway. failureRate is the
// probability in [0, 1] that a payment randomly fails.
func NewGateway(failureRate float64) *Gateway {
	return &Gateway{
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ProcessPayment charges a patron. Amounts must be positive; anything
// else is declined without a transaction ID.
func (g *Gateway) ProcessPayment(patronID string, amount float64, description string) (bool, string, string, error) {
	if amount <= 0 {
		return false, "", "Invalid amount: must be greater than 0", nil
	}

	if g.injectFailure() {
		if g.injectFailure() {
			return false, "", "", fmt.Errorf("payment gateway unavailable")
		}
		return false, "", "Payment declined: insufficient funds", nil
	}

	transactionID := fmt.Sprintf("txn_%s_%d", patronID, time.Now().Unix())
	message := fmt.Sprintf("Payment of $%.2f processed successfully", amount)
	return true, transactionID, message, nil
}

// RefundPayment refunds a prior charge. The transaction ID is
// validated against the generated format only; the gateway keeps no
// charge history.
func (g *Gateway) RefundPayment(transactionID string, amount float64) (bool, string, error) {
	if !transactionIDPattern.MatchString(transactionID) {
		return false, "Invalid transaction ID", nil
	}
	if amount <= 0 {
		return false, "Invalid refund amount", nil
	}

	if g.injectFailure() {
		return false, "", fmt.Errorf("payment gateway unavailable")
	}

	message := fmt.Sprintf("Refund of $%.2f processed successfully. Refund ID: refund_%s", amount, transactionID)
	return true, message, nil
}

func (g *Gateway) injectFailure() bool {
	if g.failureRate <= 0 {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < g.failureRate
}
