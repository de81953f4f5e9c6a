package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/librarian/internal/services"
)

// PaymentService defines the payment orchestration operations.
type PaymentService interface {
	PayLateFees(patronID string, bookID int, gateway services.PaymentGateway) (bool, string, string)
	RefundLateFeePayment(transactionID string, amount float64, gateway services.PaymentGateway) (bool, string)
}

type PaymentController struct {
	service PaymentService
	gateway services.PaymentGateway
}

func NewPaymentController(service PaymentService, gateway services.PaymentGateway) *PaymentController {
	return &PaymentController{service: service, gateway: gateway}
}

// PayFeesRequest is the request body for paying late fees.
type PayFeesRequest struct {
	PatronID string `json:"patron_id"`
	BookID   int    `json:"book_id"`
}

// RefundRequest is the request body for refunding a payment.
type RefundRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

// PayFees collects the late fee owed on a book.
// POST /api/payments
func (pc *PaymentController) PayFees(c *gin.Context) {
	var req PayFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	success, message, transactionID := pc.service.PayLateFees(req.PatronID, req.BookID, pc.gateway)
	status := http.StatusOK
	if !success {
		status = http.StatusBadRequest
	}
	c.JSON(status, OutcomeResponse{Success: success, Message: message, TransactionID: transactionID})
}

// Refund refunds a prior late-fee payment.
// POST /api/refunds
func (pc *PaymentController) Refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	success, message := pc.service.RefundLateFeePayment(req.TransactionID, req.Amount, pc.gateway)
	respondOutcome(c, success, message)
}
