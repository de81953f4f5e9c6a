package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/librarian/internal/services"
)

// PatronService defines the reporting operations the patron
// controller needs.
type PatronService interface {
	GetPatronStatusReport(patronID string) *services.PatronStatusReport
	CalculateLateFeeForBook(patronID string, bookID int) services.LateFeeResult
	GetPaymentHistory(patronID string) *services.PaymentHistory
}

type PatronController struct {
	service PatronService
}

func NewPatronController(service PatronService) *PatronController {
	return &PatronController{service: service}
}

// StatusReport returns the patron's loans, fees, and history. A
// malformed patron ID yields an empty object, not an error.
// GET /api/patrons/:id
func (pc *PatronController) StatusReport(c *gin.Context) {
	report := pc.service.GetPatronStatusReport(c.Param("id"))
	if report == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, report)
}

// PaymentHistory returns the patron's settled late fees.
// GET /api/patrons/:id/payments
func (pc *PatronController) PaymentHistory(c *gin.Context) {
	history := pc.service.GetPaymentHistory(c.Param("id"))
	if history == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, history)
}

// LateFeeQuote returns the fee currently owed on one open loan.
// GET /api/patrons/:id/fees/:bookID
func (pc *PatronController) LateFeeQuote(c *gin.Context) {
	bookID, ok := parseIntParam(c, "bookID")
	if !ok {
		return
	}

	result := pc.service.CalculateLateFeeForBook(c.Param("id"), bookID)
	c.JSON(http.StatusOK, result)
}
