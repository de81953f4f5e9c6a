package http

import (
	"github.com/gin-gonic/gin"
)

// CirculationService defines the borrow/return operations.
type CirculationService interface {
	BorrowBookByPatron(patronID string, bookID int) (bool, string)
	ReturnBookByPatron(patronID string, bookID int) (bool, string)
}

type CirculationController struct {
	service CirculationService
}

func NewCirculationController(service CirculationService) *CirculationController {
	return &CirculationController{service: service}
}

// CirculationRequest is the request body for borrow and return.
type CirculationRequest struct {
	PatronID string `json:"patron_id"`
	BookID   int    `json:"book_id"`
}

// Borrow checks a book out to a patron.
// POST /api/borrow
func (cc *CirculationController) Borrow(c *gin.Context) {
	var req CirculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	success, message := cc.service.BorrowBookByPatron(req.PatronID, req.BookID)
	respondOutcome(c, success, message)
}

// Return processes a book return and reports the late fee.
// POST /api/return
func (cc *CirculationController) Return(c *gin.Context) {
	var req CirculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	success, message := cc.service.ReturnBookByPatron(req.PatronID, req.BookID)
	respondOutcome(c, success, message)
}
