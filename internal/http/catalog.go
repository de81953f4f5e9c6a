package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/librarian/internal/entities"
)

// CatalogService defines the service operations the catalog
// controller needs.
type CatalogService interface {
	AddBookToCatalog(title, author, isbn string, totalCopies int) (bool, string)
	SearchBooksInCatalog(searchTerm, searchType string) []entities.Book
}

// CatalogLister provides read access to the full catalog.
type CatalogLister interface {
	GetAllBooks() ([]entities.Book, error)
}

type CatalogController struct {
	service CatalogService
	lister  CatalogLister
}

func NewCatalogController(service CatalogService, lister CatalogLister) *CatalogController {
	return &CatalogController{service: service, lister: lister}
}

// AddBookRequest is the request body for adding a book to the catalog.
type AddBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	TotalCopies int    `json:"total_copies"`
}

// AddBook adds a new book to the catalog.
// POST /api/books
func (cc *CatalogController) AddBook(c *gin.Context) {
	var req AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	// Field-level validation lives in the service so the messages stay
	// identical across every caller.
	success, message := cc.service.AddBookToCatalog(req.Title, req.Author, req.ISBN, req.TotalCopies)
	if !success {
		respondOutcome(c, false, message)
		return
	}
	c.JSON(http.StatusCreated, OutcomeResponse{Success: true, Message: message})
}

// ListBooks returns the full catalog.
// GET /api/books
func (cc *CatalogController) ListBooks(c *gin.Context) {
	books, err := cc.lister.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "total": len(books)})
}

// SearchBooks searches the catalog by title, author, or isbn.
// GET /api/books/search?q=<term>&type=<field>
func (cc *CatalogController) SearchBooks(c *gin.Context) {
	term := c.Query("q")
	searchType := c.DefaultQuery("type", "title")

	results := cc.service.SearchBooksInCatalog(term, searchType)
	c.JSON(http.StatusOK, gin.H{"books": results, "total": len(results)})
}
