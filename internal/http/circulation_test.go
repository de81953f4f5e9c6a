package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/librarian/internal/database"
	"github.com/openshelf/librarian/internal/database/books"
	"github.com/openshelf/librarian/internal/services"
)

func addCatalogBook(t *testing.T, service *services.Service, db *database.Database, title, isbn string, copies int) int {
	t.Helper()
	ok, msg := service.AddBookToCatalog(title, "Some Author", isbn, copies)
	require.True(t, ok, msg)

	book, err := books.NewRepository(db.DB).GetBookByISBN(isbn)
	require.NoError(t, err)
	return int(book.ID)
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCirculationController_Borrow(t *testing.T) {
	t.Run("successful borrow", func(t *testing.T) {
		service, db, cleanup := setupAPITest(t)
		defer cleanup()

		bookID := addCatalogBook(t, service, db, "Borrowable", "1234567890123", 2)

		controller := NewCirculationController(service)
		router := gin.New()
		router.POST("/api/borrow", controller.Borrow)

		w := postJSON(router, "/api/borrow", CirculationRequest{PatronID: "123456", BookID: bookID})

		assert.Equal(t, http.StatusOK, w.Code)

		var response OutcomeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Contains(t, response.Message, "Successfully borrowed")
		assert.Contains(t, response.Message, "Due date:")
	})

	t.Run("invalid patron ID returns 400", func(t *testing.T) {
		service, db, cleanup := setupAPITest(t)
		defer cleanup()

		bookID := addCatalogBook(t, service, db, "Borrowable", "1234567890123", 2)

		controller := NewCirculationController(service)
		router := gin.New()
		router.POST("/api/borrow", controller.Borrow)

		w := postJSON(router, "/api/borrow", CirculationRequest{PatronID: "12345", BookID: bookID})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response OutcomeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Success)
		assert.Equal(t, "Invalid patron ID. Must be exactly 6 digits.", response.Message)
	})

	t.Run("unknown book returns 400", func(t *testing.T) {
		service, _, cleanup := setupAPITest(t)
		defer cleanup()

		controller := NewCirculationController(service)
		router := gin.New()
		router.POST("/api/borrow", controller.Borrow)

		w := postJSON(router, "/api/borrow", CirculationRequest{PatronID: "123456", BookID: 999})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Book not found")
	})
}

func TestCirculationController_Return(t *testing.T) {
	t.Run("return after borrow reports fee", func(t *testing.T) {
		service, db, cleanup := setupAPITest(t)
		defer cleanup()

		bookID := addCatalogBook(t, service, db, "Round Trip", "1234567890123", 1)

		controller := NewCirculationController(service)
		router := gin.New()
		router.POST("/api/borrow", controller.Borrow)
		router.POST("/api/return", controller.Return)

		w := postJSON(router, "/api/borrow", CirculationRequest{PatronID: "123456", BookID: bookID})
		require.Equal(t, http.StatusOK, w.Code)

		w = postJSON(router, "/api/return", CirculationRequest{PatronID: "123456", BookID: bookID})

		assert.Equal(t, http.StatusOK, w.Code)

		var response OutcomeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Contains(t, response.Message, "late fee of $0.00")
	})

	t.Run("return without borrow returns 400", func(t *testing.T) {
		service, db, cleanup := setupAPITest(t)
		defer cleanup()

		bookID := addCatalogBook(t, service, db, "Never Borrowed", "1234567890123", 1)

		controller := NewCirculationController(service)
		router := gin.New()
		router.POST("/api/return", controller.Return)

		w := postJSON(router, "/api/return", CirculationRequest{PatronID: "123456", BookID: bookID})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not borrowed by this patron")
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		service, _, cleanup := setupAPITest(t)
		defer cleanup()

		controller := NewCirculationController(service)
		router := gin.New()
		router.POST("/api/return", controller.Return)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/return", bytes.NewReader([]byte("nope")))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})
}
