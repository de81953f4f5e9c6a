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

	"github.com/openshelf/librarian/internal/database/books"
)

func TestCatalogController_AddBook(t *testing.T) {
	t.Run("creates book and returns 201", func(t *testing.T) {
		service, _, cleanup := setupAPITest(t)
		defer cleanup()

		controller := NewCatalogController(service, nil)
		router := gin.New()
		router.POST("/api/books", controller.AddBook)

		body, _ := json.Marshal(AddBookRequest{
			Title:       "The Go Programming Language",
			Author:      "Donovan and Kernighan",
			ISBN:        "9780134190440",
			TotalCopies: 3,
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response OutcomeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Contains(t, response.Message, "successfully added")
	})

	t.Run("validation failure returns 400 with message", func(t *testing.T) {
		service, _, cleanup := setupAPITest(t)
		defer cleanup()

		controller := NewCatalogController(service, nil)
		router := gin.New()
		router.POST("/api/books", controller.AddBook)

		body, _ := json.Marshal(AddBookRequest{
			Title:       "",
			Author:      "Somebody",
			ISBN:        "9780134190440",
			TotalCopies: 1,
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response OutcomeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Success)
		assert.Equal(t, "Title is required.", response.Message)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		service, _, cleanup := setupAPITest(t)
		defer cleanup()

		controller := NewCatalogController(service, nil)
		router := gin.New()
		router.POST("/api/books", controller.AddBook)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})
}

func TestCatalogController_ListBooks(t *testing.T) {
	t.Run("returns empty list when catalog is empty", func(t *testing.T) {
		service, db, cleanup := setupAPITest(t)
		defer cleanup()

		controller := NewCatalogController(service, books.NewRepository(db.DB))
		router := gin.New()
		router.GET("/api/books", controller.ListBooks)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(0), response["total"])
		assert.Empty(t, response["books"])
	})

	t.Run("returns books with total", func(t *testing.T) {
		service, db, cleanup := setupAPITest(t)
		defer cleanup()

		ok, msg := service.AddBookToCatalog("Book One", "Author One", "1111111111111", 1)
		require.True(t, ok, msg)
		ok, msg = service.AddBookToCatalog("Book Two", "Author Two", "2222222222222", 2)
		require.True(t, ok, msg)

		controller := NewCatalogController(service, books.NewRepository(db.DB))
		router := gin.New()
		router.GET("/api/books", controller.ListBooks)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(2), response["total"])
		assert.Len(t, response["books"], 2)
	})
}

func TestCatalogController_SearchBooks(t *testing.T) {
	t.Run("matches by title substring", func(t *testing.T) {
		service, _, cleanup := setupAPITest(t)
		defer cleanup()

		ok, msg := service.AddBookToCatalog("The Pragmatic Programmer", "Hunt and Thomas", "9780135957059", 1)
		require.True(t, ok, msg)

		controller := NewCatalogController(service, nil)
		router := gin.New()
		router.GET("/api/books/search", controller.SearchBooks)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/search?q=pragmatic", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(1), response["total"])
	})

	t.Run("type defaults to title", func(t *testing.T) {
		service, _, cleanup := setupAPITest(t)
		defer cleanup()

		ok, msg := service.AddBookToCatalog("Searchable", "Hidden Author", "3333333333333", 1)
		require.True(t, ok, msg)

		controller := NewCatalogController(service, nil)
		router := gin.New()
		router.GET("/api/books/search", controller.SearchBooks)

		// Author term against the default title field finds nothing
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/search?q=Hidden", nil)
		router.ServeHTTP(w, req)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(0), response["total"])

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/api/books/search?q=Hidden&type=author", nil)
		router.ServeHTTP(w, req)

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(1), response["total"])
	})

	t.Run("empty term returns empty list", func(t *testing.T) {
		service, _, cleanup := setupAPITest(t)
		defer cleanup()

		controller := NewCatalogController(service, nil)
		router := gin.New()
		router.GET("/api/books/search", controller.SearchBooks)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books/search", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(0), response["total"])
	})
}
