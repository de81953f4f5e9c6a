package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/librarian/internal/database"
	"github.com/openshelf/librarian/internal/database/books"
	"github.com/openshelf/librarian/internal/database/borrows"
	"github.com/openshelf/librarian/internal/database/payments"
	"github.com/openshelf/librarian/internal/services"
)

// setupAPITest creates a throwaway database and a fully wired service
// for controller tests.
func setupAPITest(t *testing.T) (*services.Service, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_api_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := services.NewService(
		books.NewRepository(db.DB),
		borrows.NewRepository(db.DB),
		payments.NewRepository(db.DB),
		nil,
	)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return service, db, cleanup
}

func TestRespondOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success is 200", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondOutcome(c, true, "done")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "done")
	})

	t.Run("failure is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondOutcome(c, false, "nope")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})
}

func TestParseIntParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid integer", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "42"}}

		value, ok := parseIntParam(c, "id")
		assert.True(t, ok)
		assert.Equal(t, 42, value)
	})

	t.Run("invalid integer responds 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		_, ok := parseIntParam(c, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
