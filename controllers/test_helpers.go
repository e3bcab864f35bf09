package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/Mawaqit/models"
	"github.com/Mawaqit/stores"
)

var registerValidators sync.Once

// SetupTestDB creates a Postgres-backed store over sqlmock
func SetupTestDB(t *testing.T) (*stores.PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	store := stores.NewPostgresStore(goqu.New("postgres", db), func() time.Time { return fixedNow })

	cleanup := func() {
		db.Close()
	}

	return store, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	registerValidators.Do(func() {
		if err := RegisterBindingValidators(); err != nil {
			panic(err)
		}
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

// SetAuthenticatedUser sets the currentUser and admin values in the Gin context
// This simulates what the CheckAuth middleware does
func SetAuthenticatedUser(c *gin.Context, user models.AuthUser) {
	c.Set("currentUser", user)
	c.Set("admin", user.Admin)
}

func SetJSONBody(c *gin.Context, method string, body interface{}) {
	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}
	c.Request = httptest.NewRequest(method, "/", bytes.NewBuffer(payload))
	c.Request.Header.Set("Content-Type", "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v (%s)", err, w.Body.String())
	}
	return response
}
