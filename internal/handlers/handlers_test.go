package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dwincahya/hausjogja-backend/internal/auth"
	"github.com/dwincahya/hausjogja-backend/internal/database"
	"github.com/dwincahya/hausjogja-backend/internal/handlers"
	"github.com/dwincahya/hausjogja-backend/internal/models"
	"github.com/dwincahya/hausjogja-backend/internal/routes"
)

var testDBCounter atomic.Int64

// newTestApp spins up the full router against a fresh in-memory SQLite
// database, so every test exercises the real ORM queries.
func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the shared in-memory database alive.
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	app := &handlers.Handlers{DB: db}
	return routes.SetupRouter(app), db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	t.Helper()

	var password models.Password
	require.NoError(t, password.Set("secret123"))

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: password.Hash,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func createTestCategory(t *testing.T, db *gorm.DB, name string, parentID *uint) models.Category {
	t.Helper()
	category := models.Category{
		Name:     name,
		Slug:     handlers.Slugify(name),
		ParentID: parentID,
	}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, categoryID uint, available bool) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Slug:        handlers.Slugify(name),
		Price:       price,
		CategoryID:  categoryID,
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// doJSON performs a JSON request against the router, with an optional
// bearer token.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doForm performs a multipart form request, the shape product and
// profile endpoints accept.
func doForm(t *testing.T, router *gin.Engine, method, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
