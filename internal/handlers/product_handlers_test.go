package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwincahya/hausjogja-backend/internal/models"
)

func TestCreateProduct(t *testing.T) {
	router, db := newTestApp(t)
	_, adminToken := createTestUser(t, db, "admin@hausjogja.com", models.RoleAdmin)
	_, userToken := createTestUser(t, db, "user@example.com", models.RoleUser)
	category := createTestCategory(t, db, "Menu Klasik", nil)
	categoryID := fmt.Sprint(category.ID)

	// Admin only.
	w := doForm(t, router, http.MethodPost, "/api/products", userToken, map[string]string{
		"name": "Thai Tea Small", "price": "6000", "categoryId": categoryID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Required fields.
	w = doForm(t, router, http.MethodPost, "/api/products", adminToken, map[string]string{"name": "Thai Tea Small"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide name, price and categoryId", decodeBody(t, w)["message"])

	// Negative price.
	w = doForm(t, router, http.MethodPost, "/api/products", adminToken, map[string]string{
		"name": "Thai Tea Small", "price": "-1", "categoryId": categoryID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown category.
	w = doForm(t, router, http.MethodPost, "/api/products", adminToken, map[string]string{
		"name": "Thai Tea Small", "price": "6000", "categoryId": "9999",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category not found", decodeBody(t, w)["message"])

	// Happy path: availability defaults to true.
	w = doForm(t, router, http.MethodPost, "/api/products", adminToken, map[string]string{
		"name": "Thai Tea Small", "price": "6000", "categoryId": categoryID,
		"description": "Teh khas Thailand",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "thai-tea-small", data["slug"])
	assert.Equal(t, float64(6000), data["price"])
	assert.Equal(t, true, data["isAvailable"])

	// Duplicate name.
	w = doForm(t, router, http.MethodPost, "/api/products", adminToken, map[string]string{
		"name": "Thai  Tea  Small", "price": "7000", "categoryId": categoryID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product already exists", decodeBody(t, w)["message"])

	// Explicit unavailability survives creation.
	w = doForm(t, router, http.MethodPost, "/api/products", adminToken, map[string]string{
		"name": "Taro Large", "price": "13000", "categoryId": categoryID, "isAvailable": "false",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var taro models.Product
	require.NoError(t, db.Where("slug = ?", "taro-large").First(&taro).Error)
	assert.False(t, taro.IsAvailable)
}

func TestGetProductsFilteredAndPaginated(t *testing.T) {
	router, db := newTestApp(t)
	klasik := createTestCategory(t, db, "Menu Klasik", nil)
	choco := createTestCategory(t, db, "Menu Choco", nil)

	for i := 1; i <= 15; i++ {
		createTestProduct(t, db, fmt.Sprintf("Thai Tea %02d", i), 6000, klasik.ID, true)
	}
	createTestProduct(t, db, "Choco Lava MILO Medium", 13000, choco.ID, true)

	// Page 2 of 16 records at limit 10 holds the remaining 6.
	w := doJSON(t, router, http.MethodGet, "/api/products?page=2&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["data"].([]interface{}), 6)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(16), pagination["total"])
	assert.Equal(t, float64(2), pagination["pages"])

	// Category slug filter is exact.
	w = doJSON(t, router, http.MethodGet, "/api/products?category=menu-choco", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	row := data[0].(map[string]interface{})
	assert.Equal(t, "Choco Lava MILO Medium", row["name"])
	require.NotNil(t, row["category"])
	assert.Equal(t, "menu-choco", row["category"].(map[string]interface{})["slug"])

	// Name substring filter.
	w = doJSON(t, router, http.MethodGet, "/api/products?search=Tea+01", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 1)

	// Both combined.
	w = doJSON(t, router, http.MethodGet, "/api/products?category=menu-klasik&search=Choco", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 0)
}

func TestGetProductBySlug(t *testing.T) {
	router, db := newTestApp(t)
	category := createTestCategory(t, db, "Menu Klasik", nil)
	createTestProduct(t, db, "Thai Tea Small", 6000, category.ID, true)

	w := doJSON(t, router, http.MethodGet, "/api/products/thai-tea-small", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Thai Tea Small", data["name"])
	assert.Equal(t, "menu-klasik", data["category"].(map[string]interface{})["slug"])

	w = doJSON(t, router, http.MethodGet, "/api/products/missing-slug", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeBody(t, w)["message"])
}

func TestUpdateProductMergePatch(t *testing.T) {
	router, db := newTestApp(t)
	_, adminToken := createTestUser(t, db, "admin@hausjogja.com", models.RoleAdmin)
	klasik := createTestCategory(t, db, "Menu Klasik", nil)
	choco := createTestCategory(t, db, "Menu Choco", nil)
	product := createTestProduct(t, db, "Thai Tea Small", 6000, klasik.ID, true)
	path := fmt.Sprintf("/api/products/%d", product.ID)

	// Only the supplied field changes.
	w := doForm(t, router, http.MethodPut, path, adminToken, map[string]string{"price": "7000"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(7000), data["price"])
	assert.Equal(t, "Thai Tea Small", data["name"])
	assert.Equal(t, "thai-tea-small", data["slug"])

	// Renaming recomputes the slug.
	w = doForm(t, router, http.MethodPut, path, adminToken, map[string]string{"name": "Thai Tea Mini"})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "thai-tea-mini", data["slug"])
	assert.Equal(t, float64(7000), data["price"])

	// A new category must exist.
	w = doForm(t, router, http.MethodPut, path, adminToken, map[string]string{"categoryId": "9999"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doForm(t, router, http.MethodPut, path, adminToken, map[string]string{"categoryId": fmt.Sprint(choco.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(choco.ID), data["categoryId"])

	// Toggling availability.
	w = doForm(t, router, http.MethodPut, path, adminToken, map[string]string{"isAvailable": "false"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.False(t, updated.IsAvailable)

	w = doForm(t, router, http.MethodPut, "/api/products/9999", adminToken, map[string]string{"price": "1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	router, db := newTestApp(t)
	_, adminToken := createTestUser(t, db, "admin@hausjogja.com", models.RoleAdmin)
	category := createTestCategory(t, db, "Menu Klasik", nil)
	product := createTestProduct(t, db, "Thai Tea Small", 6000, category.ID, true)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductsByCategoryFanOut(t *testing.T) {
	router, db := newTestApp(t)

	drinks := createTestCategory(t, db, "Menu Haus", nil)
	klasik := createTestCategory(t, db, "Menu Klasik", &drinks.ID)
	boba := createTestCategory(t, db, "Menu Boba", &drinks.ID)
	grandchild := createTestCategory(t, db, "Menu Boba Spesial", &boba.ID)
	food := createTestCategory(t, db, "Menu Haus Makanan", nil)

	createTestProduct(t, db, "Air Mineral", 4000, drinks.ID, true)
	createTestProduct(t, db, "Thai Tea Small", 6000, klasik.ID, true)
	createTestProduct(t, db, "Boba Brown Sugar Fresh Milk Medium", 14000, boba.ID, true)
	createTestProduct(t, db, "Boba Spesial Large", 18000, grandchild.ID, true)
	createTestProduct(t, db, "Bakar Coklat", 24000, food.ID, true)

	// Own products plus direct children, one level deep only:
	// the grandchild's product is excluded.
	w := doJSON(t, router, http.MethodGet, "/api/products/category/menu-haus", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	data := body["data"].([]interface{})
	names := make([]string, 0, len(data))
	for _, row := range data {
		names = append(names, row.(map[string]interface{})["name"].(string))
	}
	assert.ElementsMatch(t, []string{
		"Air Mineral",
		"Thai Tea Small",
		"Boba Brown Sugar Fresh Milk Medium",
	}, names)

	// The resolved category rides along with its children.
	category := body["category"].(map[string]interface{})
	assert.Equal(t, "menu-haus", category["slug"])
	assert.Len(t, category["children"].([]interface{}), 2)

	w = doJSON(t, router, http.MethodGet, "/api/products/category/unknown-menu", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decodeBody(t, w)["message"])
}
