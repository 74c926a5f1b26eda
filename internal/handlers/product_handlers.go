package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dwincahya/hausjogja-backend/internal/models"
)

// CreateProduct is the handler for POST /api/products (admin only)
// The body is a multipart form so an image can ride along with the
// product fields.
func (h *Handlers) CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	priceRaw := c.PostForm("price")
	categoryIDRaw := c.PostForm("categoryId")
	if name == "" || priceRaw == "" || categoryIDRaw == "" {
		respondError(c, http.StatusBadRequest, "Please provide name, price and categoryId")
		return
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 {
		respondError(c, http.StatusBadRequest, "Price must be a non-negative number")
		return
	}
	categoryID, err := strconv.Atoi(categoryIDRaw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid categoryId")
		return
	}

	productSlug := Slugify(name)
	var existing models.Product
	err = h.DB.Where("slug = ?", productSlug).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusBadRequest, "Product already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, err)
		return
	}

	var category models.Category
	if err := h.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusBadRequest, "Category not found")
			return
		}
		serverError(c, err)
		return
	}

	product := models.Product{
		Name:        name,
		Slug:        productSlug,
		Price:       price,
		CategoryID:  uint(categoryID),
		IsAvailable: true,
	}
	if description, ok := c.GetPostForm("description"); ok {
		product.Description = &description
	}
	if raw, ok := c.GetPostForm("isAvailable"); ok {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "isAvailable must be a boolean")
			return
		}
		product.IsAvailable = available
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUploadedImage(c, file, "products")
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		product.Image = &path
	}

	if err := h.DB.Create(&product).Error; err != nil {
		serverError(c, err)
		return
	}

	respondData(c, http.StatusCreated, product)
}

// GetProducts is the handler for GET /api/products
// Paginated, newest first, optionally filtered by exact category slug
// (?category=) and/or name substring (?search=).
func (h *Handlers) GetProducts(c *gin.Context) {
	page, limit, offset := pageParams(c)

	filtered := func() *gorm.DB {
		q := h.DB.Model(&models.Product{})
		if category := c.Query("category"); category != "" {
			q = q.Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.slug = ?", category)
		}
		if search := c.Query("search"); search != "" {
			q = q.Where("products.name LIKE ?", "%"+search+"%")
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}

	products := []models.Product{}
	err := filtered().
		Preload("Category").
		Order("products.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	if err != nil {
		serverError(c, err)
		return
	}

	respondList(c, products, newPagination(page, limit, total))
}

// GetProductBySlug is the handler for GET /api/products/:slug
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	var product models.Product
	err := h.DB.Preload("Category").Where("slug = ?", c.Param("slug")).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		serverError(c, err)
		return
	}

	respondData(c, http.StatusOK, product)
}

// UpdateProduct is the handler for PUT /api/products/:id (admin only)
// Merge-patch over a multipart form: only supplied fields change.
// Replacing the image removes the old file best-effort after the
// database write.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		serverError(c, err)
		return
	}

	updates := map[string]interface{}{}

	if name, ok := c.GetPostForm("name"); ok && name != "" {
		newSlug := Slugify(name)
		var clash models.Product
		err := h.DB.Where("slug = ? AND id <> ?", newSlug, product.ID).First(&clash).Error
		if err == nil {
			respondError(c, http.StatusBadRequest, "Product already exists")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, err)
			return
		}
		updates["name"] = name
		updates["slug"] = newSlug
	}

	if raw, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			respondError(c, http.StatusBadRequest, "Price must be a non-negative number")
			return
		}
		updates["price"] = price
	}

	if description, ok := c.GetPostForm("description"); ok {
		updates["description"] = description
	}

	if raw, ok := c.GetPostForm("isAvailable"); ok {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "isAvailable must be a boolean")
			return
		}
		updates["is_available"] = available
	}

	if raw, ok := c.GetPostForm("categoryId"); ok {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid categoryId")
			return
		}
		var category models.Category
		if err := h.DB.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusBadRequest, "Category not found")
				return
			}
			serverError(c, err)
			return
		}
		updates["category_id"] = categoryID
	}

	var oldImage string
	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUploadedImage(c, file, "products")
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if product.Image != nil {
			oldImage = *product.Image
		}
		updates["image"] = path
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&product).Updates(updates).Error; err != nil {
			serverError(c, err)
			return
		}
		if err := h.DB.First(&product, id).Error; err != nil {
			serverError(c, err)
			return
		}
	}

	if _, replaced := updates["image"]; replaced {
		removeStoredImage(oldImage)
	}

	respondData(c, http.StatusOK, product)
}

// DeleteProduct is the handler for DELETE /api/products/:id (admin only)
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		serverError(c, err)
		return
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		serverError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Product deleted")
}

// GetProductsByCategory is the handler for GET /api/products/category/:slug
// One-level fan-out: the category's own products plus those of its
// direct children, not a recursive tree walk.
func (h *Handlers) GetProductsByCategory(c *gin.Context) {
	page, limit, offset := pageParams(c)

	var category models.Category
	err := h.DB.Preload("Children").Where("slug = ?", c.Param("slug")).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		serverError(c, err)
		return
	}

	categoryIDs := []uint{category.ID}
	for _, child := range category.Children {
		categoryIDs = append(categoryIDs, child.ID)
	}

	var total int64
	if err := h.DB.Model(&models.Product{}).Where("category_id IN ?", categoryIDs).Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}

	products := []models.Product{}
	err = h.DB.Where("category_id IN ?", categoryIDs).
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"data":       products,
		"category":   category,
		"pagination": newPagination(page, limit, total),
	})
}
