package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dwincahya/hausjogja-backend/internal/models"
)

// productCount returns how many products reference the given category.
func (h *Handlers) productCount(categoryID uint) (int64, error) {
	var n int64
	err := h.DB.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

// annotateCounts fills the virtual ProductCount on a category and each
// of its loaded children.
func (h *Handlers) annotateCounts(cat *models.Category) error {
	n, err := h.productCount(cat.ID)
	if err != nil {
		return err
	}
	cat.ProductCount = n
	for i := range cat.Children {
		n, err := h.productCount(cat.Children[i].ID)
		if err != nil {
			return err
		}
		cat.Children[i].ProductCount = n
	}
	return nil
}

// CreateCategory is the handler for POST /api/categories (admin only)
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide category name")
		return
	}

	// The slug is the canonical uniqueness key: two names that collapse
	// to the same slug are the same category.
	catSlug := Slugify(input.Name)
	var existing models.Category
	err := h.DB.Where("slug = ?", catSlug).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusBadRequest, "Category already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, err)
		return
	}

	if input.ParentID != nil {
		var parent models.Category
		if err := h.DB.First(&parent, *input.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusBadRequest, "Parent category not found")
				return
			}
			serverError(c, err)
			return
		}
	}

	category := models.Category{
		Name:     input.Name,
		Slug:     catSlug,
		ParentID: input.ParentID,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		serverError(c, err)
		return
	}

	respondData(c, http.StatusCreated, category)
}

// GetCategories is the handler for GET /api/categories
// Paginated top-level categories, newest first, each annotated with its
// product count and its subcategories (annotated the same way).
func (h *Handlers) GetCategories(c *gin.Context) {
	page, limit, offset := pageParams(c)

	var total int64
	if err := h.DB.Model(&models.Category{}).Where("parent_id IS NULL").Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}

	categories := []models.Category{}
	err := h.DB.Where("parent_id IS NULL").
		Preload("Children").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&categories).Error
	if err != nil {
		serverError(c, err)
		return
	}

	for i := range categories {
		if err := h.annotateCounts(&categories[i]); err != nil {
			serverError(c, err)
			return
		}
	}

	respondList(c, categories, newPagination(page, limit, total))
}

// categoryDetail adds the trimmed product rows to a category response.
type categoryDetail struct {
	models.Category
	Products []models.ProductSummary `json:"products"`
}

// GetCategoryByID is the handler for GET /api/categories/:id
func (h *Handlers) GetCategoryByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var category models.Category
	if err := h.DB.Preload("Children").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		serverError(c, err)
		return
	}

	if err := h.annotateCounts(&category); err != nil {
		serverError(c, err)
		return
	}

	// Direct products only, trimmed to the fields the menu needs.
	products := []models.ProductSummary{}
	err = h.DB.Model(&models.Product{}).
		Select("id", "name", "price", "image", "is_available").
		Where("category_id = ?", category.ID).
		Scan(&products).Error
	if err != nil {
		serverError(c, err)
		return
	}

	respondData(c, http.StatusOK, categoryDetail{Category: category, Products: products})
}

// UpdateCategory is the handler for PUT /api/categories/:id (admin only)
// Merge-patch: only supplied fields change. Renaming recomputes the
// slug; a new parent is validated to exist; parentId 0 detaches the
// category to the top level.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		serverError(c, err)
		return
	}

	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}

	if input.Name != nil && *input.Name != "" {
		newSlug := Slugify(*input.Name)
		var clash models.Category
		err := h.DB.Where("slug = ? AND id <> ?", newSlug, category.ID).First(&clash).Error
		if err == nil {
			respondError(c, http.StatusBadRequest, "Category already exists")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			serverError(c, err)
			return
		}
		updates["name"] = *input.Name
		updates["slug"] = newSlug
	}

	if input.ParentID != nil {
		if *input.ParentID == 0 {
			updates["parent_id"] = nil
		} else {
			var parent models.Category
			if err := h.DB.First(&parent, *input.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					respondError(c, http.StatusBadRequest, "Parent category not found")
					return
				}
				serverError(c, err)
				return
			}
			updates["parent_id"] = *input.ParentID
		}
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&category).Updates(updates).Error; err != nil {
			serverError(c, err)
			return
		}
		if err := h.DB.First(&category, id).Error; err != nil {
			serverError(c, err)
			return
		}
	}

	respondData(c, http.StatusOK, category)
}

// DeleteCategory is the handler for DELETE /api/categories/:id (admin only)
// A category with products or subcategories cannot be deleted; those
// must be cleaned up first.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		serverError(c, err)
		return
	}

	products, err := h.productCount(category.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	var children int64
	if err := h.DB.Model(&models.Category{}).Where("parent_id = ?", category.ID).Count(&children).Error; err != nil {
		serverError(c, err)
		return
	}
	if products > 0 || children > 0 {
		respondError(c, http.StatusBadRequest, "Cannot delete category with products or subcategories")
		return
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		serverError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Category deleted")
}
