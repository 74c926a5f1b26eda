package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dwincahya/hausjogja-backend/internal/auth"
	"github.com/dwincahya/hausjogja-backend/internal/models"
)

// --- Inputs ---

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userProfile is the public projection of a user row plus a fresh token
// where one is issued.
type userProfile struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Image *string `json:"image,omitempty"`
	Token string  `json:"token,omitempty"`
}

// Register is the handler for POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide name, email and password")
		return
	}

	// Email is the account's unique key.
	var existing models.User
	err := h.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, err)
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		serverError(c, err)
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: password.Hash,
		Role:     models.RoleUser,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		serverError(c, err)
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}

	respondData(c, http.StatusCreated, userProfile{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	})
}

// Login is the handler for POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer for unknown email and wrong password.
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		serverError(c, err)
		return
	}

	password := models.Password{Hash: user.Password}
	match, err := password.Matches(input.Password)
	if err != nil {
		serverError(c, err)
		return
	}
	if !match {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}

	respondData(c, http.StatusOK, userProfile{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Image: user.Image,
		Token: token,
	})
}

// GetProfile is the handler for GET /api/auth/profile
func (h *Handlers) GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"image":     user.Image,
		"createdAt": user.CreatedAt,
	})
}

// UpdateProfile is the handler for PUT /api/auth/profile
// Merge-patch over a multipart form: only supplied fields change.
// An uploaded "image" file replaces the profile picture; the old file
// is removed from disk only after the database write succeeds.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if name, ok := c.GetPostForm("name"); ok && name != "" {
		updates["name"] = name
	}
	if email, ok := c.GetPostForm("email"); ok && email != "" {
		updates["email"] = email
	}
	if plaintext, ok := c.GetPostForm("password"); ok && plaintext != "" {
		if len(plaintext) < 6 {
			respondError(c, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}
		var password models.Password
		if err := password.Set(plaintext); err != nil {
			serverError(c, err)
			return
		}
		updates["password"] = password.Hash
	}

	var oldImage string
	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUploadedImage(c, file, "profile")
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if user.Image != nil {
			oldImage = *user.Image
		}
		updates["image"] = path
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			serverError(c, err)
			return
		}
		if err := h.DB.First(&user, userID).Error; err != nil {
			serverError(c, err)
			return
		}
	}

	// Post-commit cleanup; never blocks the response.
	if _, replaced := updates["image"]; replaced {
		removeStoredImage(oldImage)
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}

	respondData(c, http.StatusOK, userProfile{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Image: user.Image,
		Token: token,
	})
}

// GetUsers is the handler for GET /api/auth/users (admin only)
func (h *Handlers) GetUsers(c *gin.Context) {
	page, limit, offset := pageParams(c)

	var total int64
	if err := h.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}

	users := []models.User{}
	if err := h.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		serverError(c, err)
		return
	}

	respondList(c, users, newPagination(page, limit, total))
}

// DeleteUser is the handler for DELETE /api/auth/users/:id (admin only)
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, err)
		return
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		serverError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "User deleted")
}
