package handlers

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Handlers struct holds all dependencies for our handlers.
// The GORM handle is injected here instead of living in a global so
// tests can run against their own database.
type Handlers struct {
	DB *gorm.DB
}

// Slugify derives the URL-safe identifier from a human-readable name.
// It is deterministic and idempotent, and the one and only slug rule
// for both categories and products.
func Slugify(name string) string {
	return slug.Make(name)
}

// Pagination is the envelope block every paginated endpoint returns.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// pageParams reads ?page and ?limit with the usual defaults (1, 10).
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

func newPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// --- Response envelope ---
// Every endpoint answers {"status":"success"|"error", data?, message?},
// paginated ones add a "pagination" block.

func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func respondList(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data, "pagination": p})
}

func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "success", "message": message})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

// serverError logs the underlying failure and answers with a generic
// message; internals are never exposed to the client.
func serverError(c *gin.Context, err error) {
	log.Printf("server error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	respondError(c, http.StatusInternalServerError, "Server error")
}
