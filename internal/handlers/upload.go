package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dwincahya/hausjogja-backend/internal/models"
)

// uploadRoot is where stored files live on disk; the /uploads static
// route serves it.
const uploadRoot = "./public/uploads"

// maxImageSize caps uploads at 5MB.
const maxImageSize = 5 << 20

// saveUploadedImage stores an uploaded image under
// public/uploads/<subdir>/ with a unique filename and returns the
// public path to record in the database (e.g. /uploads/products/x.png).
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return "", fmt.Errorf("only image files are allowed")
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image must be smaller than 5MB")
	}

	dir := filepath.Join(uploadRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), nil
}

// removeStoredImage deletes a previously stored file after its database
// row has moved on to a new path. Best effort only: a failure is logged
// and never rolls back or blocks the write that replaced it.
func removeStoredImage(publicPath string) {
	if publicPath == "" || publicPath == models.DefaultProfileImage {
		return
	}
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok {
		return
	}
	if err := os.Remove(filepath.Join(uploadRoot, rel)); err != nil && !os.IsNotExist(err) {
		log.Printf("could not remove replaced image %s: %v", publicPath, err)
	}
}
