package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gwsanta/secret-santa-backend/config"
)

// SaveUpload stores an uploaded file under the given subdirectory with a
// uuid-based name and returns the stored path relative to the upload root.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAllowedExtension(ext) {
		return "", fmt.Errorf("file type %q not allowed", ext)
	}

	dir := filepath.Join(config.UploadPath, subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filepath.Join(subdir, name), nil
}

// ResolveUploadPath maps a stored relative path back to disk, rejecting
// anything that escapes the upload root.
func ResolveUploadPath(stored string) (string, error) {
	full := filepath.Clean(filepath.Join(config.UploadPath, stored))
	if !strings.HasPrefix(full, filepath.Clean(config.UploadPath)) {
		return "", fmt.Errorf("invalid file path")
	}
	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}

func isAllowedExtension(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf":
		return true
	}
	return false
}
