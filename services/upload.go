package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"labchat/config"
)

// MaxUploadSize caps avatar uploads at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// SaveUploadFile stores an uploaded avatar under the upload directory and
// returns its public URL path. Disallowed extensions and oversized files are
// rejected.
func SaveUploadFile(src io.Reader, filename string, userID uint) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type not allowed: %q", ext)
	}

	dir := config.Getenv("UPLOAD_DIR", "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("user_%d_%s%s", userID, time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if n > MaxUploadSize {
		os.Remove(path)
		return "", fmt.Errorf("file too large")
	}

	return "/uploads/" + name, nil
}
