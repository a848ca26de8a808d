package tutor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotImage      = errors.New("file is not an image")
	ErrImageTooLarge = errors.New("image is too large")
)

// Attachment is an image staged for the next tutor turn.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// LoadImage reads path and checks that its content sniffs as an image.
// maxBytes <= 0 disables the size check.
func LoadImage(path string, maxBytes int64) (Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return Attachment{}, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return Attachment{}, fmt.Errorf("%s is %d bytes (limit %d): %w", path, info.Size(), maxBytes, ErrImageTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("read image: %w", err)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Attachment{}, fmt.Errorf("%s detected as %s: %w", path, mtype.String(), ErrNotImage)
	}

	return Attachment{
		Name:     filepath.Base(path),
		MIMEType: mtype.String(),
		Data:     data,
	}, nil
}
