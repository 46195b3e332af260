package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawonbufatim/storefront-server/src/logging"
)

// Upload rejection errors
var (
	// ErrInvalidFileType indicates the file is not an allowed image type
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrFileTooLarge indicates the file exceeds the configured size ceiling
	ErrFileTooLarge = errors.New("file too large")
)

// allowedImageTypes is the fixed MIME allow-list for uploads
var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// PublicPrefix is the URL path uploaded files are served under
const PublicPrefix = "/uploads"

// Store writes uploaded images to a local directory and serves back
// relative URLs
type Store struct {
	dir     string
	maxSize int64
	logger  zerolog.Logger
}

// NewStore creates an upload store rooted at dir, creating it if absent
func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{
		dir:     dir,
		maxSize: maxSize,
		logger:  logging.NewLogger("storage"),
	}, nil
}

// Dir returns the upload directory path
func (s *Store) Dir() string {
	return s.dir
}

// Save validates and persists one uploaded image. The stored name combines
// the field name, a millisecond timestamp and a random suffix so concurrent
// uploads cannot collide. Returns the relative URL to store on the entity.
func (s *Store) Save(field string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, fh.Size, s.maxSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Size is bounded by the ceiling check above, so buffering the whole
	// file is fine. Sniffing the content beats trusting the declared
	// Content-Type header.
	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", fmt.Errorf("%w: exceeds limit of %d", ErrFileTooLarge, s.maxSize)
	}

	mtype := mimetype.Detect(data)
	if !isAllowedImage(mtype) {
		return "", fmt.Errorf("%w: %s", ErrInvalidFileType, mtype.String())
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = mtype.Extension()
	}

	name := fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), uuid.New().String()[:8], ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	return PublicPrefix + "/" + name, nil
}

// Remove deletes the file behind a stored image URL. Failures are logged and
// swallowed: an orphaned file is acceptable, a failed request is not.
func (s *Store) Remove(imageURL string) {
	if imageURL == "" {
		return
	}
	// Base strips any path components, so a stored URL can never reach
	// outside the upload directory
	name := filepath.Base(strings.TrimPrefix(imageURL, PublicPrefix+"/"))
	if name == "." || name == "/" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("image_url", imageURL).Msg("failed to remove image file")
	}
}

func isAllowedImage(mtype *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}
