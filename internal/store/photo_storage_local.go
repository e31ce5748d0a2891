package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

// LocalPhotoRoute is the server route serving signed local photo urls.
const LocalPhotoRoute = "/api/photos/"

// ErrInvalidPhotoKey is returned for keys escaping the photo directory.
var ErrInvalidPhotoKey = errors.New("invalid photo key")

type localPhotoStorage struct {
	dir       string
	publicURL string
	hashKey   string
	logger    *logger.Logger
	now       func() time.Time
}

// NewLocalPhotoStorage keeps photos below dir. Download urls point at
// publicURL + [LocalPhotoRoute] and are signed with hashKey.
func NewLocalPhotoStorage(dir, publicURL, hashKey string, logger *logger.Logger) (PhotoStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating photo directory: %w", err)
	}

	return &localPhotoStorage{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		hashKey:   hashKey,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func (s *localPhotoStorage) filePath(key string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != key {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhotoKey, key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}

func (s *localPhotoStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	log := logger.FromContext(ctx)

	p, err := s.filePath(key)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("error creating photo directory: %w", err)
	}

	// write to a temp file first so readers never see a partial photo
	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("error creating photo file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		log.Err(err).Str("func", "localPhotoStorage.Put").Str("key", key).Msg("failed to write photo")
		return fmt.Errorf("error writing photo: %w", err)
	}

	if err = os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("error storing photo: %w", err)
	}

	log.Debug().Str("func", "localPhotoStorage.Put").Str("key", key).Str("content_type", contentType).Int64("bytes", written).Msg("photo stored")
	return nil
}

func (s *localPhotoStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.filePath(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error opening photo: %w", err)
	}
	return f, nil
}

// SignedURL returns publicURL/api/photos/<key>?exp=<unix>&sig=<hmac>.
func (s *localPhotoStorage) SignedURL(_ context.Context, key string, ttl time.Duration) (string, time.Time, error) {
	if _, err := s.filePath(key); err != nil {
		return "", time.Time{}, err
	}

	expires := s.now().Add(ttl).Truncate(time.Second)
	query := url.Values{}
	query.Set("exp", strconv.FormatInt(expires.Unix(), 10))
	query.Set("sig", utils.SignPath(key, expires, s.hashKey))

	return s.publicURL + LocalPhotoRoute + key + "?" + query.Encode(), expires, nil
}

func (s *localPhotoStorage) Delete(_ context.Context, key string) error {
	p, err := s.filePath(key)
	if err != nil {
		return err
	}

	if err = os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error deleting photo: %w", err)
	}
	return nil
}
