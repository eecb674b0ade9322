// Package media sube archivos al blob store privado y emite URLs firmadas.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare-hub/internal/ports/blob"
)

const (
	DefaultMaxBytes = 10 << 20
	DefaultTTL      = 15 * time.Minute
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrTooLarge           = errors.New("file too large")
	ErrUnsupportedContent = errors.New("unsupported content type")
	ErrNotFound           = errors.New("not found")
)

// extensiones permitidas por content type detectado
var allowed = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

type Service struct {
	store    blob.Store
	ttl      time.Duration
	maxBytes int64
}

func NewService(store blob.Store, ttl time.Duration, maxBytes int64) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Service{store: store, ttl: ttl, maxBytes: maxBytes}
}

func (s *Service) MaxBytes() int64 { return s.maxBytes }

// Object es un archivo ya guardado.
type Object struct {
	Key         string
	ContentType string
	Size        int64
}

// Upload guarda el archivo bajo <prefix>/<uuid><ext>. El tipo se detecta por
// contenido; el content type declarado por el cliente no se usa.
func (s *Service) Upload(ctx context.Context, prefix string, r io.Reader) (Object, error) {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" || strings.Contains(prefix, "..") {
		return Object{}, ErrInvalidInput
	}
	if r == nil {
		return Object{}, ErrInvalidInput
	}

	// se lee entero (<= maxBytes) para que el body sea seekable para S3
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return Object{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return Object{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Object{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ext, ok := allowed[ct]
	if !ok {
		return Object{}, fmt.Errorf("%w: %s", ErrUnsupportedContent, ct)
	}

	key := path.Join(prefix, uuid.NewString()+ext)
	info, err := s.store.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{ContentType: ct})
	if err != nil {
		return Object{}, err
	}
	return Object{Key: info.Key, ContentType: ct, Size: int64(len(data))}, nil
}

// SignedURL devuelve "" para una key vacía.
func (s *Service) SignedURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", nil
	}
	u, err := s.store.SignedURL(ctx, key, s.ttl)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return u, nil
}

// URLOrEmpty es SignedURL sin error, para respuestas de listados.
func (s *Service) URLOrEmpty(ctx context.Context, key string) string {
	if s == nil {
		return ""
	}
	u, err := s.SignedURL(ctx, key)
	if err != nil {
		return ""
	}
	return u
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	err := s.store.Delete(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil
	}
	return err
}
