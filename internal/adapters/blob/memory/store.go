package memory

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"petcare-hub/internal/ports/blob"
)

type object struct {
	data []byte
	info blob.Info
}

// Store es un blob store en memoria para dev/tests. Las URLs firmadas apuntan
// a BasePath (servido por el handler de media) con expiración + HMAC.
type Store struct {
	mu       sync.RWMutex
	objects  map[string]object
	key      []byte
	basePath string
	now      func() time.Time
}

func New(signingKey, basePath string) *Store {
	if strings.TrimSpace(basePath) == "" {
		basePath = "/media"
	}
	return &Store{
		objects:  make(map[string]object),
		key:      []byte(signingKey),
		basePath: strings.TrimRight(basePath, "/"),
		now:      time.Now,
	}
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, opts blob.PutOptions) (blob.Info, error) {
	if strings.TrimSpace(key) == "" {
		return blob.Info{}, errors.New("blob key required")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return blob.Info{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[key]; exists {
		return blob.Info{}, blob.ErrExists
	}
	info := blob.Info{
		Key:          key,
		Size:         int64(len(b)),
		ContentType:  opts.ContentType,
		LastModified: s.now().UTC(),
	}
	s.objects[key] = object{data: b, info: info}
	return info, nil
}

func (s *Store) Get(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[key]
	if !ok {
		return blob.Info{}, nil, blob.ErrNotFound
	}
	return o.info, io.NopCloser(bytes.NewReader(o.data)), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return blob.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", blob.ErrNotFound
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	exp := s.now().Add(ttl).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(exp, 10))
	q.Set("sig", s.sign(key, exp))
	return s.basePath + "/" + key + "?" + q.Encode(), nil
}

// Verify valida expires/sig de una URL emitida por SignedURL.
func (s *Store) Verify(key, expires, sig string) bool {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return false
	}
	if s.now().Unix() > exp {
		return false
	}
	want := s.sign(key, exp)
	return hmac.Equal([]byte(want), []byte(sig))
}

func (s *Store) sign(key string, exp int64) string {
	m := hmac.New(sha256.New, s.key)
	m.Write([]byte(key))
	m.Write([]byte{'\n'})
	m.Write([]byte(strconv.FormatInt(exp, 10)))
	return hex.EncodeToString(m.Sum(nil))
}
