package media

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"petcare-hub/internal/platform/httpx"
	"petcare-hub/internal/ports/blob"
)

// URLVerifier valida las URLs firmadas que emite el store en memoria.
type URLVerifier interface {
	Verify(key, expires, sig string) bool
}

// RegisterRoutes sirve GET /media/* solo para el store en memoria (dev/tests).
// Con S3 el cliente baja directo de la URL prefirmada.
func RegisterRoutes(r chi.Router, store blob.Store, verifier URLVerifier) {
	r.Get("/media/*", serveMediaHandler(store, verifier))
}

// serveMediaHandler godoc
// @Summary Descargar archivo firmado
// @Description Solo con el store en memoria. La key puede tener barras.
// @Tags media
// @Produce octet-stream
// @Param key path string true "Key del objeto"
// @Param expires query string true "Unix seconds"
// @Param sig query string true "Firma HMAC"
// @Success 200 {file} file
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Router /media/{key} [get]
func serveMediaHandler(store blob.Store, verifier URLVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		q := r.URL.Query()
		if key == "" || !verifier.Verify(key, q.Get("expires"), q.Get("sig")) {
			httpx.WriteError(w, http.StatusForbidden, "invalid or expired signature")
			return
		}

		info, rc, err := store.Get(r.Context(), key)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "not found")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}
		defer rc.Close()

		if info.ContentType != "" {
			w.Header().Set("Content-Type", info.ContentType)
		}
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		w.Header().Set("Cache-Control", "private, max-age=60")
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
	}
}

// WriteUploadError mapea errores de ReadUpload/Upload a status HTTP.
func WriteUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTooLarge), errors.Is(err, httpx.ErrUploadTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "file too large")
	case errors.Is(err, ErrUnsupportedContent):
		httpx.WriteError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, http.ErrMissingFile):
		httpx.WriteError(w, http.StatusBadRequest, "file is required")
	default:
		httpx.WriteError(w, http.StatusBadRequest, "invalid upload")
	}
}
