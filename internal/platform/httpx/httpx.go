// Package httpx junta los helpers de respuesta que antes estaban duplicados
// en cada handler (writeJSON). Ya se repiten en todos los módulos.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const maxJSONBody = 1 << 20

// ErrEmptyBody: el request no trae body JSON.
var ErrEmptyBody = errors.New("empty body")

// ErrorBody es el payload de error uniforme de la API.
type ErrorBody struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// DecodeJSON decodifica el body rechazando campos desconocidos y bodies gigantes.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// QueryInt lee un entero de la query; fuera de [min,max] o inválido => def.
func QueryInt(r *http.Request, key string, def, min, max int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		return def
	}
	return n
}

// QueryCSV parte un parámetro "a,b,c" descartando vacíos.
func QueryCSV(r *http.Request, key string) []string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Upload es un archivo recibido por multipart/form-data.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// ErrUploadTooLarge: el body supera el límite configurado.
var ErrUploadTooLarge = errors.New("upload too large")

// ReadUpload lee el campo `field` de un form multipart limitado a maxBytes.
// El caller cierra Body.
func ReadUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (Upload, error) {
	// margen para los headers del multipart
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+64<<10)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return Upload{}, ErrUploadTooLarge
		}
		return Upload{}, err
	}
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return Upload{}, err
	}
	if hdr.Size > maxBytes {
		_ = f.Close()
		return Upload{}, ErrUploadTooLarge
	}
	return Upload{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        f,
	}, nil
}
