package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"petcare-hub/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier. Verifica localmente con el JWT
// secret del proyecto y cae a la API de auth si está configurada.
type Verifier struct {
	secret []byte
	client *Client
}

func NewVerifier(cfg Config) (*Verifier, error) {
	v := &Verifier{}
	if s := strings.TrimSpace(cfg.JWTSecret); s != "" {
		v.secret = []byte(s)
	}
	if strings.TrimSpace(cfg.URL) != "" {
		c, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		v.client = c
	}
	if len(v.secret) == 0 && !v.client.IsConfigured() {
		return nil, ErrNotConfigured
	}
	return v, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	if len(v.secret) > 0 {
		claims, err := v.verifyLocal(token)
		if err == nil {
			return claims, nil
		}
		if !v.client.IsConfigured() {
			return auth.Claims{}, err
		}
	}
	return v.client.FetchUser(ctx, token)
}

func (v *Verifier) verifyLocal(token string) (auth.Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt parse: %w", err)
	}
	if !parsed.Valid {
		return auth.Claims{}, errors.New("jwt invalid")
	}

	sub, _ := mc.GetSubject()
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, errors.New("jwt missing sub")
	}

	email, _ := mc["email"].(string)
	appMeta, _ := mc["app_metadata"].(map[string]any)

	return auth.Claims{
		UserID: sub,
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Role:   stringFrom(appMeta, "role"),
	}, nil
}
