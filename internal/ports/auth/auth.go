// Package auth define la identidad que resuelve el proveedor de sesiones.
package auth

import "context"

const PlatformRoleAdmin = "admin"

// Claims sale del access token ya verificado.
type Claims struct {
	UserID string
	Email  string

	// Role es el rol de plataforma (app_metadata.role en el JWT), no el rol
	// dentro de una organización. "admin" habilita /admin.
	Role string
}

func (c Claims) IsPlatformAdmin() bool {
	return c.Role == PlatformRoleAdmin
}

// AuthVerifier valida un bearer token. nil en el router = modo dev.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
