// Package docs registra la definición OpenAPI que sirve /swagger.
// Regenerar con: swag init -g cmd/api/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/organizations": {
            "get": {
                "description": "Solo admin de plataforma.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Todas las organizaciones",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/organizations.organizationResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/admin/organizations/{orgID}/verify": {
            "post": {
                "description": "Solo admin de plataforma.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Verificar organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/organizations.verifyRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/organizations.organizationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/adoptions": {
            "get": {
                "description": "Listado público de mascotas disponibles. Filtros opcionales combinables.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "adoptions"
                ],
                "summary": "Mascotas en adopción",
                "parameters": [
                    {
                        "name": "species",
                        "in": "query",
                        "required": false,
                        "description": "dog, cat, bird, rabbit, other",
                        "type": "string"
                    },
                    {
                        "name": "sex",
                        "in": "query",
                        "required": false,
                        "description": "male, female, unknown",
                        "type": "string"
                    },
                    {
                        "name": "breed",
                        "in": "query",
                        "required": false,
                        "description": "Texto contenido en la raza",
                        "type": "string"
                    },
                    {
                        "name": "min_age_months",
                        "in": "query",
                        "required": false,
                        "description": "Edad mínima en meses",
                        "type": "integer"
                    },
                    {
                        "name": "max_age_months",
                        "in": "query",
                        "required": false,
                        "description": "Edad máxima en meses",
                        "type": "integer"
                    },
                    {
                        "name": "organization_id",
                        "in": "query",
                        "required": false,
                        "description": "Refugio / organización",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "Texto libre en nombre, raza y notas",
                        "type": "string"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "1-200, por defecto 50",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.petResponse"
                            }
                        }
                    }
                }
            }
        },
        "/api/ai/generate": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "integrations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Generar texto",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Prompt",
                        "schema": {
                            "$ref": "#/definitions/integrations.generateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/integrations.generateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/api/email/send": {
            "post": {
                "description": "Admin de plataforma, u owner/admin de organization_id.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "integrations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Enviar email",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Email",
                        "schema": {
                            "$ref": "#/definitions/integrations.sendEmailRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/integrations.sendEmailResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/api/notifications/trigger": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "integrations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Disparar notificación",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Workflow y destinatario",
                        "schema": {
                            "$ref": "#/definitions/integrations.triggerRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/integrations.triggerResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/api/payments/orders": {
            "post": {
                "description": "amount en unidades menores (paise).",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "integrations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Crear orden de pago",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Orden",
                        "schema": {
                            "$ref": "#/definitions/integrations.paymentOrderRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/integrations.paymentOrderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/applications/{applicationID}/decision": {
            "post": {
                "description": "Aprobar transfiere la mascota al solicitante, la marca adoptada y privada, y rechaza el resto de solicitudes pendientes.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "adoptions"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Aprobar o rechazar solicitud de adopción",
                "parameters": [
                    {
                        "name": "applicationID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la solicitud",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "approve: true/false",
                        "schema": {
                            "$ref": "#/definitions/pets.decisionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.applicationResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/applications/{applicationID}/withdraw": {
            "post": {
                "description": "Solo quien la hizo y solo si está pending.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Retirar solicitud",
                "parameters": [
                    {
                        "name": "applicationID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la solicitud",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.applicationResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/bookings": {
            "post": {
                "description": "El usuario debe ser dueño de la mascota. ends_at por defecto es starts_at + 30 minutos.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bookings"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Reservar turno",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Turno (fechas RFC3339)",
                        "schema": {
                            "$ref": "#/definitions/bookings.createBookingRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/bookings.bookingResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bookings"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mis turnos",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/bookings.bookingResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/bookings/{bookingID}": {
            "get": {
                "description": "Quien reservó o miembros de la organización.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bookings"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Ver turno",
                "parameters": [
                    {
                        "name": "bookingID",
                        "in": "path",
                        "required": true,
                        "description": "ID del turno",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/bookings.bookingResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/bookings/{bookingID}/status": {
            "post": {
                "description": "pending->confirmed (staff), pending|confirmed->cancelled (quien reservó o staff), confirmed->completed|no_show (staff).",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bookings"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Cambiar estado del turno",
                "parameters": [
                    {
                        "name": "bookingID",
                        "in": "path",
                        "required": true,
                        "description": "ID del turno",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Nuevo estado",
                        "schema": {
                            "$ref": "#/definitions/bookings.updateStatusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/bookings.bookingResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/comments/{commentID}": {
            "delete": {
                "description": "El autor del comentario o el del post.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Borrar comentario",
                "parameters": [
                    {
                        "name": "commentID",
                        "in": "path",
                        "required": true,
                        "description": "ID del comentario",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "platform"
                ],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/invites/accept": {
            "post": {
                "description": "Acepta con el token recibido por email. La invitación debe estar pendiente y sin vencer; si el usuario tiene email, debe coincidir.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Aceptar invitación",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Token",
                        "schema": {
                            "$ref": "#/definitions/organizations.acceptInviteRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/organizations.memberResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/invites/{inviteID}/revoke": {
            "post": {
                "description": "Owner o admin.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Revocar invitación",
                "parameters": [
                    {
                        "name": "inviteID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la invitación",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/organizations.inviteResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/me/applications": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mis solicitudes de adopción",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.applicationResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/me/organization": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Organización activa",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/organizations.currentOrganizationResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Cambiar organización activa",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Organización destino",
                        "schema": {
                            "$ref": "#/definitions/organizations.switchOrganizationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/organizations.currentOrganizationResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/media/{key}": {
            "get": {
                "description": "Solo con el store en memoria. La key puede tener barras.",
                "produces": [
                    "application/octet-stream"
                ],
                "tags": [
                    "media"
                ],
                "summary": "Descargar archivo firmado",
                "parameters": [
                    {
                        "name": "key",
                        "in": "path",
                        "required": true,
                        "description": "Key del objeto",
                        "type": "string"
                    },
                    {
                        "name": "expires",
                        "in": "query",
                        "required": true,
                        "description": "Unix seconds",
                        "type": "string"
                    },
                    {
                        "name": "sig",
                        "in": "query",
                        "required": true,
                        "description": "Firma HMAC",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "platform"
                ],
                "summary": "Métricas Prometheus",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/orders": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mis compras",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/marketplace.orderResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/orders/checkout": {
            "post": {
                "description": "Crea la orden (un solo vendedor) y la orden de pago del proveedor. El cliente abre el checkout con payment.id.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Checkout del carrito",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Items",
                        "schema": {
                            "$ref": "#/definitions/marketplace.checkoutRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/marketplace.checkoutResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/orders/{orderID}": {
            "get": {
                "description": "Comprador o staff del vendedor.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Ver orden",
                "parameters": [
                    {
                        "name": "orderID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la orden",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/marketplace.orderResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/orders/{orderID}/cancel": {
            "post": {
                "description": "Solo el comprador y solo si está pending.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Cancelar orden",
                "parameters": [
                    {
                        "name": "orderID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la orden",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/marketplace.orderResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/orders/{orderID}/confirm": {
            "post": {
                "description": "Valida la firma del checkout y marca la orden como pagada. Repetir con el mismo payment_id devuelve la orden sin cambios.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Confirmar pago",
                "parameters": [
                    {
                        "name": "orderID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la orden",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos devueltos por el checkout",
                        "schema": {
                            "$ref": "#/definitions/marketplace.confirmPaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/marketplace.orderResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/orders/{orderID}/fulfill": {
            "post": {
                "description": "Staff del vendedor; la orden debe estar pagada.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Marcar orden entregada",
                "parameters": [
                    {
                        "name": "orderID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la orden",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/marketplace.orderResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations": {
            "post": {
                "description": "Crea la organización y deja al usuario como owner. Si el usuario no tenía organización activa, esta pasa a ser la default.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Crear organización",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos de la organización",
                        "schema": {
                            "$ref": "#/definitions/organizations.createOrganizationRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/organizations.organizationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mis organizaciones",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/organizations.myOrganizationResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations/{orgID}": {
            "get": {
                "description": "Solo miembros.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Ver organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/organizations.organizationResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "patch": {
                "description": "Owner o admin.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Modificar organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/organizations.updateOrganizationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/organizations.organizationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations/{orgID}/bookings": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "bookings"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Agenda de la organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "pending, confirmed, cancelled, completed, no_show",
                        "type": "string"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "required": false,
                        "description": "RFC3339, inclusive",
                        "type": "string"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "required": false,
                        "description": "RFC3339, exclusivo",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/bookings.bookingResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations/{orgID}/invites": {
            "post": {
                "description": "Owner/admin invitan por email. Si ya existe una invitación pendiente para ese email se renueva (token y vencimiento nuevos). El token se devuelve solo en esta respuesta.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Invitar a una organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Email y rol",
                        "schema": {
                            "$ref": "#/definitions/organizations.inviteRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/organizations.inviteResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "description": "Owner o admin.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Invitaciones de la organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "required": false,
                        "description": "status",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/organizations.inviteResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations/{orgID}/members": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Miembros de la organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/organizations.memberResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations/{orgID}/members/{userID}": {
            "patch": {
                "description": "Owner o admin. Siempre queda al menos un owner.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Cambiar rol de un miembro",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    },
                    {
                        "name": "userID",
                        "in": "path",
                        "required": true,
                        "description": "ID del usuario",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/organizations.changeRoleRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/organizations.memberResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "delete": {
                "description": "Owner o admin, o el propio miembro.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "organizations"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Quitar miembro",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    },
                    {
                        "name": "userID",
                        "in": "path",
                        "required": true,
                        "description": "ID del usuario",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations/{orgID}/orders": {
            "get": {
                "description": "Requiere staff.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Ventas de la organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/marketplace.orderResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations/{orgID}/pets": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mascotas de la organización",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.petResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/organizations/{orgID}/products": {
            "post": {
                "description": "Staff (vet/staff/admin/owner) de una tienda, clínica o peluquería.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Publicar producto",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización vendedora",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Producto",
                        "schema": {
                            "$ref": "#/definitions/marketplace.createProductRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/marketplace.productResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "description": "Incluye inactivos; requiere staff.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Productos de un vendedor",
                "parameters": [
                    {
                        "name": "orgID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la organización",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/marketplace.productResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets": {
            "post": {
                "description": "Crea una mascota a nombre del usuario. Con organization_id, el usuario debe ser staff de esa organización.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Registrar mascota",
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "type": "string"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "required": false,
                        "description": "Bearer token en producción",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos de la mascota; birth_date en YYYY-MM-DD",
                        "schema": {
                            "$ref": "#/definitions/pets.createPetRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mis mascotas",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.petResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Ver mascota",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "patch": {
                "description": "PATCH parcial. Para limpiar birth_date enviar null. Permitido al dueño y al staff de la organización de la mascota.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Actualizar perfil de mascota",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Campos a modificar (birth_date: YYYY-MM-DD o null)",
                        "schema": {
                            "$ref": "#/definitions/pets.updatePetRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/adoption": {
            "put": {
                "description": "Dueño o staff de la organización.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Cambiar estado de adopción",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/pets.adoptionStatusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/applications": {
            "post": {
                "description": "La mascota debe estar disponible.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Solicitar adopción",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/pets.applyRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/pets.applicationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "description": "Dueño o staff.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Solicitudes de adopción de una mascota",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/pets.applicationResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/photo": {
            "post": {
                "description": "multipart/form-data con el campo ` + "`" + `file` + "`" + ` (jpeg, png, webp o gif; máximo 10 MiB). Reemplaza la foto anterior.",
                "consumes": [
                    "mpfd"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Subir foto de mascota",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "Imagen",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/records": {
            "post": {
                "description": "El dueño siempre puede registrar. El staff de la organización de la mascota, o de una clínica con turno activo, registra a nombre de su organización.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "records"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Crear registro clínico",
                "parameters": [
                    {
                        "name": "X-Debug-User-ID",
                        "in": "header",
                        "required": false,
                        "description": "Solo en modo dev, ID de usuario para depuración",
                        "type": "string"
                    },
                    {
                        "name": "Authorization",
                        "in": "header",
                        "required": false,
                        "description": "Bearer token en producción",
                        "type": "string"
                    },
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos del registro; fechas en RFC3339",
                        "schema": {
                            "$ref": "#/definitions/medicalrecords.createRecordRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/medicalrecords.recordResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "description": "Más reciente primero. Los registros privados solo los ven el dueño y la organización autora.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "records"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Historia clínica de una mascota",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Máximo de registros (1-200). Por defecto 50",
                        "type": "integer"
                    },
                    {
                        "name": "types",
                        "in": "query",
                        "required": false,
                        "description": "Lista CSV de tipos (ej: VACCINATION,DEWORMING)",
                        "type": "string"
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "required": false,
                        "description": "occurred_at mínima (RFC3339)",
                        "type": "string"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "required": false,
                        "description": "occurred_at máxima (RFC3339)",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "Texto en título/notas",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/medicalrecords.recordResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/records/due": {
            "get": {
                "description": "Registros no anulados con next_due_at hasta ` + "`" + `until` + "`" + ` (por defecto, 30 días).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "records"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Próximos vencimientos",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "until",
                        "in": "query",
                        "required": false,
                        "description": "RFC3339",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/medicalrecords.recordResponse"
                            }
                        }
                    }
                }
            }
        },
        "/pets/{petID}/records/{recordID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "records"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Ver registro clínico",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "recordID",
                        "in": "path",
                        "required": true,
                        "description": "ID del registro",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medicalrecords.recordResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/records/{recordID}/attachments": {
            "post": {
                "description": "multipart/form-data con el campo ` + "`" + `file` + "`" + ` (imagen o PDF, máximo 10 MiB).",
                "consumes": [
                    "mpfd"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "records"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Adjuntar archivo a un registro",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "recordID",
                        "in": "path",
                        "required": true,
                        "description": "ID del registro",
                        "type": "string"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "Archivo",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medicalrecords.recordResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "415": {
                        "description": "Unsupported Media Type",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/records/{recordID}/void": {
            "post": {
                "description": "Los registros no se borran. El dueño anula cualquiera; el staff solo los de su organización.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "records"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Anular (void) un registro",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "recordID",
                        "in": "path",
                        "required": true,
                        "description": "ID del registro",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medicalrecords.recordResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/pets/{petID}/visibility": {
            "put": {
                "description": "Dueño o staff de la organización.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "pets"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Cambiar visibilidad",
                "parameters": [
                    {
                        "name": "petID",
                        "in": "path",
                        "required": true,
                        "description": "ID de la mascota",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/pets.visibilityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pets.petResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/posts": {
            "post": {
                "description": "El pet_id es opcional y debe ser una mascota propia.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Publicar post",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/community.createPostRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/community.postResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "description": "Más nuevos primero. Para la página siguiente mandar before = created_at del último post.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Feed de la comunidad",
                "parameters": [
                    {
                        "name": "before",
                        "in": "query",
                        "required": false,
                        "description": "RFC3339",
                        "type": "string"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "1-100, default 20",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/community.postResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/posts/{postID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Ver post",
                "parameters": [
                    {
                        "name": "postID",
                        "in": "path",
                        "required": true,
                        "description": "ID del post",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/community.postResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "delete": {
                "description": "Solo el autor.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Borrar post",
                "parameters": [
                    {
                        "name": "postID",
                        "in": "path",
                        "required": true,
                        "description": "ID del post",
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/posts/{postID}/comments": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Comentar post",
                "parameters": [
                    {
                        "name": "postID",
                        "in": "path",
                        "required": true,
                        "description": "ID del post",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/community.createCommentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/community.commentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Comentarios de un post",
                "parameters": [
                    {
                        "name": "postID",
                        "in": "path",
                        "required": true,
                        "description": "ID del post",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/community.commentResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/posts/{postID}/image": {
            "post": {
                "description": "Solo el autor. Reemplaza la imagen anterior.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Subir imagen del post",
                "parameters": [
                    {
                        "name": "postID",
                        "in": "path",
                        "required": true,
                        "description": "ID del post",
                        "type": "string"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "Archivo",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/community.postResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/posts/{postID}/like": {
            "put": {
                "description": "PUT agrega, DELETE quita. Ambos son idempotentes.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Dar o quitar like",
                "parameters": [
                    {
                        "name": "postID",
                        "in": "path",
                        "required": true,
                        "description": "ID del post",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/community.postResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "delete": {
                "description": "PUT agrega, DELETE quita. Ambos son idempotentes.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "community"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Dar o quitar like",
                "parameters": [
                    {
                        "name": "postID",
                        "in": "path",
                        "required": true,
                        "description": "ID del post",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/community.postResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/products": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "summary": "Catálogo público",
                "parameters": [
                    {
                        "name": "organization_id",
                        "in": "query",
                        "required": false,
                        "description": "Filtrar por vendedor",
                        "type": "string"
                    },
                    {
                        "name": "category",
                        "in": "query",
                        "required": false,
                        "description": "food, toys, accessories, health, grooming, other",
                        "type": "string"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "description": "Texto en nombre o descripción",
                        "type": "string"
                    },
                    {
                        "name": "min_price",
                        "in": "query",
                        "required": false,
                        "description": "Precio mínimo (unidades menores)",
                        "type": "integer"
                    },
                    {
                        "name": "max_price",
                        "in": "query",
                        "required": false,
                        "description": "Precio máximo (unidades menores)",
                        "type": "integer"
                    },
                    {
                        "name": "in_stock",
                        "in": "query",
                        "required": false,
                        "description": "Solo con stock",
                        "type": "boolean"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Máximo 200, default 50",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/marketplace.productResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/products/{productID}": {
            "get": {
                "description": "Los inactivos solo los ve el staff del vendedor.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "summary": "Ver producto",
                "parameters": [
                    {
                        "name": "productID",
                        "in": "path",
                        "required": true,
                        "description": "ID del producto",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/marketplace.productResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            },
            "patch": {
                "description": "Solo staff del vendedor.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Modificar producto",
                "parameters": [
                    {
                        "name": "productID",
                        "in": "path",
                        "required": true,
                        "description": "ID del producto",
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "description": "Datos",
                        "schema": {
                            "$ref": "#/definitions/marketplace.updateProductRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/marketplace.productResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/products/{productID}/image": {
            "post": {
                "description": "Solo staff del vendedor.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "marketplace"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Subir imagen del producto",
                "parameters": [
                    {
                        "name": "productID",
                        "in": "path",
                        "required": true,
                        "description": "ID del producto",
                        "type": "string"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "description": "Archivo",
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/marketplace.productResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        },
        "/realtime": {
            "get": {
                "description": "Upgrade a websocket. Cada mensaje es {table, type, record, commit_timestamp}.",
                "tags": [
                    "realtime"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Suscripción a cambios",
                "parameters": [
                    {
                        "name": "tables",
                        "in": "query",
                        "required": true,
                        "description": "Tablas separadas por coma",
                        "type": "string"
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/httpx.ErrorBody"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "bookings.bookingResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "organization_id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "service": {
                    "type": "string"
                },
                "starts_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "ends_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "status": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "reminded_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "bookings.createBookingRequest": {
            "type": "object",
            "properties": {
                "pet_id": {
                    "type": "string"
                },
                "organization_id": {
                    "type": "string"
                },
                "service": {
                    "type": "string"
                },
                "starts_at": {
                    "type": "string"
                },
                "ends_at": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "bookings.updateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        },
        "community.commentResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "post_id": {
                    "type": "string"
                },
                "author_user_id": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "community.createCommentRequest": {
            "type": "object",
            "properties": {
                "body": {
                    "type": "string"
                }
            }
        },
        "community.createPostRequest": {
            "type": "object",
            "properties": {
                "body": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                }
            }
        },
        "community.postResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "author_user_id": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "image_url": {
                    "type": "string"
                },
                "like_count": {
                    "type": "integer"
                },
                "comment_count": {
                    "type": "integer"
                },
                "liked_by_me": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "httpx.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "integrations.generateRequest": {
            "type": "object",
            "properties": {
                "prompt": {
                    "type": "string"
                }
            }
        },
        "integrations.generateResponse": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                }
            }
        },
        "integrations.paymentOrderRequest": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "receipt": {
                    "type": "string"
                }
            }
        },
        "integrations.paymentOrderResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "amount": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "receipt": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "integrations.sendEmailRequest": {
            "type": "object",
            "properties": {
                "organization_id": {
                    "type": "string"
                },
                "to": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "subject": {
                    "type": "string"
                },
                "html": {
                    "type": "string"
                }
            }
        },
        "integrations.sendEmailResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                }
            }
        },
        "integrations.triggerRequest": {
            "type": "object",
            "properties": {
                "subscriber_id": {
                    "type": "string"
                },
                "workflow": {
                    "type": "string"
                },
                "payload": {
                    "type": "object"
                }
            }
        },
        "integrations.triggerResponse": {
            "type": "object",
            "properties": {
                "acknowledged": {
                    "type": "boolean"
                },
                "transaction_id": {
                    "type": "string"
                }
            }
        },
        "marketplace.OrderItem": {
            "type": "object",
            "properties": {
                "product_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "unit_price_minor": {
                    "type": "integer"
                }
            }
        },
        "marketplace.checkoutRequest": {
            "type": "object",
            "properties": {
                "product_id": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                }
            }
        },
        "marketplace.checkoutResponse": {
            "type": "object",
            "properties": {
                "order": {
                    "$ref": "#/definitions/marketplace.orderResponse"
                },
                "payment": {
                    "$ref": "#/definitions/marketplace.paymentOrderResponse"
                }
            }
        },
        "marketplace.confirmPaymentRequest": {
            "type": "object",
            "properties": {
                "payment_order_id": {
                    "type": "string"
                },
                "payment_id": {
                    "type": "string"
                },
                "signature": {
                    "type": "string"
                }
            }
        },
        "marketplace.createProductRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "price_minor": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "stock": {
                    "type": "integer"
                }
            }
        },
        "marketplace.orderResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "organization_id": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/marketplace.OrderItem"
                    }
                },
                "total_minor": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "payment_order_id": {
                    "type": "string"
                },
                "payment_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "marketplace.paymentOrderResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "amount": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "receipt": {
                    "type": "string"
                }
            }
        },
        "marketplace.productResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "organization_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "price_minor": {
                    "type": "integer"
                },
                "currency": {
                    "type": "string"
                },
                "stock": {
                    "type": "integer"
                },
                "active": {
                    "type": "boolean"
                },
                "image_url": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "marketplace.updateProductRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "price_minor": {
                    "type": "integer"
                },
                "stock": {
                    "type": "integer"
                },
                "active": {
                    "type": "boolean"
                }
            }
        },
        "medicalrecords.attachmentResponse": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "content_type": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                },
                "url": {
                    "type": "string"
                }
            }
        },
        "medicalrecords.createRecordRequest": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "occurred_at": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "next_due_at": {
                    "type": "string"
                },
                "visibility": {
                    "type": "string"
                },
                "organization_id": {
                    "type": "string"
                }
            }
        },
        "medicalrecords.recordResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "organization_id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "occurred_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "recorded_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "title": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "next_due_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/medicalrecords.attachmentResponse"
                    }
                },
                "actor_type": {
                    "type": "string"
                },
                "actor_id": {
                    "type": "string"
                },
                "visibility": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "organizations.acceptInviteRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                }
            }
        },
        "organizations.changeRoleRequest": {
            "type": "object",
            "properties": {
                "role": {
                    "type": "string"
                }
            }
        },
        "organizations.createOrganizationRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                }
            }
        },
        "organizations.currentOrganizationResponse": {
            "type": "object",
            "properties": {
                "user_id": {
                    "type": "string"
                },
                "organization": {
                    "$ref": "#/definitions/organizations.organizationResponse"
                },
                "role": {
                    "type": "string"
                }
            }
        },
        "organizations.inviteRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                }
            }
        },
        "organizations.inviteResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "organization_id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "token": {
                    "type": "string"
                },
                "invited_by": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "accepted_by": {
                    "type": "string"
                },
                "accepted_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "organizations.memberResponse": {
            "type": "object",
            "properties": {
                "organization_id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "organizations.myOrganizationResponse": {
            "type": "object",
            "properties": {
                "organization": {
                    "$ref": "#/definitions/organizations.organizationResponse"
                },
                "role": {
                    "type": "string"
                },
                "is_default": {
                    "type": "boolean"
                }
            }
        },
        "organizations.organizationResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "slug": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "verified": {
                    "type": "boolean"
                },
                "created_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "organizations.switchOrganizationRequest": {
            "type": "object",
            "properties": {
                "organization_id": {
                    "type": "string"
                }
            }
        },
        "organizations.updateOrganizationRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                }
            }
        },
        "organizations.verifyRequest": {
            "type": "object",
            "properties": {
                "verified": {
                    "type": "boolean"
                }
            }
        },
        "pets.adoptionStatusRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        },
        "pets.applicationResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "pet_id": {
                    "type": "string"
                },
                "applicant_user_id": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "decided_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "pets.applyRequest": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "organization_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "species": {
                    "type": "string"
                },
                "breed": {
                    "type": "string"
                },
                "sex": {
                    "type": "string"
                },
                "birth_date": {
                    "type": "string"
                },
                "microchip": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "visibility": {
                    "type": "string"
                }
            }
        },
        "pets.decisionRequest": {
            "type": "object",
            "properties": {
                "approve": {
                    "type": "boolean"
                }
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "owner_user_id": {
                    "type": "string"
                },
                "organization_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "species": {
                    "type": "string"
                },
                "breed": {
                    "type": "string"
                },
                "sex": {
                    "type": "string"
                },
                "birth_date": {
                    "type": "string"
                },
                "microchip": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "photo_url": {
                    "type": "string"
                },
                "visibility": {
                    "type": "string"
                },
                "adoption_status": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string",
                    "format": "date-time"
                },
                "updated_at": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "pets.updatePetRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "species": {
                    "type": "string"
                },
                "breed": {
                    "type": "string"
                },
                "sex": {
                    "type": "string"
                },
                "microchip": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            }
        },
        "pets.visibilityRequest": {
            "type": "object",
            "properties": {
                "visibility": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PetCare Hub API",
	Description:      "Backend multi-organización: mascotas, turnos, historia clínica, marketplace y comunidad.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
