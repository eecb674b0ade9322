package marketplace

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petcare-hub/internal/domain/media"
	"petcare-hub/internal/middleware"
	"petcare-hub/internal/platform/httpclient"
	"petcare-hub/internal/platform/httpx"
)

// RegisterPublicRoutes: catálogo sin login. Si hay claims se usan para
// mostrar productos inactivos al staff del vendedor.
func RegisterPublicRoutes(r chi.Router, svc *Service, files *media.Service) {
	r.Get("/products", listProductsHandler(svc, files))
	r.Get("/products/{productID}", getProductHandler(svc, files))
}

func RegisterRoutes(r chi.Router, svc *Service, files *media.Service) {
	r.Post("/organizations/{orgID}/products", createProductHandler(svc, files))
	r.Get("/organizations/{orgID}/products", listOrganizationProductsHandler(svc, files))
	r.Patch("/products/{productID}", updateProductHandler(svc, files))
	r.Post("/products/{productID}/image", uploadImageHandler(svc, files))

	r.Post("/orders/checkout", checkoutHandler(svc))
	r.Get("/orders", listMyOrdersHandler(svc))
	r.Get("/orders/{orderID}", getOrderHandler(svc))
	r.Post("/orders/{orderID}/confirm", confirmPaymentHandler(svc))
	r.Post("/orders/{orderID}/cancel", cancelOrderHandler(svc))
	r.Post("/orders/{orderID}/fulfill", fulfillOrderHandler(svc))
	r.Get("/organizations/{orgID}/orders", listOrganizationOrdersHandler(svc))
}

type createProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category" enums:"food,toys,accessories,health,grooming,other"`
	PriceMinor  int64    `json:"price_minor"`
	Currency    string   `json:"currency"`
	Stock       int      `json:"stock"`
}

type updateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *Category `json:"category"`
	PriceMinor  *int64    `json:"price_minor"`
	Stock       *int      `json:"stock"`
	Active      *bool     `json:"active"`
}

type productResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       Category  `json:"category"`
	PriceMinor     int64     `json:"price_minor"`
	Currency       string    `json:"currency"`
	Stock          int       `json:"stock"`
	Active         bool      `json:"active"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type checkoutRequest struct {
	Items []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

type paymentOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type checkoutResponse struct {
	Order   orderResponse        `json:"order"`
	Payment paymentOrderResponse `json:"payment"`
}

type confirmPaymentRequest struct {
	PaymentOrderID string `json:"payment_order_id"`
	PaymentID      string `json:"payment_id"`
	Signature      string `json:"signature"`
}

type orderResponse struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	OrganizationID string      `json:"organization_id"`
	Items          []OrderItem `json:"items"`
	TotalMinor     int64       `json:"total_minor"`
	Currency       string      `json:"currency"`
	Status         OrderStatus `json:"status"`
	PaymentOrderID string      `json:"payment_order_id,omitempty"`
	PaymentID      string      `json:"payment_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// listProductsHandler godoc
// @Summary Catálogo público
// @Tags marketplace
// @Produce json
// @Param organization_id query string false "Filtrar por vendedor"
// @Param category query string false "food, toys, accessories, health, grooming, other"
// @Param q query string false "Texto en nombre o descripción"
// @Param min_price query int false "Precio mínimo (unidades menores)"
// @Param max_price query int false "Precio máximo (unidades menores)"
// @Param in_stock query bool false "Solo con stock"
// @Param limit query int false "Máximo 200, default 50"
// @Success 200 {array} productResponse
// @Failure 400 {object} httpx.ErrorBody
// @Router /products [get]
func listProductsHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := ProductFilter{
			OrganizationID: strings.TrimSpace(q.Get("organization_id")),
			Category:       Category(strings.ToLower(strings.TrimSpace(q.Get("category")))),
			Query:          q.Get("q"),
			Limit:          httpx.QueryInt(r, "limit", defaultListLimit, 1, 200),
		}
		for _, p := range []struct {
			key string
			dst *int64
		}{{"min_price", &f.MinPriceMinor}, {"max_price", &f.MaxPriceMinor}} {
			v := strings.TrimSpace(q.Get(p.key))
			if v == "" {
				continue
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				httpx.WriteError(w, http.StatusBadRequest, p.key+" must be a non-negative integer")
				return
			}
			*p.dst = n
		}
		if v := strings.TrimSpace(q.Get("in_stock")); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "in_stock must be a boolean")
				return
			}
			f.InStock = b
		}

		items, err := svc.ListProducts(r.Context(), f)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProductResponses(r.Context(), files, items))
	}
}

// getProductHandler godoc
// @Summary Ver producto
// @Description Los inactivos solo los ve el staff del vendedor.
// @Tags marketplace
// @Produce json
// @Param productID path string true "ID del producto"
// @Success 200 {object} productResponse
// @Failure 404 {object} httpx.ErrorBody
// @Router /products/{productID} [get]
func getProductHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userID string
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			userID = claims.UserID
		}
		p, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productID"), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProductResponse(r.Context(), files, p))
	}
}

// createProductHandler godoc
// @Summary Publicar producto
// @Description Staff (vet/staff/admin/owner) de una tienda, clínica o peluquería.
// @Tags marketplace
// @Accept json
// @Produce json
// @Param orgID path string true "ID de la organización vendedora"
// @Param payload body createProductRequest true "Producto"
// @Success 201 {object} productResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/products [post]
func createProductHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createProductRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.CreateProduct(r.Context(), chi.URLParam(r, "orgID"), claims.UserID, ProductInput{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			PriceMinor:  req.PriceMinor,
			Currency:    req.Currency,
			Stock:       req.Stock,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toProductResponse(r.Context(), files, p))
	}
}

// listOrganizationProductsHandler godoc
// @Summary Productos de un vendedor
// @Description Incluye inactivos; requiere staff.
// @Tags marketplace
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Success 200 {array} productResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/products [get]
func listOrganizationProductsHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListOrganizationProducts(r.Context(), chi.URLParam(r, "orgID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProductResponses(r.Context(), files, items))
	}
}

// updateProductHandler godoc
// @Summary Modificar producto
// @Description Solo staff del vendedor.
// @Tags marketplace
// @Accept json
// @Produce json
// @Param productID path string true "ID del producto"
// @Param payload body updateProductRequest true "Datos"
// @Success 200 {object} productResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /products/{productID} [patch]
func updateProductHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateProductRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), claims.UserID, ProductPatch{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			PriceMinor:  req.PriceMinor,
			Stock:       req.Stock,
			Active:      req.Active,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProductResponse(r.Context(), files, p))
	}
}

// uploadImageHandler godoc
// @Summary Subir imagen del producto
// @Description Solo staff del vendedor.
// @Tags marketplace
// @Accept multipart/form-data
// @Produce json
// @Param productID path string true "ID del producto"
// @Param file formData file true "Archivo"
// @Success 200 {object} productResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /products/{productID}/image [post]
func uploadImageHandler(svc *Service, files *media.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		up, err := httpx.ReadUpload(w, r, "file", files.MaxBytes())
		if err != nil {
			media.WriteUploadError(w, err)
			return
		}
		defer up.Body.Close()

		p, err := svc.SetProductImage(r.Context(), chi.URLParam(r, "productID"), claims.UserID, up.Body)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProductResponse(r.Context(), files, p))
	}
}

// checkoutHandler godoc
// @Summary Checkout del carrito
// @Description Crea la orden (un solo vendedor) y la orden de pago del proveedor. El cliente abre el checkout con payment.id.
// @Tags marketplace
// @Accept json
// @Produce json
// @Param payload body checkoutRequest true "Items"
// @Success 201 {object} checkoutResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Failure 502 {object} httpx.ErrorBody
// @Failure 503 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /orders/checkout [post]
func checkoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req checkoutRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		items := make([]CartItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}

		res, err := svc.Checkout(r.Context(), claims.UserID, items)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, checkoutResponse{
			Order: toOrderResponse(res.Order),
			Payment: paymentOrderResponse{
				ID:       res.Payment.ID,
				Amount:   res.Payment.Amount,
				Currency: res.Payment.Currency,
				Receipt:  res.Payment.Receipt,
			},
		})
	}
}

// confirmPaymentHandler godoc
// @Summary Confirmar pago
// @Description Valida la firma del checkout y marca la orden como pagada. Repetir con el mismo payment_id devuelve la orden sin cambios.
// @Tags marketplace
// @Accept json
// @Produce json
// @Param orderID path string true "ID de la orden"
// @Param payload body confirmPaymentRequest true "Datos devueltos por el checkout"
// @Success 200 {object} orderResponse
// @Failure 400 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /orders/{orderID}/confirm [post]
func confirmPaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req confirmPaymentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		o, err := svc.ConfirmPayment(r.Context(), chi.URLParam(r, "orderID"), claims.UserID, PaymentConfirmation{
			PaymentOrderID: req.PaymentOrderID,
			PaymentID:      req.PaymentID,
			Signature:      req.Signature,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOrderResponse(o))
	}
}

// cancelOrderHandler godoc
// @Summary Cancelar orden
// @Description Solo el comprador y solo si está pending.
// @Tags marketplace
// @Produce json
// @Param orderID path string true "ID de la orden"
// @Success 200 {object} orderResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /orders/{orderID}/cancel [post]
func cancelOrderHandler(svc *Service) http.HandlerFunc {
	return orderActionHandler(svc.CancelOrder)
}

// fulfillOrderHandler godoc
// @Summary Marcar orden entregada
// @Description Staff del vendedor; la orden debe estar pagada.
// @Tags marketplace
// @Produce json
// @Param orderID path string true "ID de la orden"
// @Success 200 {object} orderResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /orders/{orderID}/fulfill [post]
func fulfillOrderHandler(svc *Service) http.HandlerFunc {
	return orderActionHandler(svc.FulfillOrder)
}

// getOrderHandler godoc
// @Summary Ver orden
// @Description Comprador o staff del vendedor.
// @Tags marketplace
// @Produce json
// @Param orderID path string true "ID de la orden"
// @Success 200 {object} orderResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func getOrderHandler(svc *Service) http.HandlerFunc {
	return orderActionHandler(svc.GetOrder)
}

func orderActionHandler(action func(ctx context.Context, orderID, userID string) (Order, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		o, err := action(r.Context(), chi.URLParam(r, "orderID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOrderResponse(o))
	}
}

// listMyOrdersHandler godoc
// @Summary Mis compras
// @Tags marketplace
// @Produce json
// @Success 200 {array} orderResponse
// @Failure 403 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /orders [get]
func listMyOrdersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListMyOrders(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOrderResponses(items))
	}
}

// listOrganizationOrdersHandler godoc
// @Summary Ventas de la organización
// @Description Requiere staff.
// @Tags marketplace
// @Produce json
// @Param orgID path string true "ID de la organización"
// @Success 200 {array} orderResponse
// @Failure 403 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Security BearerAuth
// @Router /organizations/{orgID}/orders [get]
func listOrganizationOrdersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListOrganizationOrders(r.Context(), chi.URLParam(r, "orgID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toOrderResponses(items))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadSignature):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadState), errors.Is(err, ErrOutOfStock):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrPaymentsUnavailable), errors.Is(err, httpclient.ErrNotConfigured):
		httpx.WriteError(w, http.StatusServiceUnavailable, "payments not configured")
	case errors.Is(err, media.ErrTooLarge), errors.Is(err, media.ErrUnsupportedContent), errors.Is(err, media.ErrInvalidInput):
		media.WriteUploadError(w, err)
	default:
		if _, ok := httpclient.StatusOf(err); ok {
			httpx.WriteError(w, http.StatusBadGateway, "payment provider error")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toProductResponse(ctx context.Context, files *media.Service, p Product) productResponse {
	return productResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		PriceMinor:     p.PriceMinor,
		Currency:       p.Currency,
		Stock:          p.Stock,
		Active:         p.Active,
		ImageURL:       files.URLOrEmpty(ctx, p.ImageKey),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductResponses(ctx context.Context, files *media.Service, items []Product) []productResponse {
	out := make([]productResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toProductResponse(ctx, files, p))
	}
	return out
}

func toOrderResponse(o Order) orderResponse {
	items := o.Items
	if items == nil {
		items = []OrderItem{}
	}
	return orderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		OrganizationID: o.OrganizationID,
		Items:          items,
		TotalMinor:     o.TotalMinor,
		Currency:       o.Currency,
		Status:         o.Status,
		PaymentOrderID: o.PaymentOrderID,
		PaymentID:      o.PaymentID,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toOrderResponses(items []Order) []orderResponse {
	out := make([]orderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, toOrderResponse(o))
	}
	return out
}
