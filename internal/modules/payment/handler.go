package payment

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tablebook/internal/pkg/response"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/init", h.InitPayment)
	rg.GET("/payments/orders/:order_id", h.GetOrder)
}

// RegisterPublicRoutes mounts the callback endpoint. It stays outside auth:
// the collaborator authenticates with the signature, not a token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/callback", h.Callback)
}

func (h *Handler) InitPayment(c *gin.Context) {
	var req InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.InitPayment(c.Request.Context(), req)
	if err != nil {
		h.loggerf("level=error msg=payment init failed reservation_id=%d err=%v", req.ReservationID, err)
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrNotConfigured:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Payments are not configured")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to initialize payment")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Callback answers in plain text. The collaborator retries until it reads
// the exact "OK<order_id>" ack.
func (h *Handler) Callback(c *gin.Context) {
	rawBody, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(strings.NewReader(string(rawBody)))
	h.loggerf("level=info msg=payment callback raw_body=%s", string(rawBody))

	var req CallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	ack, err := h.service.HandleCallback(c.Request.Context(), req, string(rawBody))
	if err != nil {
		switch err {
		case ErrInvalidSignature:
			c.String(http.StatusBadRequest, "invalid signature")
		case ErrAmountMismatch:
			c.String(http.StatusBadRequest, "amount mismatch")
		case ErrNotFound:
			c.String(http.StatusNotFound, "order not found")
		default:
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.String(http.StatusOK, ack)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	if orderID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}

	p, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment order not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get payment order")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": p})
}
