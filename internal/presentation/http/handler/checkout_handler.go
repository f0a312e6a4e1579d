package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/middleware"
	"github.com/sangkips/phonehub-pos/pkg/apperror"
)

// CheckoutHandler drives the two-step checkout of a session
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Initiate asks for confirmation of the current cart total
func (h *CheckoutHandler) Initiate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	ticket, err := h.checkoutService.Initiate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Checkout initiated", response.NewCheckoutTicketResponse(ticket))
}

// Confirm commits the pending checkout
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	// A missing token is a mismatch, not a malformed request
	token := uuid.Nil
	if t := strings.TrimSpace(req.Token); t != "" {
		parsed, err := uuid.Parse(t)
		if err != nil {
			response.BadRequest(c, "Invalid confirmation token format")
			return
		}
		token = parsed
	}

	method, ok := enum.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		response.ValidationError(c, []apperror.FieldError{
			{Field: "payment_method", Message: "must be one of cash, card, ewallet"},
		})
		return
	}

	cashier := strings.TrimSpace(req.Cashier)
	if cashier == "" {
		cashier = middleware.GetOperatorName(c)
	}

	result, err := h.checkoutService.Confirm(c.Request.Context(), id, service.ConfirmInput{
		Token:          token,
		PaymentMethod:  method,
		WorkerID:       req.WorkerID,
		ReceivedAmount: req.ReceivedAmount,
		OperatorID:     GetOperatorID(c),
		Cashier:        cashier,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale completed", response.NewCheckoutResultResponse(result))
}

// Cancel drops the pending checkout and keeps the cart
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.checkoutService.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Checkout cancelled", response.NewSessionResponse(view))
}
