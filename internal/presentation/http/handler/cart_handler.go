package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/response"
)

// CartHandler handles cart edits, discount, tax and customer details
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) respond(c *gin.Context, message string, view *service.SessionView, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, response.NewSessionResponse(view))
}

// AddItem adds one unit of a catalog item
func (h *CartHandler) AddItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	key, ok := parseItemKey(c, req.Category, req.ItemID)
	if !ok {
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), id, key)
	h.respond(c, "Item added to cart", view, err)
}

// UpdateQuantity sets the quantity of a cart line
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	key, ok := itemKey(c)
	if !ok {
		return
	}
	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	view, err := h.cartService.UpdateQuantity(c.Request.Context(), id, key, *req.Quantity)
	h.respond(c, "Cart updated", view, err)
}

// RemoveItem drops a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	key, ok := itemKey(c)
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(c.Request.Context(), id, key)
	h.respond(c, "Item removed from cart", view, err)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.cartService.Clear(c.Request.Context(), id)
	h.respond(c, "Cart cleared", view, err)
}

func (h *CartHandler) SetDiscount(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	kind, ok := enum.ParseDiscountKind(req.Kind)
	if !ok {
		response.BadRequest(c, "Invalid discount kind. Use 'fixed' or 'percentage'")
		return
	}

	view, err := h.cartService.SetDiscount(c.Request.Context(), id, entity.DiscountSpec{Kind: kind, Value: *req.Value})
	h.respond(c, "Discount applied", view, err)
}

func (h *CartHandler) SetTax(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.SetTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	view, err := h.cartService.SetTax(c.Request.Context(), id, *req.Enabled)
	h.respond(c, "Tax updated", view, err)
}

func (h *CartHandler) SetCustomer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	view, err := h.cartService.SetCustomer(c.Request.Context(), id, entity.CustomerInfo{Name: req.Name, Phone: req.Phone})
	h.respond(c, "Customer updated", view, err)
}
