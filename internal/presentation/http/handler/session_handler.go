package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/phonehub-pos/pkg/pagination"
)

// SessionHandler handles POS session lifecycle requests
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Create opens a session for the authenticated operator
func (h *SessionHandler) Create(c *gin.Context) {
	view, err := h.sessionService.Create(c.Request.Context(), GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Session created", response.NewSessionResponse(view))
}

// Get returns the cart, totals and checkout state of a session
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session retrieved", response.NewSessionResponse(view))
}

// Delete discards a session
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessionService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Receipt returns the receipt of the last sale of a session
func (h *SessionHandler) Receipt(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	receipt, err := h.sessionService.Receipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved", receipt)
}

// Transactions pages through the sales committed in a session
func (h *SessionHandler) Transactions(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var q request.TransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	txns, err := h.sessionService.Transactions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Transactions retrieved", pagination.Paginate(txns, q.PaginationParams))
}
