package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/middleware"
)

// sessionID parses the :id path parameter. On failure the response is
// already written.
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}

// itemKey parses the :category and :item_id path parameters
func itemKey(c *gin.Context) (entity.ItemKey, bool) {
	return parseItemKey(c, c.Param("category"), c.Param("item_id"))
}

func parseItemKey(c *gin.Context, category, itemID string) (entity.ItemKey, bool) {
	cat, ok := enum.ParseCategory(category)
	if !ok {
		response.BadRequest(c, "Invalid category. Use 'phone' or 'accessory'")
		return entity.ItemKey{}, false
	}
	if itemID == "" {
		response.BadRequest(c, "Item ID is required")
		return entity.ItemKey{}, false
	}
	return entity.ItemKey{Category: cat, ID: itemID}, true
}

// GetOperatorID extracts the authenticated operator from the Gin context
func GetOperatorID(c *gin.Context) uuid.UUID {
	return middleware.GetOperatorID(c)
}
