package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/response"
)

// CatalogHandler serves the per-session catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Sync pulls a fresh catalog from the backend
func (h *CatalogHandler) Sync(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.catalogService.Sync(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog synced", response.NewSyncResponse(result))
}

// List returns catalog items matching ?search= and ?category=
func (h *CatalogHandler) List(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var q request.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	items, err := h.catalogService.Search(c.Request.Context(), id, service.CatalogQuery{
		Search:   q.Search,
		Category: q.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []entity.SellableItem{}
	}
	response.OK(c, "Catalog retrieved", items)
}

// Groups returns phones by brand and accessories by subcategory
func (h *CatalogHandler) Groups(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	groups, err := h.catalogService.Groups(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog groups retrieved", response.NewCatalogGroupsResponse(groups))
}
