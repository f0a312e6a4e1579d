package response

import (
	"time"

	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
)

type CartAdjustmentResponse struct {
	Category    enum.Category `json:"category"`
	ItemID      string        `json:"item_id"`
	DisplayName string        `json:"display_name"`
	From        int           `json:"from"`
	To          int           `json:"to"`
}

// SyncResponse summarizes a catalog sync
type SyncResponse struct {
	Items       int                      `json:"items"`
	SyncedAt    time.Time                `json:"synced_at"`
	Adjustments []CartAdjustmentResponse `json:"adjustments"`
}

func NewSyncResponse(r *service.SyncResult) *SyncResponse {
	adjustments := make([]CartAdjustmentResponse, 0, len(r.Adjustments))
	for _, a := range r.Adjustments {
		adjustments = append(adjustments, CartAdjustmentResponse{
			Category:    a.Key.Category,
			ItemID:      a.Key.ID,
			DisplayName: a.DisplayName,
			From:        a.From,
			To:          a.To,
		})
	}
	return &SyncResponse{Items: r.Items, SyncedAt: r.SyncedAt, Adjustments: adjustments}
}

type ItemGroupResponse struct {
	Name  string                `json:"name"`
	Items []entity.SellableItem `json:"items"`
}

type CatalogGroupsResponse struct {
	PhonesByBrand            []ItemGroupResponse `json:"phones_by_brand"`
	AccessoriesBySubcategory []ItemGroupResponse `json:"accessories_by_subcategory"`
}

func NewCatalogGroupsResponse(g *service.CatalogGroups) *CatalogGroupsResponse {
	return &CatalogGroupsResponse{
		PhonesByBrand:            groupsOf(g.PhonesByBrand),
		AccessoriesBySubcategory: groupsOf(g.AccessoriesBySubcategory),
	}
}

func groupsOf(groups []service.ItemGroup) []ItemGroupResponse {
	out := make([]ItemGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, ItemGroupResponse{Name: g.Name, Items: g.Items})
	}
	return out
}
