package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/internal/domain/pricing"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/sangkips/phonehub-pos/pkg/apperror"
	"go.uber.org/zap"
)

// CatalogService syncs and queries the per-session catalog snapshot
type CatalogService struct {
	sessionAccess
	catalogRepo repository.CatalogRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	sessions repository.SessionRepository,
	engine *pricing.Engine,
	catalogRepo repository.CatalogRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		sessionAccess: sessionAccess{repo: sessions, engine: engine},
		catalogRepo:   catalogRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// CartAdjustment records a cart line changed because stock dropped on sync
type CartAdjustment struct {
	Key         entity.ItemKey
	DisplayName string
	From        int
	To          int
}

// SyncResult summarizes a catalog sync
type SyncResult struct {
	Items       int
	SyncedAt    time.Time
	Adjustments []CartAdjustment
}

// Sync replaces the session's catalog with a fresh pull from the
// collaborator. Cart lines keep their price snapshots; lines above the new
// stock are lowered and lines for items that are gone or out of stock are
// removed, so every line stays within stock.
func (s *CatalogService) Sync(ctx context.Context, sessionID uuid.UUID) (*SyncResult, error) {
	if _, err := s.load(sessionID); err != nil {
		return nil, err
	}

	raw, err := s.catalogRepo.FetchCatalog(ctx)
	if err != nil {
		s.logger.Error("catalog fetch failed", zap.String("session_id", sessionID.String()), zap.Error(err))
		return nil, apperror.NewUpstreamError("fetch catalog", err)
	}
	items := NormalizeCatalog(raw)
	catalog := entity.NewCatalog(items, s.now())

	result := &SyncResult{Items: len(items), SyncedAt: catalog.SyncedAt}
	_, err = s.mutate(sessionID, func(session *entity.Session) error {
		session.Catalog = catalog
		result.Adjustments = reconcileCart(session.Cart, catalog)
		if len(result.Adjustments) > 0 {
			invalidatePendingCheckout(session)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog synced",
		zap.String("session_id", sessionID.String()),
		zap.Int("items", len(items)),
		zap.Int("cart_adjustments", len(result.Adjustments)),
	)
	return result, nil
}

func reconcileCart(cart *entity.Cart, catalog *entity.Catalog) []CartAdjustment {
	var adjustments []CartAdjustment
	for _, line := range cart.Lines() {
		item, ok := catalog.Get(line.Key())
		stock := 0
		if ok {
			stock = item.AvailableStock
		}
		if line.Quantity <= stock {
			continue
		}
		adj := CartAdjustment{
			Key:         line.Key(),
			DisplayName: line.DisplayName,
			From:        line.Quantity,
			To:          stock,
		}
		if stock > 0 {
			if err := cart.UpdateQuantity(item, stock); err != nil {
				adj.To = 0
			}
		}
		if adj.To == 0 {
			cart.Remove(line.Key())
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments
}

// CatalogQuery filters a catalog listing
type CatalogQuery struct {
	Search   string
	Category string // all, phone or accessory
}

// Search lists catalog items matching the query in sync order. The search
// term matches name, brand or SKU case-insensitively.
func (s *CatalogService) Search(ctx context.Context, sessionID uuid.UUID, q CatalogQuery) ([]entity.SellableItem, error) {
	var category *enum.Category
	if c := strings.TrimSpace(q.Category); c != "" && !strings.EqualFold(c, "all") {
		parsed, ok := enum.ParseCategory(c)
		if !ok {
			return nil, apperror.NewBadRequestError("Invalid category. Use 'all', 'phone' or 'accessory'")
		}
		category = &parsed
	}

	items, err := s.items(sessionID)
	if err != nil {
		return nil, err
	}
	return FilterItems(items, q.Search, category), nil
}

// FilterItems applies a search term and optional category filter
func FilterItems(items []entity.SellableItem, term string, category *enum.Category) []entity.SellableItem {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []entity.SellableItem{}
	for _, item := range items {
		if category != nil && item.Category != *category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(item.DisplayName), term) &&
			!strings.Contains(strings.ToLower(item.Brand), term) &&
			!strings.Contains(strings.ToLower(item.SKU), term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ItemGroup is a named group of catalog items
type ItemGroup struct {
	Name  string
	Items []entity.SellableItem
}

// CatalogGroups groups phones by brand and accessories by subcategory
type CatalogGroups struct {
	PhonesByBrand            []ItemGroup
	AccessoriesBySubcategory []ItemGroup
}

// Groups returns the grouped catalog of a session
func (s *CatalogService) Groups(ctx context.Context, sessionID uuid.UUID) (*CatalogGroups, error) {
	items, err := s.items(sessionID)
	if err != nil {
		return nil, err
	}
	return &CatalogGroups{
		PhonesByBrand:            GroupByBrand(items),
		AccessoriesBySubcategory: GroupBySubcategory(items),
	}, nil
}

// GroupByBrand groups phones by brand, sorted by brand name
func GroupByBrand(items []entity.SellableItem) []ItemGroup {
	return groupBy(items, enum.CategoryPhone, func(i entity.SellableItem) string {
		return i.Brand
	}, unknownBrand)
}

// GroupBySubcategory groups accessories by subcategory, sorted by name
func GroupBySubcategory(items []entity.SellableItem) []ItemGroup {
	return groupBy(items, enum.CategoryAccessory, func(i entity.SellableItem) string {
		return i.Subcategory
	}, defaultSubcategory)
}

func groupBy(items []entity.SellableItem, category enum.Category, keyOf func(entity.SellableItem) string, fallback string) []ItemGroup {
	byName := map[string][]entity.SellableItem{}
	for _, item := range items {
		if item.Category != category {
			continue
		}
		name := keyOf(item)
		if name == "" {
			name = fallback
		}
		byName[name] = append(byName[name], item)
	}

	groups := make([]ItemGroup, 0, len(byName))
	for name, list := range byName {
		groups = append(groups, ItemGroup{Name: name, Items: list})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}

func (s *CatalogService) items(sessionID uuid.UUID) ([]entity.SellableItem, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	return session.Catalog.Items(), nil
}
