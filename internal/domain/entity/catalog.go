package entity

import "time"

// Catalog is a session's snapshot of sellable items from the last sync.
// Stock figures change locally only through DecrementStock after a commit.
type Catalog struct {
	items    map[ItemKey]*SellableItem
	order    []ItemKey
	SyncedAt time.Time
}

// NewCatalog builds a snapshot. Later duplicates of a key replace earlier ones
// but keep the first position.
func NewCatalog(items []SellableItem, syncedAt time.Time) *Catalog {
	c := &Catalog{
		items:    make(map[ItemKey]*SellableItem, len(items)),
		order:    make([]ItemKey, 0, len(items)),
		SyncedAt: syncedAt,
	}
	for i := range items {
		item := items[i]
		key := item.Key()
		if _, exists := c.items[key]; !exists {
			c.order = append(c.order, key)
		}
		c.items[key] = &item
	}
	return c
}

// Get returns a copy of the item with the given key
func (c *Catalog) Get(key ItemKey) (SellableItem, bool) {
	if c == nil {
		return SellableItem{}, false
	}
	item, ok := c.items[key]
	if !ok {
		return SellableItem{}, false
	}
	return *item, true
}

// Items returns copies of all items in sync order
func (c *Catalog) Items() []SellableItem {
	if c == nil {
		return []SellableItem{}
	}
	out := make([]SellableItem, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, *c.items[key])
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// DecrementStock lowers the stock of an item, never below zero.
func (c *Catalog) DecrementStock(key ItemKey, qty int) {
	if c == nil {
		return
	}
	item, ok := c.items[key]
	if !ok {
		return
	}
	item.AvailableStock -= qty
	if item.AvailableStock < 0 {
		item.AvailableStock = 0
	}
}
