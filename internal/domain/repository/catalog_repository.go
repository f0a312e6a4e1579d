package repository

import "context"

// CatalogRepository fetches the sellable inventory from the persistence
// collaborator
type CatalogRepository interface {
	// FetchCatalog returns the raw item records as a JSON document. Shapes
	// vary by category; the catalog adapter normalizes them.
	FetchCatalog(ctx context.Context) ([]byte, error)
}
