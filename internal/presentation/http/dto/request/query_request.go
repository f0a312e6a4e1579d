package request

import "github.com/sangkips/phonehub-pos/pkg/pagination"

// CatalogQuery filters the catalog listing of a session
type CatalogQuery struct {
	Search   string `form:"search" binding:"max=100"`
	Category string `form:"category"`
}

// ReportQuery selects the date range of a sales summary
type ReportQuery struct {
	Filter string `form:"filter" binding:"omitempty,oneof=today week month all"`
}

// TransactionQuery pages through the sales of a session
type TransactionQuery struct {
	pagination.PaginationParams
}
