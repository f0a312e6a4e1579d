package response

import (
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
)

type PeriodTotalResponse struct {
	Period string `json:"period"`
	Sales  string `json:"sales"`
	Profit string `json:"profit"`
	Count  int    `json:"count"`
}

// ReportResponse is the sales summary shown on the dashboard
type ReportResponse struct {
	Filter           repository.TransactionFilter `json:"filter,omitempty"`
	TransactionCount int                          `json:"transaction_count"`
	TodaySales       string                       `json:"today_sales"`
	TodayProfit      string                       `json:"today_profit"`
	TotalSales       string                       `json:"total_sales"`
	TotalProfit      string                       `json:"total_profit"`
	Weekly           []PeriodTotalResponse        `json:"weekly"`
	Monthly          []PeriodTotalResponse        `json:"monthly"`
}

func NewReportResponse(s *service.ReportSummary) *ReportResponse {
	return &ReportResponse{
		Filter:           s.Filter,
		TransactionCount: s.TransactionCount,
		TodaySales:       money(s.TodaySales),
		TodayProfit:      money(s.TodayProfit),
		TotalSales:       money(s.TotalSales),
		TotalProfit:      money(s.TotalProfit),
		Weekly:           periodsOf(s.Weekly),
		Monthly:          periodsOf(s.Monthly),
	}
}

func periodsOf(periods []service.PeriodTotal) []PeriodTotalResponse {
	out := make([]PeriodTotalResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, PeriodTotalResponse{
			Period: p.Period,
			Sales:  money(p.Sales),
			Profit: money(p.Profit),
			Count:  p.Count,
		})
	}
	return out
}
