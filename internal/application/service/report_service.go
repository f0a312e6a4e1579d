package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/pricing"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/sangkips/phonehub-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// PeriodTotal is the sales and profit of one day or month
type PeriodTotal struct {
	Period string
	Sales  decimal.Decimal
	Profit decimal.Decimal
	Count  int
}

// ReportSummary aggregates a list of transactions
type ReportSummary struct {
	Filter           repository.TransactionFilter
	TransactionCount int
	TodaySales       decimal.Decimal
	TodayProfit      decimal.Decimal
	TotalSales       decimal.Decimal
	TotalProfit      decimal.Decimal
	Weekly           []PeriodTotal
	Monthly          []PeriodTotal
}

// sameLocalDay reports whether t falls on the local calendar day of now.
// A zero time never matches.
func sameLocalDay(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	ty, tm, td := t.In(time.Local).Date()
	ny, nm, nd := now.In(time.Local).Date()
	return ty == ny && tm == nm && td == nd
}

// TodaySales sums the total of transactions dated on now's local day
func TodaySales(txns []entity.Transaction, now time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		if sameLocalDay(t.Date, now) {
			sum = sum.Add(t.Total)
		}
	}
	return sum
}

// TodayProfit sums the profit of transactions dated on now's local day
func TodayProfit(txns []entity.Transaction, now time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		if sameLocalDay(t.Date, now) {
			sum = sum.Add(t.Profit)
		}
	}
	return sum
}

// WeeklyBreakdown returns seven local days ending today, oldest first. Days
// without sales are present with zero totals.
func WeeklyBreakdown(txns []entity.Transaction, now time.Time) []PeriodTotal {
	now = now.In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	days := make([]PeriodTotal, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		key := today.AddDate(0, 0, i-6).Format(dayKeyLayout)
		days[i] = PeriodTotal{Period: key, Sales: decimal.Zero, Profit: decimal.Zero}
		index[key] = i
	}

	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		i, ok := index[t.Date.In(time.Local).Format(dayKeyLayout)]
		if !ok {
			continue
		}
		days[i].Sales = days[i].Sales.Add(t.Total)
		days[i].Profit = days[i].Profit.Add(t.Profit)
		days[i].Count++
	}
	return days
}

// MonthlyBreakdown groups dated transactions by local month, oldest first
func MonthlyBreakdown(txns []entity.Transaction) []PeriodTotal {
	byMonth := map[string]*PeriodTotal{}
	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		key := t.Date.In(time.Local).Format(monthKeyLayout)
		p, ok := byMonth[key]
		if !ok {
			p = &PeriodTotal{Period: key, Sales: decimal.Zero, Profit: decimal.Zero}
			byMonth[key] = p
		}
		p.Sales = p.Sales.Add(t.Total)
		p.Profit = p.Profit.Add(t.Profit)
		p.Count++
	}

	out := make([]PeriodTotal, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// Summarize builds a ReportSummary relative to now
func Summarize(filter repository.TransactionFilter, txns []entity.Transaction, now time.Time) *ReportSummary {
	total, profit := decimal.Zero, decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Total)
		profit = profit.Add(t.Profit)
	}
	return &ReportSummary{
		Filter:           filter,
		TransactionCount: len(txns),
		TodaySales:       TodaySales(txns, now),
		TodayProfit:      TodayProfit(txns, now),
		TotalSales:       total,
		TotalProfit:      profit,
		Weekly:           WeeklyBreakdown(txns, now),
		Monthly:          MonthlyBreakdown(txns),
	}
}

// ReportService reports on session history and on sales recorded by the
// persistence collaborator
type ReportService struct {
	sessionAccess
	saleRepo repository.SaleRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	sessions repository.SessionRepository,
	engine *pricing.Engine,
	saleRepo repository.SaleRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		sessionAccess: sessionAccess{repo: sessions, engine: engine},
		saleRepo:      saleRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// SessionToday summarizes the sales committed in one session
func (s *ReportService) SessionToday(ctx context.Context, sessionID uuid.UUID) (*ReportSummary, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	session.Lock()
	txns := make([]entity.Transaction, len(session.Transactions))
	copy(txns, session.Transactions)
	session.Unlock()

	return Summarize(repository.FilterAll, txns, s.now()), nil
}

// Summary fetches sale records for filter and summarizes them
func (s *ReportService) Summary(ctx context.Context, filter repository.TransactionFilter) (*ReportSummary, error) {
	raw, err := s.saleRepo.FetchTransactions(ctx, filter)
	if err != nil {
		s.logger.Error("transaction fetch failed", zap.String("filter", string(filter)), zap.Error(err))
		return nil, apperror.NewUpstreamError("fetch transactions", err)
	}
	return Summarize(filter, NormalizeTransactions(raw), s.now()), nil
}
