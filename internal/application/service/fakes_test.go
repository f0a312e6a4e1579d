package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/enum"
	"github.com/sangkips/phonehub-pos/internal/domain/pricing"
	"github.com/sangkips/phonehub-pos/internal/domain/repository"
	"go.uber.org/zap"
)

type memorySessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[uuid.UUID]*entity.Session{}}
}

func (m *memorySessions) Save(s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memorySessions) Get(id uuid.UUID) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id], nil
}

func (m *memorySessions) Delete(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	return ok
}

func (m *memorySessions) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type stubCatalog struct {
	raw   string
	err   error
	calls int
}

func (s *stubCatalog) FetchCatalog(ctx context.Context) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.raw), nil
}

// stubSales records every payload. When block is set, CreateSale waits on
// it after signalling started.
type stubSales struct {
	mu       sync.Mutex
	payloads []*entity.SalePayload
	err      error
	id       string
	started  chan struct{}
	block    chan struct{}
	raw      string
	filter   repository.TransactionFilter
}

func (s *stubSales) CreateSale(ctx context.Context, p *entity.SalePayload) (*entity.SaleResult, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, p)
	if s.err != nil {
		return nil, s.err
	}
	return &entity.SaleResult{ID: s.id}, nil
}

func (s *stubSales) FetchTransactions(ctx context.Context, f repository.TransactionFilter) ([]byte, error) {
	s.filter = f
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.raw), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*entity.SaleCommittedEvent
	err    error
}

func (p *recordingPublisher) PublishSaleCommitted(ctx context.Context, e *entity.SaleCommittedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// shopCatalog holds the phone used by the end-to-end checkout example plus
// a cheap accessory sharing its id.
const shopCatalog = `[
	{"id": 1, "type": "phone", "model_info": {"brand": "Apple", "model_name": "iPhone 13"},
	 "storage": 128, "ram": 4, "color": "Blue", "sell_price": 250, "cost_price": 150, "quantity": 5},
	{"id": 1, "type": "accessory", "name": "USB-C Cable", "sku": "CB-01", "brand": "Anker",
	 "subcategory": "Cables", "sell_price": "15.00", "cost_price": "5.00", "quantity": 2},
	{"id": 2, "type": "accessory", "name": "Clear Case", "brand": "Spigen", "sell_price": 40, "cost_price": 12, "quantity": 0}
]`

var (
	phoneA   = entity.ItemKey{Category: enum.CategoryPhone, ID: "1"}
	cableKey = entity.ItemKey{Category: enum.CategoryAccessory, ID: "1"}
	caseKey  = entity.ItemKey{Category: enum.CategoryAccessory, ID: "2"}
)

type fixture struct {
	sessions  *memorySessions
	catalog   *stubCatalog
	sales     *stubSales
	publisher *recordingPublisher

	session  *SessionService
	catSvc   *CatalogService
	cart     *CartService
	checkout *CheckoutService
	report   *ReportService
}

func newFixture() *fixture {
	f := &fixture{
		sessions:  newMemorySessions(),
		catalog:   &stubCatalog{raw: shopCatalog},
		sales:     &stubSales{id: "501"},
		publisher: &recordingPublisher{},
	}
	logger := zap.NewNop()
	engine := pricing.Default()
	f.catSvc = NewCatalogService(f.sessions, engine, f.catalog, logger)
	f.session = NewSessionService(f.sessions, engine, f.catSvc, logger)
	f.cart = NewCartService(f.sessions, engine, logger)
	f.checkout = NewCheckoutService(f.sessions, engine, f.sales, f.publisher,
		entity.ReceiptHeader{StoreName: "PhoneHub"}, logger)
	f.report = NewReportService(f.sessions, engine, f.sales, logger)
	return f
}
