package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/application/service"
	"github.com/sangkips/phonehub-pos/internal/config"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/sangkips/phonehub-pos/internal/domain/pricing"
	domainRepo "github.com/sangkips/phonehub-pos/internal/domain/repository"
	"github.com/sangkips/phonehub-pos/internal/infrastructure/events"
	"github.com/sangkips/phonehub-pos/internal/infrastructure/repository"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/handler"
	"github.com/sangkips/phonehub-pos/pkg/printer"
	"github.com/sangkips/phonehub-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const catalogJSON = `[
	{"id": 1, "type": "phone", "model_info": {"brand": "Apple", "model_name": "iPhone 13"},
	 "storage": 128, "ram": 4, "color": "Blue", "sell_price": 250, "cost_price": 150, "quantity": 5},
	{"id": 2, "type": "accessory", "name": "Clear Case", "brand": "Spigen", "sell_price": 40, "cost_price": 12, "quantity": 0}
]`

type fakeCatalog struct{}

func (fakeCatalog) FetchCatalog(context.Context) ([]byte, error) {
	return []byte(catalogJSON), nil
}

type fakeSales struct {
	mu       sync.Mutex
	payloads []*entity.SalePayload
}

func (s *fakeSales) CreateSale(_ context.Context, p *entity.SalePayload) (*entity.SaleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, p)
	return &entity.SaleResult{ID: "901"}, nil
}

func (s *fakeSales) FetchTransactions(context.Context, domainRepo.TransactionFilter) ([]byte, error) {
	return []byte(`{"data": []}`), nil
}

type server struct {
	router *gin.Engine
	token  string
	sales  *fakeSales
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	engine := pricing.Default()
	sessions, err := repository.NewSessionRepository(8)
	require.NoError(t, err)
	sales := &fakeSales{}
	header := entity.ReceiptHeader{StoreName: "PhoneHub"}

	catalogSvc := service.NewCatalogService(sessions, engine, fakeCatalog{}, log)
	sessionSvc := service.NewSessionService(sessions, engine, catalogSvc, log)
	cartSvc := service.NewCartService(sessions, engine, log)
	checkoutSvc := service.NewCheckoutService(sessions, engine, sales, events.NoopPublisher{}, header, log)
	reportSvc := service.NewReportService(sessions, engine, sales, log)
	printerSvc := service.NewPrinterService(printer.Null(), sessionSvc, header, printer.TypeNone, printer.Width58mm, log)

	jwt := utils.NewJWTManager("test-secret", time.Hour)
	token, err := jwt.GenerateAccessToken(uuid.New(), "Aina")
	require.NoError(t, err)

	cfg := &config.Config{App: config.AppConfig{Name: "phonehub-pos"}, Backend: config.BackendConfig{Mode: config.BackendModeHTTP}}
	router := Setup(&Handlers{
		Session:  handler.NewSessionHandler(sessionSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Cart:     handler.NewCartHandler(cartSvc),
		Checkout: handler.NewCheckoutHandler(checkoutSvc),
		Report:   handler.NewReportHandler(reportSvc),
		Printer:  handler.NewPrinterHandler(printerSvc),
	}, &Deps{JWTManager: jwt, Cfg: cfg, Logger: log, SessionCount: sessions.Count})

	return &server{router: router, token: token, sales: sales}
}

func (s *server) do(method, path, body string) (int, gjson.Result) {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w.Code, gjson.ParseBytes(w.Body.Bytes())
}

func (s *server) openSession(t *testing.T) string {
	t.Helper()
	code, body := s.do(http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, code, body.Raw)
	id := body.Get("data.id").String()
	require.NotEmpty(t, id)
	return id
}

func TestHealthIsPublic(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", gjson.Get(w.Body.String(), "status").String())
	assert.Equal(t, "http", gjson.Get(w.Body.String(), "backend").String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := newServer(t)
	id := s.openSession(t)
	base := "/api/v1/sessions/" + id

	code, body := s.do(http.MethodGet, base+"/catalog?category=phone", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Get("data").Array(), 1)

	for i := 0; i < 2; i++ {
		code, body = s.do(http.MethodPost, base+"/cart/items", `{"category":"phone","item_id":"1"}`)
		require.Equal(t, http.StatusOK, code, body.Raw)
	}
	assert.Equal(t, int64(2), body.Get("data.total_units").Int())

	code, _ = s.do(http.MethodPut, base+"/discount", `{"kind":"fixed","value":50}`)
	require.Equal(t, http.StatusOK, code)
	code, body = s.do(http.MethodPut, base+"/tax", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "477.00", body.Get("data.totals.total").String())

	code, body = s.do(http.MethodPost, base+"/checkout", "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Equal(t, "477.00", body.Get("data.expected_amount").String())
	assert.Equal(t, "awaiting_confirmation", body.Get("data.session.checkout.state").String())
	token := body.Get("data.token").String()

	code, body = s.do(http.MethodPost, base+"/checkout/confirm",
		`{"token":"`+token+`","payment_method":"cash","worker_id":"7","received_amount":"500"}`)
	require.Equal(t, http.StatusCreated, code, body.Raw)
	assert.Equal(t, "901", body.Get("data.transaction.id").String())
	assert.Equal(t, "23.00", body.Get("data.receipt.change").String())
	assert.Equal(t, "Aina", body.Get("data.receipt.cashier").String())
	assert.Empty(t, body.Get("data.session.items").Array())
	assert.Equal(t, "idle", body.Get("data.session.checkout.state").String())
	require.Len(t, s.sales.payloads, 1)

	code, body = s.do(http.MethodGet, base+"/receipt", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "CASH", body.Get("data.payment_method").String())

	code, body = s.do(http.MethodPost, base+"/receipt/print", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "901", body.Get("data.receipt.transaction_id").String())

	code, body = s.do(http.MethodGet, base+"/transactions?per_page=10", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), body.Get("data.pagination.total").Int())

	code, body = s.do(http.MethodGet, base+"/reports/today", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "477.00", body.Get("data.today_sales").String())
}

func TestErrorKinds(t *testing.T) {
	s := newServer(t)
	id := s.openSession(t)
	base := "/api/v1/sessions/" + id

	code, _ := s.do(http.MethodGet, "/api/v1/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := s.do(http.MethodGet, "/api/v1/sessions/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", body.Get("kind").String())

	code, body = s.do(http.MethodPost, base+"/cart/items", `{"category":"accessory","item_id":"2"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "out_of_stock", body.Get("kind").String())

	code, body = s.do(http.MethodPost, base+"/checkout", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "empty_cart", body.Get("kind").String())

	code, body = s.do(http.MethodPost, base+"/checkout/confirm", `{"worker_id":"7"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "checkout_not_initiated", body.Get("kind").String())

	code, _ = s.do(http.MethodPost, base+"/cart/items", `{"category":"phone","item_id":"1"}`)
	require.Equal(t, http.StatusOK, code)
	code, body = s.do(http.MethodPost, base+"/checkout", "")
	require.Equal(t, http.StatusOK, code)
	token := body.Get("data.token").String()

	code, body = s.do(http.MethodPost, base+"/checkout/confirm", `{"token":"`+token+`","worker_id":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "worker_required", body.Get("kind").String())

	code, body = s.do(http.MethodPost, base+"/checkout/confirm", `{"token":"`+token+`","worker_id":"7","payment_method":"bitcoin"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "validation", body.Get("kind").String())

	code, _ = s.do(http.MethodPut, base+"/discount", `{"kind":"bogus","value":1}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(http.MethodPut, base+"/discount", `{"kind":"percentage","value":150}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "value", body.Get("errors.0.field").String())

	assert.Empty(t, s.sales.payloads)
}

func TestDeleteSession(t *testing.T) {
	s := newServer(t)
	id := s.openSession(t)

	code, _ := s.do(http.MethodDelete, "/api/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = s.do(http.MethodGet, "/api/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReportSummaryFilter(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/v1/reports/summary?filter=week", "")
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.Equal(t, "week", body.Get("data.filter").String())
	assert.Equal(t, "0.00", body.Get("data.total_sales").String())

	code, _ = s.do(http.MethodGet, "/api/v1/reports/summary?filter=year", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPrinterStatus(t *testing.T) {
	s := newServer(t)
	code, body := s.do(http.MethodGet, "/api/v1/printer/status", "")
	require.Equal(t, http.StatusOK, code)
	assert.False(t, body.Get("data.configured").Bool())
	assert.Equal(t, int64(32), body.Get("data.width").Int())
}
