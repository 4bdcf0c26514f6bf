package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"
	"github.com/LCtech96/EmilyBoutique/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, sessionID string, key string) (model.Order, bool, error) {
	args := m.Called(ctx, sessionID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type HeroRepoMock struct{ mock.Mock }

func (m *HeroRepoMock) Latest(ctx context.Context) (model.HeroImage, error) {
	args := m.Called(ctx)
	h, _ := args.Get(0).(model.HeroImage)
	return h, args.Error(1)
}

func (m *HeroRepoMock) Create(ctx context.Context, h model.HeroImage) (model.HeroImage, error) {
	args := m.Called(ctx, h)
	created, _ := args.Get(0).(model.HeroImage)
	return created, args.Error(1)
}

type SponsorRepoMock struct{ mock.Mock }

func (m *SponsorRepoMock) ListOrdered(ctx context.Context) ([]model.SponsorImage, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.SponsorImage)
	return items, args.Error(1)
}

func (m *SponsorRepoMock) FindByPosition(ctx context.Context, position int) (model.SponsorImage, error) {
	args := m.Called(ctx, position)
	s, _ := args.Get(0).(model.SponsorImage)
	return s, args.Error(1)
}

func (m *SponsorRepoMock) DeleteByPosition(ctx context.Context, position int) error {
	return m.Called(ctx, position).Error(0)
}

func (m *SponsorRepoMock) Create(ctx context.Context, s model.SponsorImage) (model.SponsorImage, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.SponsorImage)
	return created, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}

type StorageMock struct{ mock.Mock }

func (m *StorageMock) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

// TxManager that runs fn directly against the mocks
type txReposMock struct {
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	products   *ProductRepoMock
	hero       *HeroRepoMock
	sponsors   *SponsorRepoMock
	audit      *AuditRepoMock
}

func newTxReposMock() *txReposMock {
	return &txReposMock{
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		products:   new(ProductRepoMock),
		hero:       new(HeroRepoMock),
		sponsors:   new(SponsorRepoMock),
		audit:      new(AuditRepoMock),
	}
}

func (r *txReposMock) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposMock) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *txReposMock) Products() repo.ProductRepository           { return r.products }
func (r *txReposMock) HeroImages() repo.HeroImageRepository       { return r.hero }
func (r *txReposMock) SponsorImages() repo.SponsorImageRepository { return r.sponsors }
func (r *txReposMock) AuditLogs() repo.AuditLogRepository         { return r.audit }

type txManagerMock struct {
	repos *txReposMock
	calls int
}

func (m *txManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.calls++
	return fn(m.repos)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// =====================
// helpers
// =====================

func assertHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if !assert.True(t, ok, "expected HTTPError, got %v", err) {
		return
	}
	assert.Equal(t, status, he.Status)
	assert.Equal(t, msg, he.Message)
}

func assertErrContains(t *testing.T, err error, substr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), substr)
	}
}
