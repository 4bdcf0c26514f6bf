package server_test

import (
	"context"
	"sort"
	"sync"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"
)

// in-memory repositories standing in for Postgres

type memProducts struct {
	mu    sync.Mutex
	items map[string]model.Product
}

func (m *memProducts) List(_ context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Product, 0, len(m.items))
	for _, p := range m.items {
		if q.Category == "" || p.Category == q.Category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, int64(len(out)), nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) Create(_ context.Context, p model.Product) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.ID] = p
	return p, nil
}

func (m *memProducts) Update(_ context.Context, p model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ID]; !ok {
		return repo.ErrNotFound
	}
	m.items[p.ID] = p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memOrders struct {
	mu     sync.Mutex
	orders []model.Order
	items  map[string][]model.OrderItem
}

func (m *memOrders) FindByID(_ context.Context, id string) (model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (m *memOrders) Create(_ context.Context, o model.Order) (model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, o)
	return o, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *memOrders) FindByIdempotencyKey(_ context.Context, sessionID, key string) (model.Order, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.SessionID == sessionID && o.IdempotencyKey == key {
			return o, true, nil
		}
	}
	return model.Order{}, false, nil
}

func (m *memOrders) ListAdmin(_ context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Order{}
	for _, o := range m.orders {
		if f.Status == "" || string(o.Status) == f.Status {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

type memOrderItems struct{ orders *memOrders }

func (m memOrderItems) CreateBulk(_ context.Context, orderID string, items []model.OrderItem) error {
	m.orders.mu.Lock()
	defer m.orders.mu.Unlock()
	m.orders.items[orderID] = append(m.orders.items[orderID], items...)
	return nil
}

func (m memOrderItems) ListByOrderID(_ context.Context, orderID string) ([]model.OrderItem, error) {
	m.orders.mu.Lock()
	defer m.orders.mu.Unlock()
	return append([]model.OrderItem{}, m.orders.items[orderID]...), nil
}

type memHero struct{}

func (memHero) Latest(context.Context) (model.HeroImage, error) {
	return model.HeroImage{}, repo.ErrNotFound
}

func (memHero) Create(_ context.Context, h model.HeroImage) (model.HeroImage, error) {
	return h, nil
}

type memSponsors struct{}

func (memSponsors) ListOrdered(context.Context) ([]model.SponsorImage, error) { return nil, nil }

func (memSponsors) FindByPosition(context.Context, int) (model.SponsorImage, error) {
	return model.SponsorImage{}, repo.ErrNotFound
}

func (memSponsors) DeleteByPosition(context.Context, int) error { return nil }

func (memSponsors) Create(_ context.Context, s model.SponsorImage) (model.SponsorImage, error) {
	return s, nil
}

type memAudit struct {
	mu   sync.Mutex
	logs []model.AuditLog
}

func (m *memAudit) Create(_ context.Context, l model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, l)
	return nil
}

func (m *memAudit) List(_ context.Context, _ repo.AuditLogFilter) ([]model.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AuditLog{}, m.logs...), nil
}

type memStore struct {
	products *memProducts
	orders   *memOrders
	audit    *memAudit
}

func newMemStore() *memStore {
	return &memStore{
		products: &memProducts{items: map[string]model.Product{}},
		orders:   &memOrders{items: map[string][]model.OrderItem{}},
		audit:    &memAudit{},
	}
}

func (s *memStore) Orders() repo.OrderRepository               { return s.orders }
func (s *memStore) OrderItems() repo.OrderItemRepository       { return memOrderItems{orders: s.orders} }
func (s *memStore) Products() repo.ProductRepository           { return s.products }
func (s *memStore) HeroImages() repo.HeroImageRepository       { return memHero{} }
func (s *memStore) SponsorImages() repo.SponsorImageRepository { return memSponsors{} }
func (s *memStore) AuditLogs() repo.AuditLogRepository         { return s.audit }

// no rollback; the flows under test do not fail midway
func (s *memStore) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s)
}

type fakeStorage struct{}

func (fakeStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://cdn.test/" + key, nil
}

type fakeVerifier struct{}

func (fakeVerifier) VerifyPassword(_ context.Context, email, password string) (string, error) {
	if email == "admin@emily.it" && password == "password123" {
		return "admin-user-id", nil
	}
	return "", repo.ErrNotFound
}
