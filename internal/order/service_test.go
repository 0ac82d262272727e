package order

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nikshi-16/amazon/internal/cache"
	"github.com/nikshi-16/amazon/internal/domain"
	"github.com/nikshi-16/amazon/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	m      sync.RWMutex
	orders map[string]*domain.Order
	err    error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: map[string]*domain.Order{}}
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepo) FindByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) SetPaymentResult(_ context.Context, id string, result *domain.PaymentResult) error {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.PaymentResult = result
	return nil
}

func (m *mockOrderRepo) SetPaid(_ context.Context, id string, paidAt time.Time, result *domain.PaymentResult) error {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentResult = result
	return nil
}

func (m *mockOrderRepo) UserEmail(context.Context, string) (string, error) {
	return "jane@example.com", nil
}

type mockCache struct {
	m      sync.RWMutex
	orders map[string]*domain.Order
}

func newMockCache() *mockCache {
	return &mockCache{orders: map[string]*domain.Order{}}
}

func (m *mockCache) Get(_ context.Context, id string) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return order, nil
}

func (m *mockCache) Set(_ context.Context, id string, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.orders[id] = order
	return nil
}

func (m *mockCache) Delete(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.orders, id)
	return nil
}

func (m *mockCache) get(id string) *domain.Order {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.orders[id]
}

func validCart() *domain.Cart {
	return &domain.Cart{
		UserID: "u1",
		Items: []domain.OrderItem{
			{
				ClientID:     "c1",
				ProductID:    "p1",
				Name:         "Widget",
				Slug:         "widget",
				Price:        decimal.NewFromInt(10),
				Quantity:     1,
				CountInStock: 5,
			},
			{
				ClientID:     "c2",
				ProductID:    "p2",
				Name:         "Gadget",
				Slug:         "gadget",
				Price:        decimal.NewFromInt(20),
				Quantity:     1,
				CountInStock: 5,
			},
		},
		PaymentMethod: string(domain.PaymentMethodPayPal),
		ShippingAddress: &domain.ShippingAddress{
			FullName: "Jane Doe", Street: "1 Main St", City: "Berlin",
			PostalCode: "10115", Country: "DE", Phone: "030",
		},
	}
}

func TestCreateOrder_Success(t *testing.T) {
	repo := newMockOrderRepo()
	sut := NewService(repo, newMockCache(), zerolog.Nop())

	orderID, err := sut.CreateOrder(context.Background(), "u1", validCart())
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	saved := repo.orders[orderID]
	require.NotNil(t, saved)
	assert.False(t, saved.IsPaid)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, "30.00", saved.ItemsPrice.StringFixed(2))
	assert.Equal(t, "4.90", saved.ShippingPrice.StringFixed(2))
	assert.Equal(t, "4.50", saved.TaxPrice.StringFixed(2))
	assert.Equal(t, "39.40", saved.TotalPrice.StringFixed(2))
	assert.False(t, saved.ExpectedDeliveryDate.IsZero())
}

func TestCreateOrder_ClientPricesAreIgnored(t *testing.T) {
	repo := newMockOrderRepo()
	sut := NewService(repo, newMockCache(), zerolog.Nop())

	cart := validCart()
	// tampered client-side values
	cart.ItemsPrice = decimal.NewFromFloat(0.01)
	cart.TotalPrice = decimal.NewFromFloat(0.01)
	free := decimal.Zero
	cart.ShippingPrice = &free

	orderID, err := sut.CreateOrder(context.Background(), "u1", cart)
	require.NoError(t, err)

	saved := repo.orders[orderID]
	assert.Equal(t, "30.00", saved.ItemsPrice.StringFixed(2))
	assert.Equal(t, "39.40", saved.TotalPrice.StringFixed(2))
}

func TestCreateOrder_NotAuthenticated(t *testing.T) {
	sut := NewService(newMockOrderRepo(), newMockCache(), zerolog.Nop())

	_, err := sut.CreateOrder(context.Background(), "", validCart())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCreateOrder_MissingAddress(t *testing.T) {
	sut := NewService(newMockOrderRepo(), newMockCache(), zerolog.Nop())

	cart := validCart()
	cart.ShippingAddress = nil
	_, err := sut.CreateOrder(context.Background(), "u1", cart)
	require.ErrorIs(t, err, ErrMissingShippingAddress)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	repo := newMockOrderRepo()
	sut := NewService(repo, newMockCache(), zerolog.Nop())

	cart := validCart()
	cart.Items = nil
	_, err := sut.CreateOrder(context.Background(), "u1", cart)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "items")
	assert.Empty(t, repo.orders)
}

func TestCreateOrder_QuantityOverStock(t *testing.T) {
	sut := NewService(newMockOrderRepo(), newMockCache(), zerolog.Nop())

	cart := validCart()
	cart.Items[0].Quantity = 99
	_, err := sut.CreateOrder(context.Background(), "u1", cart)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "items[0].quantity")
}

func TestCreateOrder_MissingPaymentMethod(t *testing.T) {
	sut := NewService(newMockOrderRepo(), newMockCache(), zerolog.Nop())

	cart := validCart()
	cart.PaymentMethod = ""
	_, err := sut.CreateOrder(context.Background(), "u1", cart)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "payment_method")
}

func TestCreateOrder_RepoError(t *testing.T) {
	repo := newMockOrderRepo()
	repo.err = fmt.Errorf("database error")
	sut := NewService(repo, newMockCache(), zerolog.Nop())

	_, err := sut.CreateOrder(context.Background(), "u1", validCart())
	require.ErrorContains(t, err, "database error")
}

func TestGetOrder_CacheMissFallsThroughAndSets(t *testing.T) {
	repo := newMockOrderRepo()
	repo.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1"}
	c := newMockCache()
	sut := NewService(repo, c, zerolog.Nop())

	got, err := sut.GetOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", got.ID)

	require.Eventually(t, func() bool {
		return c.get("o1") != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "order was not set in cache")
}

func TestGetOrder_CacheHitSkipsRepo(t *testing.T) {
	repo := newMockOrderRepo()
	repo.err = fmt.Errorf("repo should not be called")
	c := newMockCache()
	c.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1"}
	sut := NewService(repo, c, zerolog.Nop())

	got, err := sut.GetOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", got.ID)
}

func TestGetOrder_NotFound(t *testing.T) {
	sut := NewService(newMockOrderRepo(), newMockCache(), zerolog.Nop())

	_, err := sut.GetOrder(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestListUserOrders(t *testing.T) {
	repo := newMockOrderRepo()
	repo.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1"}
	repo.orders["o2"] = &domain.Order{ID: "o2", UserID: "u2"}
	sut := NewService(repo, newMockCache(), zerolog.Nop())

	orders, err := sut.ListUserOrders(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)

	_, err = sut.ListUserOrders(context.Background(), "")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}
