package services_test

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"order-backend/models"
	"order-backend/repository"
)

// ---- in-memory user repository ----

type memUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[uint]*models.User)}
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.nextID
	m.nextID++
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for id := uint(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUserRepo) FindByActive(_ context.Context, active bool) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for id := uint(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok && u.Active == active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) Update(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

// ---- in-memory product repository ----

type memProductRepo struct {
	mu       sync.Mutex
	nextID   uint
	products map[uint]*models.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{nextID: 1, products: make(map[uint]*models.Product)}
}

func (m *memProductRepo) Create(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = m.nextID
	m.nextID++
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	return m.filter(func(*models.Product) bool { return true }), nil
}

func (m *memProductRepo) FindByActive(_ context.Context, active bool) ([]models.Product, error) {
	return m.filter(func(p *models.Product) bool { return p.Active == active }), nil
}

func (m *memProductRepo) FindByCategory(_ context.Context, category string) ([]models.Product, error) {
	return m.filter(func(p *models.Product) bool { return p.Category == category }), nil
}

func (m *memProductRepo) FindInStock(_ context.Context) ([]models.Product, error) {
	return m.filter(func(p *models.Product) bool { return p.StockQuantity > 0 }), nil
}

func (m *memProductRepo) SearchByName(_ context.Context, keyword string) ([]models.Product, error) {
	return m.filter(func(p *models.Product) bool { return p.Name == keyword }), nil
}

func (m *memProductRepo) filter(keep func(*models.Product) bool) []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for id := uint(1); id < m.nextID; id++ {
		if p, ok := m.products[id]; ok && keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (m *memProductRepo) Update(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *memProductRepo) DecrementStock(_ context.Context, id uint, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.StockQuantity < quantity {
		return repository.ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	return nil
}

func (m *memProductRepo) IncrementStock(_ context.Context, id uint, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += quantity
	return nil
}

// ---- in-memory order repository ----

type memOrderRepo struct {
	mu     sync.Mutex
	nextID uint
	orders map[uint]*models.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{nextID: 1, orders: make(map[uint]*models.Order)}
}

func (m *memOrderRepo) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = m.nextID
	m.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	clone := cloneOrder(order)
	m.orders[order.ID] = clone
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneOrder(o), nil
}

func (m *memOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			return cloneOrder(o), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memOrderRepo) FindByUserID(_ context.Context, userID uint) ([]models.Order, error) {
	return m.filter(func(o *models.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrderRepo) FindByStatus(_ context.Context, status models.OrderStatus) ([]models.Order, error) {
	return m.filter(func(o *models.Order) bool { return o.Status == status }), nil
}

func (m *memOrderRepo) FindByUserIDAndStatus(_ context.Context, userID uint, status models.OrderStatus) ([]models.Order, error) {
	return m.filter(func(o *models.Order) bool { return o.UserID == userID && o.Status == status }), nil
}

func (m *memOrderRepo) filter(keep func(*models.Order) bool) []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for id := uint(1); id < m.nextID; id++ {
		if o, ok := m.orders[id]; ok && keep(o) {
			out = append(out, *cloneOrder(o))
		}
	}
	return out
}

func (m *memOrderRepo) Update(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = cloneOrder(order)
	return nil
}

func cloneOrder(o *models.Order) *models.Order {
	clone := *o
	clone.Items = append([]models.OrderItem(nil), o.Items...)
	return &clone
}

// ---- in-memory payment repository ----

type memPaymentRepo struct {
	mu       sync.Mutex
	nextID   uint
	payments map[uint]*models.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{nextID: 1, payments: make(map[uint]*models.Payment)}
}

func (m *memPaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment.ID = m.nextID
	m.nextID++
	clone := *payment
	m.payments[payment.ID] = &clone
	return nil
}

func (m *memPaymentRepo) FindByID(_ context.Context, id uint) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memPaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.TransactionID == transactionID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memPaymentRepo) FindByOrderID(_ context.Context, orderID uint) ([]models.Payment, error) {
	return m.filter(func(p *models.Payment) bool { return p.OrderID == orderID }), nil
}

func (m *memPaymentRepo) FindByStatus(_ context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	return m.filter(func(p *models.Payment) bool { return p.Status == status }), nil
}

func (m *memPaymentRepo) filter(keep func(*models.Payment) bool) []models.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for id := uint(1); id < m.nextID; id++ {
		if p, ok := m.payments[id]; ok && keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (m *memPaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *payment
	m.payments[payment.ID] = &clone
	return nil
}

// ---- transaction manager passthrough ----

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---- recording notifier ----

type sentNotification struct {
	kind  string
	email string
	data  []string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) record(kind, email string, data ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{kind: kind, email: email, data: data})
}

func (n *recordingNotifier) Welcome(_ context.Context, email, firstName string) {
	n.record("welcome", email, firstName)
}

func (n *recordingNotifier) OrderConfirmation(_ context.Context, email, orderNumber string) {
	n.record("order_confirmation", email, orderNumber)
}

func (n *recordingNotifier) PaymentConfirmation(_ context.Context, email, orderNumber, transactionID string) {
	n.record("payment_confirmation", email, orderNumber, transactionID)
}

func (n *recordingNotifier) OrderShipped(_ context.Context, email, orderNumber, trackingNumber string) {
	n.record("order_shipped", email, orderNumber, trackingNumber)
}

func (n *recordingNotifier) PasswordReset(_ context.Context, email, resetToken string) {
	n.record("password_reset", email, resetToken)
}

func (n *recordingNotifier) LowStockAlert(_ context.Context, productName string, currentStock int) {
	n.record("low_stock", "", productName)
}

func (n *recordingNotifier) byKind(kind string) []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentNotification
	for _, s := range n.sent {
		if s.kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// ---- recording auditor ----

type recordingAuditor struct {
	mu     sync.Mutex
	events []string
}

func (a *recordingAuditor) add(event string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *recordingAuditor) UserCreated(_ context.Context, _ uint, _ string)    { a.add("USER_CREATED") }
func (a *recordingAuditor) UserUpdated(_ context.Context, _ uint, _ string)    { a.add("USER_UPDATED") }
func (a *recordingAuditor) ProductCreated(_ context.Context, _ uint, _ string) { a.add("PRODUCT_CREATED") }
func (a *recordingAuditor) ProductUpdated(_ context.Context, _ uint, _ string) { a.add("PRODUCT_UPDATED") }
func (a *recordingAuditor) StockUpdated(_ context.Context, _ uint, _, _ int)   { a.add("STOCK_UPDATED") }
func (a *recordingAuditor) OrderCreated(_ context.Context, _ uint, _ string, _ uint) {
	a.add("ORDER_CREATED")
}
func (a *recordingAuditor) OrderStatusChanged(_ context.Context, _ uint, _, _ string) {
	a.add("ORDER_STATUS_CHANGED")
}
func (a *recordingAuditor) PaymentProcessed(_ context.Context, _ uint, _, _ string) {
	a.add("PAYMENT_PROCESSED")
}
func (a *recordingAuditor) PaymentRefunded(_ context.Context, _ uint, _ string) {
	a.add("PAYMENT_REFUNDED")
}

func (a *recordingAuditor) count(event string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, e := range a.events {
		if e == event {
			n++
		}
	}
	return n
}
