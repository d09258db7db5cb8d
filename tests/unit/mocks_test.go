package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Client, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Client), args.Get(1).(int32), args.Error(2)
}
func (m *MockClientRepo) Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Client), args.Get(1).(int32), args.Error(2)
}

// MockStockCategoryRepo
type MockStockCategoryRepo struct {
	mock.Mock
}

func (m *MockStockCategoryRepo) Create(ctx context.Context, cat *domain.StockCategory) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}
func (m *MockStockCategoryRepo) GetByID(ctx context.Context, id int32) (*domain.StockCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockCategory), args.Error(1)
}
func (m *MockStockCategoryRepo) GetByIDs(ctx context.Context, ids []int32) (map[int32]domain.StockCategory, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int32]domain.StockCategory), args.Error(1)
}
func (m *MockStockCategoryRepo) Update(ctx context.Context, cat *domain.StockCategory) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}
func (m *MockStockCategoryRepo) List(ctx context.Context) ([]domain.StockCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StockCategory), args.Error(1)
}

// MockStockItemRepo
type MockStockItemRepo struct {
	mock.Mock
}

func (m *MockStockItemRepo) Create(ctx context.Context, item *domain.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockStockItemRepo) GetByCategory(ctx context.Context, categoryID int32) (*domain.StockItem, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}
func (m *MockStockItemRepo) List(ctx context.Context) ([]domain.StockItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StockItem), args.Error(1)
}
func (m *MockStockItemRepo) Issue(ctx context.Context, categoryID, qty int32) error {
	args := m.Called(ctx, categoryID, qty)
	return args.Error(0)
}
func (m *MockStockItemRepo) ReturnGood(ctx context.Context, categoryID, qty int32) error {
	args := m.Called(ctx, categoryID, qty)
	return args.Error(0)
}
func (m *MockStockItemRepo) ReturnDamaged(ctx context.Context, categoryID, qty int32) error {
	args := m.Called(ctx, categoryID, qty)
	return args.Error(0)
}
func (m *MockStockItemRepo) AddStock(ctx context.Context, categoryID, qty int32) error {
	args := m.Called(ctx, categoryID, qty)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateWithItems(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, clientID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, clientID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListOpenByClient(ctx context.Context, clientID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Cancel(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) FreezeTotalAmount(ctx context.Context, rentalID int32, totalPaise int64) error {
	args := m.Called(ctx, rentalID, totalPaise)
	return args.Error(0)
}

// MockReturnRepo
type MockReturnRepo struct {
	mock.Mock
}

func (m *MockReturnRepo) Reconcile(ctx context.Context, ret *domain.Return, rental *domain.Rental, moves []domain.StockMove) error {
	args := m.Called(ctx, ret, rental, moves)
	return args.Error(0)
}
func (m *MockReturnRepo) ListByRental(ctx context.Context, rentalID int32) ([]domain.Return, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Return), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByClient(ctx context.Context, clientID int32, since time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, clientID, since)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) ListByClient(ctx context.Context, clientID int32) ([]domain.Invoice, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, id int32, status domain.InvoiceStatus, paidOn *time.Time) error {
	args := m.Called(ctx, id, status, paidOn)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReturnReceipt(ctx context.Context, toEmail, clientName string, ret *domain.Return) error {
	args := m.Called(ctx, toEmail, clientName, ret)
	return args.Error(0)
}
func (m *MockEmailService) SendInvoiceNotice(ctx context.Context, toEmail, clientName string, inv *domain.Invoice) error {
	args := m.Called(ctx, toEmail, clientName, inv)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueInvoiceReminder(ctx context.Context, toEmail, clientName string, inv *domain.Invoice) error {
	args := m.Called(ctx, toEmail, clientName, inv)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, toEmail, clientName string, rentalID int32, duePaise int64) error {
	args := m.Called(ctx, toEmail, clientName, rentalID, duePaise)
	return args.Error(0)
}
