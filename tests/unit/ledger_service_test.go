package unit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

func TestClientStatement(t *testing.T) {
	ctx := context.Background()
	rentalRepo := new(MockRentalRepo)
	paymentRepo := new(MockPaymentRepo)
	clientRepo := new(MockClientRepo)
	svc := service.NewLedgerService(rentalRepo, paymentRepo, clientRepo)

	clientRepo.On("GetByID", ctx, int32(7)).Return(&domain.Client{ID: 7}, nil)
	// Only open rentals count toward outstanding; their frozen totals are
	// what the ledger sums.
	rentalRepo.On("ListOpenByClient", ctx, int32(7)).Return([]domain.Rental{
		{ID: 1, ClientID: 7, Status: domain.RentalStatusActive, TotalAmountPaise: 225000},
		{ID: 2, ClientID: 7, Status: domain.RentalStatusPartiallyReturned, TotalAmountPaise: 100000},
	}, nil)
	paymentRepo.On("ListByClient", ctx, int32(7), time.Time{}).Return([]domain.Payment{
		{ID: 1, ClientID: 7, AmountPaise: 50000},
		{ID: 2, ClientID: 7, AmountPaise: 25000},
	}, nil)

	bal, err := svc.ClientStatement(ctx, 7, time.Time{})

	assert.NoError(t, err)
	assert.Equal(t, int64(325000), bal.OutstandingPaise)
	assert.Equal(t, int64(75000), bal.PaidPaise)
	assert.Equal(t, int64(250000), bal.BalancePaise)
}

func TestClientStatement_UnknownClient(t *testing.T) {
	ctx := context.Background()
	rentalRepo := new(MockRentalRepo)
	paymentRepo := new(MockPaymentRepo)
	clientRepo := new(MockClientRepo)
	svc := service.NewLedgerService(rentalRepo, paymentRepo, clientRepo)

	clientRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound)

	_, err := svc.ClientStatement(ctx, 99, time.Time{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	rentalRepo.AssertNotCalled(t, "ListOpenByClient", mock.Anything, mock.Anything)
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		clientRepo := new(MockClientRepo)
		svc := service.NewPaymentService(paymentRepo, clientRepo)

		clientRepo.On("GetByID", ctx, int32(7)).Return(&domain.Client{ID: 7}, nil)
		paymentRepo.On("Create", ctx, mock.Anything).Return(nil)

		p := &domain.Payment{ClientID: 7, AmountPaise: 50000, Method: domain.PaymentMethodUPI}
		err := svc.RecordPayment(ctx, p)

		assert.NoError(t, err)
		assert.False(t, p.PaidOn.IsZero())
		paymentRepo.AssertExpectations(t)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		clientRepo := new(MockClientRepo)
		svc := service.NewPaymentService(paymentRepo, clientRepo)

		err := svc.RecordPayment(ctx, &domain.Payment{ClientID: 7, AmountPaise: 0, Method: domain.PaymentMethodCash})

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		clientRepo := new(MockClientRepo)
		svc := service.NewPaymentService(paymentRepo, clientRepo)

		err := svc.RecordPayment(ctx, &domain.Payment{ClientID: 7, AmountPaise: 100, Method: "BARTER"})

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
