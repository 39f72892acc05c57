package services_test

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"madamchoice/internal/models"
	"madamchoice/internal/repositories"
	"madamchoice/internal/services"
	"madamchoice/pkg/rabbitmq"
)

func validOrderInput() services.CreateOrderInput {
	return services.CreateOrderInput{
		ProductName:    "Red Heels x2, Sandals x1",
		ExpectedAmount: 2199,
		CustomerName:   "Asha",
		CustomerPhone:  "9000000000",
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	repo := new(MockOrderRepository)
	service := services.NewOrderService(repo, nil, zap.NewNop())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.CreateOrder(context.Background(), validOrderInput())
	require.NoError(t, err)
	repo.AssertExpectations(t)

	_, parseErr := uuid.Parse(order.OrderID)
	assert.NoError(t, parseErr)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.DefaultPaymentMethod, order.PaymentMethod)
	assert.Empty(t, order.TransactionID)
	assert.Nil(t, order.PaidAt)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, int64(2199), order.ExpectedAmount)
}

func TestOrderService_CreateOrder_KeepsOptionalFields(t *testing.T) {
	repo := new(MockOrderRepository)
	service := services.NewOrderService(repo, nil, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	in := validOrderInput()
	in.CustomerAddress = "12 MG Road"
	in.PaymentMethod = "phonepe"
	in.TransactionID = "TXN-42"

	order, err := service.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "12 MG Road", order.CustomerAddress)
	assert.Equal(t, "phonepe", order.PaymentMethod)
	assert.Equal(t, "TXN-42", order.TransactionID)
}

// The amount is trusted client input: any non-negative value is stored as is,
// without comparing it to a price list.
func TestOrderService_CreateOrder_TrustsExpectedAmount(t *testing.T) {
	repo := new(MockOrderRepository)
	service := services.NewOrderService(repo, nil, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	in := validOrderInput()
	in.ExpectedAmount = 1
	order, err := service.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ExpectedAmount)

	in.ExpectedAmount = 0
	order, err = service.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), order.ExpectedAmount)
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*services.CreateOrderInput)
	}{
		{name: "negative amount", mutate: func(in *services.CreateOrderInput) { in.ExpectedAmount = -1 }},
		{name: "missing product", mutate: func(in *services.CreateOrderInput) { in.ProductName = " " }},
		{name: "missing customer name", mutate: func(in *services.CreateOrderInput) { in.CustomerName = "" }},
		{name: "missing phone", mutate: func(in *services.CreateOrderInput) { in.CustomerPhone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			service := services.NewOrderService(repo, nil, zap.NewNop())

			in := validOrderInput()
			tt.mutate(&in)
			_, err := service.CreateOrder(context.Background(), in)
			assert.ErrorIs(t, err, services.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_CreateOrder_StorageFailure(t *testing.T) {
	repo := new(MockOrderRepository)
	service := services.NewOrderService(repo, nil, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := service.CreateOrder(context.Background(), validOrderInput())
	assert.ErrorContains(t, err, "disk full")
	assert.NotErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_CreateOrder_PublishesEvent(t *testing.T) {
	repo := new(MockOrderRepository)
	publisher := new(MockPublisher)
	service := services.NewOrderService(repo, publisher, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishOrderCreated", mock.Anything, mock.MatchedBy(func(e rabbitmq.OrderCreated) bool {
		return e.Status == "pending" && e.ExpectedAmount == 2199 && e.OrderID != ""
	})).Return(nil).Once()

	order, err := service.CreateOrder(context.Background(), validOrderInput())
	require.NoError(t, err)
	publisher.AssertExpectations(t)
	assert.Equal(t, order.OrderID, publisher.Calls[0].Arguments.Get(1).(rabbitmq.OrderCreated).OrderID)
}

func TestOrderService_CreateOrder_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(MockOrderRepository)
	publisher := new(MockPublisher)
	service := services.NewOrderService(repo, publisher, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(errors.New("broker gone")).Once()

	order, err := service.CreateOrder(context.Background(), validOrderInput())
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderID)
}

func TestOrderService_GetOrder(t *testing.T) {
	repo := repositories.NewInMemoryOrderRepository()
	service := services.NewOrderService(repo, nil, zap.NewNop())
	ctx := context.Background()

	created, err := service.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	got, err := service.GetOrder(ctx, created.OrderID)
	require.NoError(t, err)
	assert.Equal(t, created.OrderID, got.OrderID)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.Nil(t, got.PaidAt)

	_, err = service.GetOrder(ctx, uuid.NewString())
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_GetOrder_StorageFailure(t *testing.T) {
	repo := new(MockOrderRepository)
	service := services.NewOrderService(repo, nil, zap.NewNop())
	repo.On("GetByOrderID", mock.Anything, "abc").Return(nil, errors.New("connection reset")).Once()

	_, err := service.GetOrder(context.Background(), "abc")
	assert.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_OrderIDsAreUnique(t *testing.T) {
	repo := repositories.NewInMemoryOrderRepository()
	service := services.NewOrderService(repo, nil, zap.NewNop())
	ctx := context.Background()

	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		order, err := service.CreateOrder(ctx, validOrderInput())
		require.NoError(t, err)
		_, dup := seen[order.OrderID]
		require.False(t, dup, "duplicate order id %s", order.OrderID)
		seen[order.OrderID] = struct{}{}
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, repo.Len())
}
