package api

import (
	"context"

	"gadme-be/internal/address"
	"gadme-be/internal/cart"
	"gadme-be/internal/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Read(ctx context.Context, userID uuid.UUID) ([]cart.Line, cart.Totals, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, cart.Totals{}, args.Error(2)
	}
	return args.Get(0).([]cart.Line), args.Get(1).(cart.Totals), args.Error(2)
}

func (m *MockCartService) Meta(ctx context.Context, userID uuid.UUID) (cart.Totals, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(cart.Totals), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, params cart.AddItemParams) (cart.AddResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(cart.AddResult), args.Error(1)
}

func (m *MockCartService) SetQty(ctx context.Context, userID, lineID uuid.UUID, qty int) (cart.Totals, error) {
	args := m.Called(ctx, userID, lineID, qty)
	return args.Get(0).(cart.Totals), args.Error(1)
}

func (m *MockCartService) IncrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) (cart.Totals, error) {
	args := m.Called(ctx, userID, lineID, step)
	return args.Get(0).(cart.Totals), args.Error(1)
}

func (m *MockCartService) DecrementQty(ctx context.Context, userID, lineID uuid.UUID, step int) (cart.Totals, error) {
	args := m.Called(ctx, userID, lineID, step)
	return args.Get(0).(cart.Totals), args.Error(1)
}

func (m *MockCartService) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) (cart.Totals, error) {
	args := m.Called(ctx, userID, lineID)
	return args.Get(0).(cart.Totals), args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID uuid.UUID) (cart.Totals, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(cart.Totals), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Preview(ctx context.Context, userID uuid.UUID) (*order.Preview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Preview), args.Error(1)
}

func (m *MockOrderService) Checkout(ctx context.Context, in order.CheckoutInput) (*order.Summary, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Summary), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) UpdatePayment(ctx context.Context, userID, orderID uuid.UUID, in order.PaymentInput) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) List(ctx context.Context, userID uuid.UUID) ([]address.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

func (m *MockAddressService) GetForUser(ctx context.Context, userID, addressID uuid.UUID) (*address.Address, error) {
	args := m.Called(ctx, userID, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Create(ctx context.Context, userID uuid.UUID, input address.Shipping) (*address.Address, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Update(ctx context.Context, userID, addressID uuid.UUID, input address.UpdateInput) (*address.Address, error) {
	args := m.Called(ctx, userID, addressID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) (*address.Address, error) {
	args := m.Called(ctx, userID, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}
