package customer

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"restaurant-reservations/internal/domain/reservation"
	"restaurant-reservations/internal/event"
	"restaurant-reservations/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) Save(ctx context.Context, cust *Customer) error {
	ret := _m.Called(ctx, cust)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer) error); ok {
		r0 = rf(ctx, cust)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Customer); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Search(ctx context.Context, keyword string) ([]*Customer, error) {
	ret := _m.Called(ctx, keyword)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindTopTen(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}

	return r0, ret.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (_m *MockReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	ret := _m.Called(ctx, res)
	return ret.Error(0)
}

func (_m *MockReservationRepository) FindByID(ctx context.Context, reservationID int64) (*reservation.Reservation, error) {
	ret := _m.Called(ctx, reservationID)

	var r0 *reservation.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*reservation.Reservation)
	}

	return r0, ret.Error(1)
}

func (_m *MockReservationRepository) FindByCustomer(ctx context.Context, customerID int64) ([]*reservation.Reservation, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*reservation.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*reservation.Reservation)
	}

	return r0, ret.Error(1)
}

func (_m *MockReservationRepository) CountStartingBetween(ctx context.Context, from time.Time, to time.Time) (int64, error) {
	ret := _m.Called(ctx, from, to)
	return ret.Get(0).(int64), ret.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (_m *MockPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

func (_m *MockPublisher) PublishReservationCreated(ctx context.Context, evt event.ReservationCreatedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}

func newTestService(t *testing.T) (CustomerService, *MockCustomerRepository, *MockReservationRepository, *MockPublisher) {
	t.Helper()
	mockRepo := new(MockCustomerRepository)
	mockResRepo := new(MockReservationRepository)
	mockPub := new(MockPublisher)
	service := NewCustomerService(mockRepo, mockResRepo, mockPub, logger)
	return service, mockRepo, mockResRepo, mockPub
}

func TestCreateCustomer(t *testing.T) {
	service, mockRepo, _, mockPub := newTestService(t)

	ctx := context.Background()

	mockRepo.On("Save", ctx, mock.Anything).Return(nil)
	mockPub.On("PublishCustomerCreated", ctx, mock.Anything).Return(nil)

	result, err := service.CreateCustomer(ctx, CreateCustomerParams{
		FirstName: "Leslie",
		LastName:  "Knope",
		Phone:     "555-1234",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Leslie", result.FirstName)
	assert.Equal(t, "", result.Notes)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestCreateCustomerValidationFailure(t *testing.T) {
	service, mockRepo, _, _ := newTestService(t)

	ctx := context.Background()

	result, err := service.CreateCustomer(ctx, CreateCustomerParams{
		FirstName: "",
		LastName:  "Knope",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateCustomerSucceedsWhenPublishFails(t *testing.T) {
	service, mockRepo, _, mockPub := newTestService(t)

	ctx := context.Background()

	mockRepo.On("Save", ctx, mock.Anything).Return(nil)
	mockPub.On("PublishCustomerCreated", ctx, mock.Anything).Return(assert.AnError)

	result, err := service.CreateCustomer(ctx, CreateCustomerParams{
		FirstName: "Leslie",
		LastName:  "Knope",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	mockPub.AssertExpectations(t)
}

func TestUpdateCustomerKeepsIdentity(t *testing.T) {
	service, mockRepo, _, _ := newTestService(t)

	ctx := context.Background()
	existing := &Customer{CustomerID: 42, FirstName: "Leslie", LastName: "Knope"}

	mockRepo.On("FindByID", ctx, int64(42)).Return(existing, nil)
	mockRepo.On("Save", ctx, mock.Anything).Return(nil)

	result, err := service.UpdateCustomer(ctx, 42, CreateCustomerParams{
		FirstName: "Leslie",
		LastName:  "Wyatt",
		Phone:     "555-0000",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), result.CustomerID)
	assert.Equal(t, "Wyatt", result.LastName)
	mockRepo.AssertExpectations(t)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	service, mockRepo, _, _ := newTestService(t)

	ctx := context.Background()
	notFound := apperrors.NewNotFoundError("customer", 99)

	mockRepo.On("FindByID", ctx, int64(99)).Return(nil, notFound)

	result, err := service.UpdateCustomer(ctx, 99, CreateCustomerParams{
		FirstName: "Leslie",
		LastName:  "Knope",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetCustomer(t *testing.T) {
	service, mockRepo, _, _ := newTestService(t)

	ctx := context.Background()
	expected := &Customer{CustomerID: 7, FirstName: "Ann", LastName: "Perkins"}

	mockRepo.On("FindByID", ctx, int64(7)).Return(expected, nil)

	result, err := service.GetCustomer(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestListCustomers(t *testing.T) {
	service, mockRepo, _, _ := newTestService(t)

	ctx := context.Background()
	expected := []*Customer{{CustomerID: 1}, {CustomerID: 2}}

	mockRepo.On("FindAll", ctx).Return(expected, nil)

	result, err := service.ListCustomers(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestSearchCustomersTrimsKeyword(t *testing.T) {
	service, mockRepo, _, _ := newTestService(t)

	ctx := context.Background()
	expected := []*Customer{{CustomerID: 1}}

	mockRepo.On("Search", ctx, "knope").Return(expected, nil)

	result, err := service.SearchCustomers(ctx, "  knope  ")

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestSearchCustomersEmptyKeywordMatchesAll(t *testing.T) {
	service, mockRepo, _, _ := newTestService(t)

	ctx := context.Background()
	expected := []*Customer{{CustomerID: 1}, {CustomerID: 2}}

	mockRepo.On("Search", ctx, "").Return(expected, nil)

	result, err := service.SearchCustomers(ctx, "")

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestTopCustomers(t *testing.T) {
	service, mockRepo, _, _ := newTestService(t)

	ctx := context.Background()
	expected := []*Customer{{CustomerID: 3}, {CustomerID: 1}}

	mockRepo.On("FindTopTen", ctx).Return(expected, nil)

	result, err := service.TopCustomers(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestListReservations(t *testing.T) {
	service, mockRepo, mockResRepo, _ := newTestService(t)

	ctx := context.Background()
	cust := &Customer{CustomerID: 5, FirstName: "Ben", LastName: "Wyatt"}
	expected := []*reservation.Reservation{}

	mockRepo.On("FindByID", ctx, int64(5)).Return(cust, nil)
	mockResRepo.On("FindByCustomer", ctx, int64(5)).Return(expected, nil)

	result, err := service.ListReservations(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
	mockResRepo.AssertExpectations(t)
}

func TestListReservationsCustomerNotFound(t *testing.T) {
	service, mockRepo, mockResRepo, _ := newTestService(t)

	ctx := context.Background()
	notFound := apperrors.NewNotFoundError("customer", 99)

	mockRepo.On("FindByID", ctx, int64(99)).Return(nil, notFound)

	result, err := service.ListReservations(ctx, 99)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockResRepo.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything)
}
