package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/dto"
	"github.com/salesync/salesync_backend/internal/middleware"
)

// --- Mock SalesService ---
type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) Checkout(ctx context.Context, req dto.CheckoutRequest, userID string) (*domain.SalesOrder, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesOrder), args.Error(1)
}

func (m *MockSalesService) GetOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesOrder), args.Error(1)
}

func (m *MockSalesService) DeleteOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

var _ portssvc.SalesSvcFacade = (*MockSalesService)(nil)

// --- Test Suite ---
type SalesHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockSalesService *MockSalesService
	jwtSecret        string
}

func (suite *SalesHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "salesync-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SalesHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSalesService = new(MockSalesService)

	v1 := suite.router.Group("/api/v1")
	registerSalesRoutes(v1, suite.mockSalesService)
}

func (suite *SalesHandlerTestSuite) performRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SalesHandlerTestSuite) TestCheckout_Success() {
	userID := uuid.NewString()
	reqBody := dto.CheckoutRequest{
		CustomerName: "Walk-in",
		AmountPaid:   decimal.NewFromInt(200),
		Items: []dto.CheckoutItemRequest{
			{ProductID: uuid.NewString(), Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
	}
	expectedOrder := &domain.SalesOrder{
		OrderID:       uuid.NewString(),
		InvoiceNo:     "INV-20250101120000-abcd",
		CustomerName:  "Walk-in",
		GrandTotal:    decimal.NewFromInt(200),
		AmountPaid:    decimal.NewFromInt(200),
		AmountDue:     decimal.Zero,
		PaymentStatus: domain.PaymentPaid,
	}

	suite.mockSalesService.On("Checkout",
		mock.Anything,
		mock.MatchedBy(func(r dto.CheckoutRequest) bool {
			return r.CustomerName == "Walk-in" && len(r.Items) == 1
		}),
		userID,
	).Return(expectedOrder, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/sales/checkout", reqBody, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SalesOrderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expectedOrder.OrderID, resp.OrderID)
	suite.Equal("PAID", resp.PaymentStatus)
	suite.mockSalesService.AssertExpectations(suite.T())
}

func (suite *SalesHandlerTestSuite) TestCheckout_InsufficientStock() {
	userID := uuid.NewString()
	reqBody := dto.CheckoutRequest{
		CustomerName: "Walk-in",
		Items: []dto.CheckoutItemRequest{
			{ProductID: uuid.NewString(), Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockSalesService.On("Checkout", mock.Anything, mock.Anything, userID).
		Return(nil, fmt.Errorf("%w: product has 2 on hand, requested 5", apperrors.ErrInsufficientStock)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/sales/checkout", reqBody, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSalesService.AssertExpectations(suite.T())
}

func (suite *SalesHandlerTestSuite) TestCheckout_MissingItemsRejected() {
	userID := uuid.NewString()
	reqBody := dto.CheckoutRequest{CustomerName: "Walk-in"}

	w := suite.performRequest(http.MethodPost, "/api/v1/sales/checkout", reqBody, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSalesService.AssertNotCalled(suite.T(), "Checkout")
}

func (suite *SalesHandlerTestSuite) TestCheckout_Unauthorized() {
	reqBody := dto.CheckoutRequest{
		CustomerName: "Walk-in",
		Items: []dto.CheckoutItemRequest{
			{ProductID: uuid.NewString(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	}
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(reqBody))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sales/checkout", &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSalesService.AssertNotCalled(suite.T(), "Checkout")
}

func (suite *SalesHandlerTestSuite) TestGetOrder_NotFound() {
	userID := uuid.NewString()
	orderID := uuid.NewString()

	suite.mockSalesService.On("GetOrderByID", mock.Anything, orderID).
		Return(nil, fmt.Errorf("%w: sales order %s", apperrors.ErrNotFound, orderID)).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/sales/"+orderID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSalesService.AssertExpectations(suite.T())
}

func (suite *SalesHandlerTestSuite) TestDeleteOrder_Success() {
	userID := uuid.NewString()
	orderID := uuid.NewString()

	suite.mockSalesService.On("DeleteOrder", mock.Anything, orderID).Return(nil).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/sales/"+orderID, nil, userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockSalesService.AssertExpectations(suite.T())
}

func TestSalesHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SalesHandlerTestSuite))
}
