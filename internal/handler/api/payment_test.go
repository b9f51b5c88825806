//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"rinto/internal/handler/api"
	resdto "rinto/internal/handler/dto/response"
	"rinto/internal/usecase/commands"
	"rinto/tests/common/httptest"
	"rinto/tests/common/testutil"
	commandsmock "rinto/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	handler      *api.PaymentHandler
	userID       uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/bookings/:id/payment-intent", authMiddleware, s.handler.CreatePaymentIntent)
	// Provider callback is not behind user auth
	s.router.POST("/payments/outcome", s.handler.ReportPaymentOutcome)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// ================================================================================
// TestCreatePaymentIntent
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCreatePaymentIntent() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/payment-intent"

	intent := &commands.PaymentIntent{Reference: "pi_123", ClientSecret: "pi_123_secret"}

	s.Run("success: returns 201 Created with the intent", func() {
		s.mockCommands.EXPECT().CreatePaymentIntent(gomock.Any(), bookingID, s.userID).
			Return(intent, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.PaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("pi_123", response.Reference)
		s.Equal("pi_123_secret", response.ClientSecret)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/invalid-uuid/payment-intent", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "caller is not the renter",
				commandsError:  commands.ErrNotAllowed,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Forbidden",
			},
			{
				name:           "booking already settled",
				commandsError:  commands.ErrInvalidTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Not awaiting payment",
			},
			{
				name:           "provider unreachable",
				commandsError:  commands.ErrPaymentGatewayFailed,
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Payment provider unavailable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreatePaymentIntent(gomock.Any(), bookingID, s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestReportPaymentOutcome
// ================================================================================

func (s *PaymentHandlerTestSuite) TestReportPaymentOutcome() {
	url := "/payments/outcome"
	bookingID := uuid.New()

	reqBody := map[string]any{
		"booking_id":  bookingID.String(),
		"outcome":     "succeeded",
		"payment_ref": "pi_123",
	}

	s.Run("success: returns 204 No Content on a successful payment", func() {
		s.mockCommands.EXPECT().
			HandlePaymentOutcome(gomock.Any(), bookingID, commands.PaymentOutcomeSucceeded, "pi_123").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: returns 204 No Content on a failed payment", func() {
		failedBody := testutil.DtoMap(s.T(), reqBody, testutil.Field("outcome", "failed"))
		s.mockCommands.EXPECT().
			HandlePaymentOutcome(gomock.Any(), bookingID, commands.PaymentOutcomeFailed, "pi_123").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, failedBody, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: booking_id (required)", mutate: testutil.Field("booking_id", nil)},
			{name: "missing field: payment_ref (required)", mutate: testutil.Field("payment_ref", nil)},
			{name: "unknown outcome value", mutate: testutil.Field("outcome", "maybe")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "booking already moved past payment",
				commandsError:  commands.ErrInvalidTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Already settled",
			},
			{
				name:           "slot taken while payment was pending",
				commandsError:  commands.ErrSlotConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Slot conflict",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					HandlePaymentOutcome(gomock.Any(), bookingID, commands.PaymentOutcomeSucceeded, "pi_123").
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
