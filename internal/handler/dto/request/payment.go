package request

import (
	"github.com/google/uuid"
)

type PaymentOutcomeRequest struct {
	BookingID  uuid.UUID `json:"booking_id" binding:"required"`
	Outcome    string    `json:"outcome" binding:"required,oneof=succeeded failed"`
	PaymentRef string    `json:"payment_ref" binding:"required"`
}
