package request

import (
	"time"

	"rinto/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (r CreateBookingRequest) ToCommand() commands.AdmitBookingRequest {
	return commands.AdmitBookingRequest{
		ListingID: r.ListingID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
