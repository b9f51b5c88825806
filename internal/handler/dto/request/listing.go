package request

import (
	"time"

	"rinto/internal/usecase/commands"
)

type CreateListingRequest struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	Location          string `json:"location"`
	PricePerHourCents int64  `json:"price_per_hour_cents" binding:"required,min=0"`
}

func (r CreateListingRequest) ToCommand() commands.CreateListingRequest {
	return commands.CreateListingRequest{
		Title:             r.Title,
		Description:       r.Description,
		Location:          r.Location,
		PricePerHourCents: r.PricePerHourCents,
	}
}

type UpdateListingRequest struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	Location          string `json:"location"`
	PricePerHourCents int64  `json:"price_per_hour_cents" binding:"required,min=0"`
}

func (r UpdateListingRequest) ToCommand() commands.UpdateListingRequest {
	return commands.UpdateListingRequest{
		Title:             r.Title,
		Description:       r.Description,
		Location:          r.Location,
		PricePerHourCents: r.PricePerHourCents,
	}
}

type AddWindowRequest struct {
	Date        time.Time `json:"date" binding:"required" time_format:"2006-01-02"`
	StartMin    int       `json:"start_min" binding:"min=0,max=1439"`
	EndMin      int       `json:"end_min" binding:"required,min=1,max=1440"`
	IsAvailable *bool     `json:"is_available"`
}

func (r AddWindowRequest) ToCommand() commands.AddWindowRequest {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return commands.AddWindowRequest{
		Date:        r.Date,
		StartMin:    r.StartMin,
		EndMin:      r.EndMin,
		IsAvailable: available,
	}
}
