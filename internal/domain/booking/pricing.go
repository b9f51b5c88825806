package booking

type PriceCalculator interface {
	CalculatePriceCents(pricePerHourCents int64, period Period) (int64, error)
}

// HalfHourPriceCalculator bills in half-hour increments, rounded up,
// with a one-hour minimum. The result is deterministic for a given
// rate and period so that stored prices can be re-derived during
// dispute and reconciliation checks.
type HalfHourPriceCalculator struct{}

func NewHalfHourPriceCalculator() *HalfHourPriceCalculator {
	return &HalfHourPriceCalculator{}
}

func (c *HalfHourPriceCalculator) CalculatePriceCents(pricePerHourCents int64, period Period) (int64, error) {
	if pricePerHourCents < 0 {
		return 0, ErrNegativePrice
	}

	secs := int64(period.Duration() / 1e9)
	if secs <= 0 {
		return 0, ErrInvalidInterval
	}

	// Round the duration up to the next half hour, floor one hour.
	halfHours := (secs + 1799) / 1800
	if halfHours < 2 {
		halfHours = 2
	}

	// Half-up rounding applies to the final halving only, never to the
	// intermediate duration.
	total := pricePerHourCents * halfHours
	return (total + 1) / 2, nil
}
