package services

import (
	"fmt"
	"math"
	"time"

	"github.com/vancelodge/lodge-billing/internal/models"
)

// VATRate is the single fixed tax rate applied to every quote.
const VATRate = 0.15

// PricingInput carries everything the calculator needs. Unset unit costs
// price as 0 and empty date sets contribute nothing.
type PricingInput struct {
	NumberOfBeds   int
	NumberOfGuests int

	UnitBedCost       float64
	UnitBreakfastCost float64
	UnitLunchCost     float64
	UnitDinnerCost    float64
	UnitLaundryCost   float64

	CheckIn  time.Time
	CheckOut time.Time

	BreakfastDays int
	LunchDays     int
	DinnerDays    int
	LaundryDays   int

	DiscountMode  models.DiscountMode
	DiscountValue float64
}

// Totals is the derived monetary triple persisted on a quote.
//
// Subtotal and Total are rounded to 2 decimals. VAT is derived from the
// already-rounded subtotal and deliberately kept unrounded so stored values
// stay identical to what earlier releases wrote.
type Totals struct {
	Subtotal float64
	VAT      float64
	Total    float64
}

// PricingService derives a quote's totals from its stay and service inputs.
// Pure computation: no store access, no side effects.
type PricingService struct{}

func NewPricingService() *PricingService { return &PricingService{} }

// Nights returns the whole-day difference between check-out and check-in.
// Same-day check-in/out is 0 nights; an inverted range goes negative and is
// left to the caller's validation.
func (s *PricingService) Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// Compute maps the pricing inputs to subtotal, VAT and total.
//
// A discount larger than the gross amount yields a negative total, which is
// preserved rather than clamped.
func (s *PricingService) Compute(in PricingInput) Totals {
	nights := s.Nights(in.CheckIn, in.CheckOut)

	bedTotal := float64(in.NumberOfBeds) * float64(nights) * in.UnitBedCost
	breakfastTotal := float64(in.NumberOfGuests) * float64(in.BreakfastDays) * in.UnitBreakfastCost
	lunchTotal := float64(in.NumberOfGuests) * float64(in.LunchDays) * in.UnitLunchCost
	dinnerTotal := float64(in.NumberOfGuests) * float64(in.DinnerDays) * in.UnitDinnerCost
	laundryTotal := float64(in.NumberOfGuests) * float64(in.LaundryDays) * in.UnitLaundryCost

	subtotal := round2(bedTotal + breakfastTotal + lunchTotal + dinnerTotal + laundryTotal)

	vat := subtotal * VATRate
	total := subtotal + vat

	if in.DiscountMode == models.DiscountAmount {
		total -= in.DiscountValue
	} else {
		total -= subtotal * in.DiscountValue / 100
	}

	return Totals{Subtotal: subtotal, VAT: vat, Total: round2(total)}
}

// InputFromQuote builds the calculator input from a persisted quote,
// parsing its calendar-date columns.
func (s *PricingService) InputFromQuote(q *models.Quote) (PricingInput, error) {
	checkIn, err := models.ParseDate(q.CheckInDate)
	if err != nil {
		return PricingInput{}, fmt.Errorf("check_in_date: %w", err)
	}
	checkOut, err := models.ParseDate(q.CheckOutDate)
	if err != nil {
		return PricingInput{}, fmt.Errorf("check_out_date: %w", err)
	}
	in := PricingInput{
		NumberOfBeds:      q.NumberOfBeds,
		NumberOfGuests:    q.NumberOfGuests,
		UnitBedCost:       q.UnitBedCost,
		UnitBreakfastCost: deref(q.UnitBreakfastCost),
		UnitLunchCost:     deref(q.UnitLunchCost),
		UnitDinnerCost:    deref(q.UnitDinnerCost),
		UnitLaundryCost:   deref(q.UnitLaundryCost),
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		BreakfastDays:     len(q.BreakfastDates),
		LunchDays:         len(q.LunchDates),
		DinnerDays:        len(q.DinnerDates),
		LaundryDays:       len(q.LaundryDates),
		DiscountMode:      q.DiscountMode,
	}
	switch q.DiscountMode {
	case models.DiscountAmount:
		in.DiscountValue = deref(q.DiscountAmount)
	default:
		in.DiscountMode = models.DiscountPercentage
		in.DiscountValue = deref(q.DiscountPercentage)
	}
	return in, nil
}

// ComputeForQuote recomputes and writes the derived fields on the quote.
func (s *PricingService) ComputeForQuote(q *models.Quote) error {
	in, err := s.InputFromQuote(q)
	if err != nil {
		return err
	}
	t := s.Compute(in)
	q.Subtotal = t.Subtotal
	q.VAT = t.VAT
	q.Total = t.Total
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
