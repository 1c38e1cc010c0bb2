package models

import "time"

// Invoice status values. A quote only ever moves unpaid -> invoiced.
const (
	StatusUnpaid   = "unpaid"
	StatusInvoiced = "invoiced"
)

// Document type values (presentation hint only).
const (
	DocumentDetailed   = "detailed"
	DocumentSummarized = "summarized"
)

// DiscountMode selects which of the two discount columns applies.
type DiscountMode string

const (
	DiscountPercentage DiscountMode = "percentage"
	DiscountAmount     DiscountMode = "amount"
)

// Quote entity. Monetary unit costs and discount values are nullable REAL
// columns, so they are pointers; absent means "not offered" and prices as 0.
type Quote struct {
	ID                 uint         `gorm:"column:quote_id;primaryKey" json:"quote_id"`
	ClientID           uint         `gorm:"not null;index" json:"client_id"`
	Client             Client       `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"-"`
	QuoteNumber        string       `gorm:"not null" json:"quote_number"`
	NumberOfBeds       int          `gorm:"not null" json:"number_of_beds"`
	NumberOfGuests     int          `gorm:"not null" json:"number_of_guests"`
	UnitBedCost        float64      `gorm:"not null" json:"unit_bed_cost"`
	UnitBreakfastCost  *float64     `json:"unit_breakfast_cost"`
	UnitLunchCost      *float64     `json:"unit_lunch_cost"`
	UnitDinnerCost     *float64     `json:"unit_dinner_cost"`
	UnitLaundryCost    *float64     `json:"unit_laundry_cost"`
	GuestDetails       string       `json:"guest_details"`
	CheckInDate        string       `gorm:"not null" json:"check_in_date"`
	CheckOutDate       string       `gorm:"not null" json:"check_out_date"`
	BreakfastDates     DateList     `json:"breakfast_dates"`
	LunchDates         DateList     `json:"lunch_dates"`
	DinnerDates        DateList     `json:"dinner_dates"`
	LaundryDates       DateList     `json:"laundry_dates"`
	DiscountMode       DiscountMode `gorm:"default:'percentage'" json:"discount_mode"`
	DiscountPercentage *float64     `json:"discount_percentage"`
	DiscountAmount     *float64     `json:"discount_amount"`
	Subtotal           float64      `gorm:"not null" json:"subtotal"`
	VAT                float64      `gorm:"column:vat;not null" json:"vat"`
	Total              float64      `gorm:"not null" json:"total"`
	DocumentType       string       `gorm:"default:'detailed'" json:"document_type"`
	InvoiceStatus      string       `gorm:"not null;default:'unpaid'" json:"invoice_status"`
	CreatedAt          time.Time    `json:"created_at"`
	LastModified       time.Time    `json:"last_modified"`
}

func (Quote) TableName() string { return "quotes" }

// QuoteWithClient is the listing row shape: the quote joined with the owning
// client's display name.
type QuoteWithClient struct {
	Quote
	ClientName string `json:"client_name"`
}

// DeletedQuote is the append-only audit copy of a Quote taken at deletion.
type DeletedQuote struct {
	QuoteID            uint         `gorm:"column:quote_id" json:"quote_id"`
	ClientID           uint         `json:"client_id"`
	QuoteNumber        string       `json:"quote_number"`
	NumberOfBeds       int          `json:"number_of_beds"`
	NumberOfGuests     int          `json:"number_of_guests"`
	UnitBedCost        float64      `json:"unit_bed_cost"`
	UnitBreakfastCost  *float64     `json:"unit_breakfast_cost"`
	UnitLunchCost      *float64     `json:"unit_lunch_cost"`
	UnitDinnerCost     *float64     `json:"unit_dinner_cost"`
	UnitLaundryCost    *float64     `json:"unit_laundry_cost"`
	GuestDetails       string       `json:"guest_details"`
	CheckInDate        string       `json:"check_in_date"`
	CheckOutDate       string       `json:"check_out_date"`
	BreakfastDates     DateList     `json:"breakfast_dates"`
	LunchDates         DateList     `json:"lunch_dates"`
	DinnerDates        DateList     `json:"dinner_dates"`
	LaundryDates       DateList     `json:"laundry_dates"`
	DiscountMode       DiscountMode `json:"discount_mode"`
	DiscountPercentage *float64     `json:"discount_percentage"`
	DiscountAmount     *float64     `json:"discount_amount"`
	Subtotal           float64      `json:"subtotal"`
	VAT                float64      `gorm:"column:vat" json:"vat"`
	Total              float64      `json:"total"`
	DocumentType       string       `json:"document_type"`
	InvoiceStatus      string       `json:"invoice_status"`
	CreatedAt          time.Time    `json:"created_at"`
	LastModified       time.Time    `json:"last_modified"`
	DeletedAt          time.Time    `gorm:"not null" json:"deleted_at"`
}

func (DeletedQuote) TableName() string { return "deleted_quotes" }
