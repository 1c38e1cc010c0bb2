package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vancelodge/lodge-billing/internal/models"
	"github.com/vancelodge/lodge-billing/internal/services"
)

// quoteListSelect joins the owning client's display name onto each quote row.
const quoteListSelect = "quotes.*, clients.first_name || ' ' || coalesce(clients.last_name, '') AS client_name"

// QuoteRepository owns all reads and writes of the quotes table, including
// document numbering and the one-way invoicing transition.
//
// Derived totals are always recomputed here before persisting; whatever
// subtotal/vat/total the caller put on the struct is ignored.
type QuoteRepository struct {
	DB      *gorm.DB
	Pricing *services.PricingService
}

func NewQuoteRepository(db *gorm.DB, pricing *services.PricingService) *QuoteRepository {
	return &QuoteRepository{DB: db, Pricing: pricing}
}

// NextNumber issues the next document number from the shared sequence.
func (r *QuoteRepository) NextNumber(ctx context.Context) (string, error) {
	n, err := nextSequenceNumber(ctx, r.DB)
	if err != nil {
		return "", err
	}
	return FormatQuoteNumber(n), nil
}

// Create inserts a new quote. A quote number is drawn from the sequence when
// the caller has not already reserved one. Totals are recomputed from the
// quote's inputs before the insert.
func (r *QuoteRepository) Create(ctx context.Context, q *models.Quote) error {
	if q.QuoteNumber == "" {
		number, err := r.NextNumber(ctx)
		if err != nil {
			return err
		}
		q.QuoteNumber = number
	}
	if q.DocumentType == "" {
		q.DocumentType = models.DocumentDetailed
	}
	if q.InvoiceStatus == "" {
		q.InvoiceStatus = models.StatusUnpaid
	}
	if q.DiscountMode == "" {
		q.DiscountMode = models.DiscountPercentage
	}
	if err := r.Pricing.ComputeForQuote(q); err != nil {
		return err
	}
	now := time.Now().UTC()
	q.CreatedAt = now
	q.LastModified = now
	return r.DB.WithContext(ctx).Create(q).Error
}

// Get returns the quote or (nil, nil) when the id is unknown.
func (r *QuoteRepository) Get(ctx context.Context, id uint) (*models.Quote, error) {
	var q models.Quote
	err := r.DB.WithContext(ctx).First(&q, "quote_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuotes returns every quote not yet invoiced, most recently modified
// first, with the owning client's name joined in.
func (r *QuoteRepository) ListQuotes(ctx context.Context) ([]models.QuoteWithClient, error) {
	return r.list(ctx, "quotes.invoice_status <> ?")
}

// ListInvoices returns every invoiced quote, same shape and ordering as
// ListQuotes.
func (r *QuoteRepository) ListInvoices(ctx context.Context) ([]models.QuoteWithClient, error) {
	return r.list(ctx, "quotes.invoice_status = ?")
}

func (r *QuoteRepository) list(ctx context.Context, statusCond string) ([]models.QuoteWithClient, error) {
	var rows []models.QuoteWithClient
	err := r.DB.WithContext(ctx).
		Table("quotes").
		Select(quoteListSelect).
		Joins("LEFT JOIN clients ON quotes.client_id = clients.client_id").
		Where(statusCond, models.StatusInvoiced).
		Order("quotes.last_modified DESC").
		Scan(&rows).Error
	return rows, err
}

// LatestForClient returns the client's most recently created quote, used to
// pre-populate recurring per-client pricing. (nil, nil) when the client has
// no quotes yet.
func (r *QuoteRepository) LatestForClient(ctx context.Context, clientID uint) (*models.Quote, error) {
	var q models.Quote
	err := r.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC, quote_id DESC").
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Update overwrites the quote's editable fields, recomputing totals first.
// quote_number, created_at and invoice_status are never written here: the
// number is immutable once assigned and status only moves via MarkInvoiced.
func (r *QuoteRepository) Update(ctx context.Context, id uint, q *models.Quote) error {
	if q.DiscountMode == "" {
		q.DiscountMode = models.DiscountPercentage
	}
	if err := r.Pricing.ComputeForQuote(q); err != nil {
		return err
	}
	breakfast, err := q.BreakfastDates.Value()
	if err != nil {
		return err
	}
	lunch, err := q.LunchDates.Value()
	if err != nil {
		return err
	}
	dinner, err := q.DinnerDates.Value()
	if err != nil {
		return err
	}
	laundry, err := q.LaundryDates.Value()
	if err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(&models.Quote{}).Where("quote_id = ?", id).Updates(map[string]any{
		"client_id":           q.ClientID,
		"number_of_beds":      q.NumberOfBeds,
		"number_of_guests":    q.NumberOfGuests,
		"unit_bed_cost":       q.UnitBedCost,
		"unit_breakfast_cost": q.UnitBreakfastCost,
		"unit_lunch_cost":     q.UnitLunchCost,
		"unit_dinner_cost":    q.UnitDinnerCost,
		"unit_laundry_cost":   q.UnitLaundryCost,
		"guest_details":       q.GuestDetails,
		"check_in_date":       q.CheckInDate,
		"check_out_date":      q.CheckOutDate,
		"breakfast_dates":     breakfast,
		"lunch_dates":         lunch,
		"dinner_dates":        dinner,
		"laundry_dates":       laundry,
		"discount_mode":       q.DiscountMode,
		"discount_percentage": q.DiscountPercentage,
		"discount_amount":     q.DiscountAmount,
		"subtotal":            q.Subtotal,
		"vat":                 q.VAT,
		"total":               q.Total,
		"document_type":       q.DocumentType,
		"last_modified":       time.Now().UTC(),
	}).Error
}

// MarkInvoiced performs the one-way unpaid -> invoiced transition. Calling it
// on an already-invoiced quote (or an unknown id) matches no rows and leaves
// last_modified untouched.
func (r *QuoteRepository) MarkInvoiced(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Exec(
		`UPDATE quotes SET invoice_status = ?, last_modified = ? WHERE quote_id = ? AND invoice_status <> ?`,
		models.StatusInvoiced, time.Now().UTC(), id, models.StatusInvoiced,
	).Error
}

// Delete removes a quote, snapshotting the stored row image into
// deleted_quotes inside the same transaction.
func (r *QuoteRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`INSERT INTO deleted_quotes (
				quote_id, client_id, quote_number, number_of_beds, number_of_guests,
				unit_bed_cost, unit_breakfast_cost, unit_lunch_cost, unit_dinner_cost,
				unit_laundry_cost, guest_details, check_in_date, check_out_date,
				breakfast_dates, lunch_dates, dinner_dates, laundry_dates,
				discount_mode, discount_percentage, discount_amount, subtotal, vat, total,
				document_type, invoice_status, created_at, last_modified, deleted_at
			) SELECT
				quote_id, client_id, quote_number, number_of_beds, number_of_guests,
				unit_bed_cost, unit_breakfast_cost, unit_lunch_cost, unit_dinner_cost,
				unit_laundry_cost, guest_details, check_in_date, check_out_date,
				breakfast_dates, lunch_dates, dinner_dates, laundry_dates,
				discount_mode, discount_percentage, discount_amount, subtotal, vat, total,
				document_type, invoice_status, created_at, last_modified, ?
			FROM quotes WHERE quote_id = ?`, time.Now().UTC(), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Exec(`DELETE FROM quotes WHERE quote_id = ?`, id).Error
	})
}
