package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// nextSequenceNumber atomically advances the single counter row and reads the
// new value back, all inside one transaction so two concurrent callers can
// never observe the same number. The increment-then-read must not be split
// across transactions.
func nextSequenceNumber(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`UPDATE quote_number_sequence SET last_number = last_number + 1`)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSequenceMissing
		}
		return tx.Raw(`SELECT last_number FROM quote_number_sequence`).Scan(&n).Error
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// FormatQuoteNumber renders a counter value as a document number, zero-padded
// to at least three digits.
func FormatQuoteNumber(n int64) string {
	return fmt.Sprintf("%03d", n)
}
