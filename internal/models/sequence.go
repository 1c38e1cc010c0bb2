package models

// SequenceSeed is the counter value the store is provisioned with. The first
// document number issued is therefore 150.
const SequenceSeed = 149

// QuoteSequence is the single-row counter behind document numbering. It is
// only ever touched through the repository's NextNumber transaction.
type QuoteSequence struct {
	LastNumber int64 `gorm:"not null"`
}

func (QuoteSequence) TableName() string { return "quote_number_sequence" }
