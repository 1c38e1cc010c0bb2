package repository

import "errors"

var (
	// ErrClientReferenced is returned when deleting a client that still owns
	// quotes. The delete is aborted and nothing changes.
	ErrClientReferenced = errors.New("client_referenced_by_quotes")

	// ErrSequenceMissing means the numbering counter row is gone. This is
	// corrupted state: re-seeding could reissue an already-used number, so
	// the error is surfaced instead of healed.
	ErrSequenceMissing = errors.New("quote_number_sequence_missing")
)
