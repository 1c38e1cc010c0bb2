package repository

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vancelodge/lodge-billing/internal/db"
	"github.com/vancelodge/lodge-billing/internal/models"
	"github.com/vancelodge/lodge-billing/internal/services"
)

func openTestStore(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := db.ConnectAndMigrate(path, false)
	require.NoError(t, err)
	return gdb
}

func f64(v float64) *float64 { return &v }

func seedClient(t *testing.T, gdb *gorm.DB, firstName, lastName string) *models.Client {
	t.Helper()
	repo := NewClientRepository(gdb)
	c := &models.Client{FirstName: firstName, LastName: lastName, EmailAddress: firstName + "@lodge.test"}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func newTestQuote(clientID uint) *models.Quote {
	return &models.Quote{
		ClientID:          clientID,
		NumberOfBeds:      2,
		NumberOfGuests:    2,
		UnitBedCost:       100,
		UnitBreakfastCost: f64(50),
		CheckInDate:       "2024-01-01",
		CheckOutDate:      "2024-01-04",
		BreakfastDates:    models.DateList{"2024-01-01", "2024-01-02"},
	}
}

func TestSequenceFirstNumberAfterSeed(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewQuoteRepository(gdb, services.NewPricingService())

	number, err := repo.NextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "150", number)

	number, err = repo.NextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "151", number)
}

func TestSequenceZeroPadding(t *testing.T) {
	assert.Equal(t, "007", FormatQuoteNumber(7))
	assert.Equal(t, "150", FormatQuoteNumber(150))
	assert.Equal(t, "999", FormatQuoteNumber(999))
	assert.Equal(t, "1000", FormatQuoteNumber(1000))
}

func TestSequenceConcurrentCallersGetDistinctContiguousNumbers(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewQuoteRepository(gdb, services.NewPricingService())

	const callers = 20
	var wg sync.WaitGroup
	results := make(chan string, callers)
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := repo.NextNumber(context.Background())
			if err != nil {
				errs <- err
				return
			}
			results <- n
		}()
	}
	wg.Wait()
	close(results)
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent NextNumber: %v", err)
	}

	var numbers []int
	for n := range results {
		v, err := strconv.Atoi(n)
		require.NoError(t, err)
		numbers = append(numbers, v)
	}
	require.Len(t, numbers, callers)
	sort.Ints(numbers)
	for i, v := range numbers {
		// contiguous run starting right after the seed, no gaps, no repeats
		assert.Equal(t, models.SequenceSeed+1+i, v)
	}
}

func TestSequenceMissingRowIsSurfaced(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewQuoteRepository(gdb, services.NewPricingService())

	require.NoError(t, gdb.Exec("DELETE FROM quote_number_sequence").Error)

	_, err := repo.NextNumber(context.Background())
	require.ErrorIs(t, err, ErrSequenceMissing)

	// The corrupted counter must not have been silently re-seeded.
	var count int64
	require.NoError(t, gdb.Table("quote_number_sequence").Count(&count).Error)
	assert.Zero(t, count)
}
