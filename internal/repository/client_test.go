package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancelodge/lodge-billing/internal/models"
	"github.com/vancelodge/lodge-billing/internal/services"
)

func TestClientCreateAndGetRoundTrip(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewClientRepository(gdb)
	ctx := context.Background()

	c := &models.Client{
		FirstName:        "Amara",
		LastName:         "Dlamini",
		EmailAddress:     "amara@lodge.test",
		PhoneNumber:      "+27115550101",
		CompanyName:      "Dlamini Tours",
		CompanyVATNumber: "ZA4123456789",
	}
	require.NoError(t, repo.Create(ctx, c))
	require.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
	assert.False(t, c.LastModified.IsZero())

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.FirstName, got.FirstName)
	assert.Equal(t, c.LastName, got.LastName)
	assert.Equal(t, c.EmailAddress, got.EmailAddress)
	assert.Equal(t, c.PhoneNumber, got.PhoneNumber)
	assert.Equal(t, c.CompanyName, got.CompanyName)
	assert.Equal(t, c.CompanyVATNumber, got.CompanyVATNumber)
}

func TestClientGetUnknownReturnsNil(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewClientRepository(gdb)

	got, err := repo.Get(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientListOrdering(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewClientRepository(gdb)
	ctx := context.Background()

	seedClient(t, gdb, "Zanele", "Mokoena")
	seedClient(t, gdb, "Amara", "Zulu")
	seedClient(t, gdb, "Amara", "Abbott")

	clients, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "Abbott", clients[0].LastName)
	assert.Equal(t, "Zulu", clients[1].LastName)
	assert.Equal(t, "Zanele", clients[2].FirstName)
}

func TestClientUpdateRefreshesLastModified(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewClientRepository(gdb)
	ctx := context.Background()

	c := seedClient(t, gdb, "Amara", "Dlamini")
	before := c.LastModified

	time.Sleep(20 * time.Millisecond)
	c.PhoneNumber = "+27115550202"
	require.NoError(t, repo.Update(ctx, c.ID, c))

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "+27115550202", got.PhoneNumber)
	assert.True(t, got.LastModified.After(before))
	assert.True(t, got.CreatedAt.Equal(c.CreatedAt))
}

func TestClientDeleteWritesExactlyOneAuditRow(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewClientRepository(gdb)
	ctx := context.Background()

	c := seedClient(t, gdb, "Amara", "Dlamini")
	c.CompanyName = "Dlamini Tours"
	require.NoError(t, repo.Update(ctx, c.ID, c))
	updated, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, c.ID))

	gone, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var audits []models.DeletedClient
	require.NoError(t, gdb.Where("client_id = ?", c.ID).Find(&audits).Error)
	require.Len(t, audits, 1)
	audit := audits[0]
	assert.Equal(t, updated.FirstName, audit.FirstName)
	assert.Equal(t, updated.LastName, audit.LastName)
	assert.Equal(t, updated.EmailAddress, audit.EmailAddress)
	assert.Equal(t, updated.CompanyName, audit.CompanyName)
	assert.True(t, audit.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, audit.LastModified.Equal(updated.LastModified))
	assert.False(t, audit.DeletedAt.Before(updated.LastModified))
}

func TestClientDeleteUnknownIsNoOp(t *testing.T) {
	gdb := openTestStore(t)
	repo := NewClientRepository(gdb)

	require.NoError(t, repo.Delete(context.Background(), 4242))

	var count int64
	require.NoError(t, gdb.Model(&models.DeletedClient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestClientDeleteRestrictedWhileQuotesExist(t *testing.T) {
	gdb := openTestStore(t)
	clientRepo := NewClientRepository(gdb)
	quoteRepo := NewQuoteRepository(gdb, services.NewPricingService())
	ctx := context.Background()

	c := seedClient(t, gdb, "Amara", "Dlamini")
	q := newTestQuote(c.ID)
	require.NoError(t, quoteRepo.Create(ctx, q))

	err := clientRepo.Delete(ctx, c.ID)
	require.ErrorIs(t, err, ErrClientReferenced)

	// Nothing changed and nothing was audited.
	stillThere, err := clientRepo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, stillThere)
	stillQuote, err := quoteRepo.Get(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, stillQuote)

	var count int64
	require.NoError(t, gdb.Model(&models.DeletedClient{}).Count(&count).Error)
	assert.Zero(t, count)
}
