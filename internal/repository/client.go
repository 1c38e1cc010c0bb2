package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vancelodge/lodge-billing/internal/models"
)

// ClientRepository owns all reads and writes of the clients table.
type ClientRepository struct {
	DB *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{DB: db} }

// Create inserts a new client and stamps both timestamps.
func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.LastModified = now
	return r.DB.WithContext(ctx).Create(c).Error
}

// Get returns the client or (nil, nil) when the id is unknown.
func (r *ClientRepository) Get(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	err := r.DB.WithContext(ctx).First(&c, "client_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every client ordered by first then last name.
func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.DB.WithContext(ctx).Order("first_name, last_name").Find(&clients).Error
	return clients, err
}

// Update overwrites the client's editable fields and refreshes
// last_modified. created_at is never touched. Updating an unknown id is a
// no-op, matching reads of unknown ids returning empty.
func (r *ClientRepository) Update(ctx context.Context, id uint, c *models.Client) error {
	return r.DB.WithContext(ctx).Model(&models.Client{}).Where("client_id = ?", id).Updates(map[string]any{
		"first_name":         c.FirstName,
		"last_name":          c.LastName,
		"email_address":      c.EmailAddress,
		"phone_number":       c.PhoneNumber,
		"company_name":       c.CompanyName,
		"company_address":    c.CompanyAddress,
		"company_vat_number": c.CompanyVATNumber,
		"company_website":    c.CompanyWebsite,
		"last_modified":      time.Now().UTC(),
	}).Error
}

// Delete removes a client, snapshotting the row into deleted_clients first.
// Both steps run in one transaction so no code path can drop a row without
// its audit copy. The snapshot is taken from the stored row image, not from
// any in-memory value. A client that still owns quotes is refused.
func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.Quote{}).Where("client_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrClientReferenced
		}
		res := tx.Exec(`INSERT INTO deleted_clients (
				client_id, first_name, last_name, email_address, phone_number,
				company_name, company_address, company_vat_number, company_website,
				created_at, last_modified, deleted_at
			) SELECT
				client_id, first_name, last_name, email_address, phone_number,
				company_name, company_address, company_vat_number, company_website,
				created_at, last_modified, ?
			FROM clients WHERE client_id = ?`, time.Now().UTC(), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// nothing to delete, nothing to audit
			return nil
		}
		return tx.Exec(`DELETE FROM clients WHERE client_id = ?`, id).Error
	})
}
