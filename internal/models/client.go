package models

import "time"

// Client entity
type Client struct {
	ID               uint      `gorm:"column:client_id;primaryKey" json:"client_id"`
	FirstName        string    `gorm:"not null;index" json:"first_name"`
	LastName         string    `json:"last_name"`
	EmailAddress     string    `gorm:"not null" json:"email_address"`
	PhoneNumber      string    `json:"phone_number"`
	CompanyName      string    `json:"company_name"`
	CompanyAddress   string    `json:"company_address"`
	CompanyVATNumber string    `gorm:"column:company_vat_number" json:"company_vat_number"`
	CompanyWebsite   string    `json:"company_website"`
	CreatedAt        time.Time `json:"created_at"`
	LastModified     time.Time `json:"last_modified"`
}

func (Client) TableName() string { return "clients" }

// DeletedClient is the append-only audit copy of a Client taken at the moment
// of deletion. Rows are written by the repository's delete transaction and
// never updated or removed.
type DeletedClient struct {
	ClientID         uint      `gorm:"column:client_id" json:"client_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	EmailAddress     string    `json:"email_address"`
	PhoneNumber      string    `json:"phone_number"`
	CompanyName      string    `json:"company_name"`
	CompanyAddress   string    `json:"company_address"`
	CompanyVATNumber string    `gorm:"column:company_vat_number" json:"company_vat_number"`
	CompanyWebsite   string    `json:"company_website"`
	CreatedAt        time.Time `json:"created_at"`
	LastModified     time.Time `json:"last_modified"`
	DeletedAt        time.Time `gorm:"not null" json:"deleted_at"`
}

func (DeletedClient) TableName() string { return "deleted_clients" }
