package domain

import "time"

// Tenant is an isolated customer/organization record. The subdomain is the
// unit of request routing: every storefront request selects exactly one
// tenant by its subdomain.
type Tenant struct {
	ID           int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name         string    `gorm:"index" json:"name" form:"name"`
	Subdomain    string    `gorm:"uniqueIndex;size:63" json:"subdomain" form:"subdomain"`
	LogoUrl      string    `gorm:"size:1024" json:"logo_url" form:"logo_url"`
	PrimaryColor string    `gorm:"size:16" json:"primary_color" form:"primary_color"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Tenant) TableName() string {
	return "tenants"
}
