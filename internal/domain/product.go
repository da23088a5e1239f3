package domain

import "time"

// Product is a storefront catalog item. A product always belongs to exactly
// one tenant and is never read or written without a tenant scope.
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	TenantId    int64     `gorm:"index" json:"tenant_id,string" form:"tenant_id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `gorm:"size:2048" json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"`
	ImageUrl    string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	IsActive    bool      `json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
