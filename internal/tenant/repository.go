package tenant

import (
	"context"

	"github.com/flukeworks/fluke/internal/domain"
	"gorm.io/gorm"
)

// Repository interface for tenant data access
type Repository interface {
	// GetBySubdomain retrieves a tenant by exact subdomain match
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error)
}

// GormRepository is the GORM implementation of Repository
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM-based tenant repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
