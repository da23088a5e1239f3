package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/flukeworks/fluke/internal/domain"
	"github.com/flukeworks/fluke/internal/tenant"
	"github.com/flukeworks/fluke/pkg/common"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "fluke"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

// defaultSettings are the sys_config entries initialized on first boot
var defaultSettings = []domain.SysConfig{
	{Type: "system", Name: "ApiLogHistoryDays", Value: "90", Remark: "Days to keep API request logs"},
	{Type: "system", Name: "SystemTitle", Value: "Fluke", Remark: "Site title on the main domain"},
	{Type: "tenant", Name: "DefaultPrimaryColor", Value: "#3b82f6", Remark: "Primary color assigned to new tenants"},
	{Type: "tenant", Name: "MaxProductsPerTenant", Value: "1000", Remark: "Soft cap of products per tenant"},
}

func (a *Application) checkSettings() {
	// Iterate over all configuration defaults, checking and initializing missing entries
	for sortid, item := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", item.Type, item.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     0,
				Sort:   sortid,
				Type:   item.Type,
				Name:   item.Name,
				Value:  item.Value,
				Remark: item.Remark,
			})
			zap.L().Info("initialized config",
				zap.String("key", item.Type+"."+item.Name),
				zap.String("default", item.Value))
		}
	}
}

// checkDemoTenant seeds a demo tenant with a few products for local testing
func (a *Application) checkDemoTenant() {
	const demoSubdomain = "demo"

	var count int64
	a.gormDB.Model(&domain.Tenant{}).Where("subdomain = ?", demoSubdomain).Count(&count)
	if count > 0 {
		return
	}

	if !tenant.ValidSubdomain(demoSubdomain) {
		return
	}

	t := domain.Tenant{
		ID:           common.UUIDint64(),
		Name:         "Demo Store",
		Subdomain:    demoSubdomain,
		PrimaryColor: "#3b82f6",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := a.gormDB.Create(&t).Error; err != nil {
		zap.L().Error("failed to create demo tenant", zap.Error(err))
		return
	}

	demoProducts := []domain.Product{
		{Name: "demo-widget-basic", Price: 9.99, IsActive: true},
		{Name: "demo-widget-pro", Price: 24.5, IsActive: true},
		{Name: "demo-service-annual", Price: 199.0, IsActive: true},
		{Name: "demo-addon-support", Price: 49.95, IsActive: false},
	}

	for _, p := range demoProducts {
		p.ID = common.UUIDint64()
		p.TenantId = t.ID
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to create demo product", zap.String("name", p.Name), zap.Error(err))
		}
	}

	zap.L().Info("initialized demo tenant", zap.String("subdomain", demoSubdomain))
}
