package app

import (
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/flukeworks/fluke/internal/domain"
)

// ConfigManager reads runtime-tunable settings from the sys_config table.
// Every read is a fresh query; settings change rarely and the table is tiny.
type ConfigManager struct {
	app DBProvider
}

func NewConfigManager(app DBProvider) *ConfigManager {
	return &ConfigManager{app: app}
}

func (m *ConfigManager) getValue(category, key string) string {
	var item domain.SysConfig
	err := m.app.DB().
		Where("type = ? and name = ?", category, key).
		First(&item).Error
	if err != nil {
		zap.S().Debugf("config %s.%s not found", category, key)
		return ""
	}
	return item.Value
}

func (m *ConfigManager) GetString(category, key string) string {
	return m.getValue(category, key)
}

func (m *ConfigManager) GetInt(category, key string) int {
	return cast.ToInt(m.getValue(category, key))
}

func (m *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.getValue(category, key))
}

func (m *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(m.getValue(category, key))
}
