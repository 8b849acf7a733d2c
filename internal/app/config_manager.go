package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// SiteSettings is the typed shape of the "site" settings category, shown on
// the public contact page.
type SiteSettings struct {
	Title        string `mapstructure:"title" json:"title"`
	Slogan       string `mapstructure:"slogan" json:"slogan"`
	ContactEmail string `mapstructure:"contact_email" json:"contact_email"`
	ContactPhone string `mapstructure:"contact_phone" json:"contact_phone"`
	Address      string `mapstructure:"address" json:"address"`
	OpeningHours string `mapstructure:"opening_hours" json:"opening_hours"`
}

// MenuSettings is the typed shape of the "menu" settings category.
type MenuSettings struct {
	Currency string `mapstructure:"currency" json:"currency"`
}

// EventsSettings is the typed shape of the "events" settings category.
type EventsSettings struct {
	ShowPast bool `mapstructure:"show_past" json:"show_past"`
}

// ConfigManager caches sys_config rows and writes updates back through the
// database, keeping the cache coherent.
type ConfigManager struct {
	app   *Application
	mu    sync.RWMutex
	cache map[string]string
}

func NewConfigManager(app *Application) *ConfigManager {
	cm := &ConfigManager{app: app, cache: make(map[string]string)}
	cm.Reload()
	return cm
}

func cacheKey(category, name string) string {
	return category + "." + name
}

// Reload replaces the cache with the current database contents.
func (cm *ConfigManager) Reload() {
	var rows []domain.SysConfig
	if err := cm.app.gormDB.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return
	}
	fresh := make(map[string]string, len(rows))
	for _, row := range rows {
		fresh[cacheKey(row.Type, row.Name)] = row.Value
	}
	cm.mu.Lock()
	cm.cache = fresh
	cm.mu.Unlock()
}

func (cm *ConfigManager) GetString(category, name string) string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.cache[cacheKey(category, name)]
}

func (cm *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(cm.GetString(category, name))
}

func (cm *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(cm.GetString(category, name))
}

func (cm *ConfigManager) setValue(category, name, value string) error {
	result := cm.app.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("unknown setting %s.%s", category, name)
	}
	cm.mu.Lock()
	cm.cache[cacheKey(category, name)] = value
	cm.mu.Unlock()
	return nil
}

// Save validates and persists a settings payload. The payload is keyed by
// category, each value being that category's field map.
func (cm *ConfigManager) Save(settings map[string]interface{}) error {
	if raw, ok := settings["site"]; ok {
		var site SiteSettings
		if err := mapstructure.Decode(raw, &site); err != nil {
			return fmt.Errorf("invalid site settings: %w", err)
		}
		fields := map[string]string{
			"title":         site.Title,
			"slogan":        site.Slogan,
			"contact_email": site.ContactEmail,
			"contact_phone": site.ContactPhone,
			"address":       site.Address,
			"opening_hours": site.OpeningHours,
		}
		for name, value := range fields {
			if value == "" {
				continue
			}
			if err := cm.setValue("site", name, value); err != nil {
				return err
			}
		}
	}

	if raw, ok := settings["menu"]; ok {
		var menu MenuSettings
		if err := mapstructure.Decode(raw, &menu); err != nil {
			return fmt.Errorf("invalid menu settings: %w", err)
		}
		if menu.Currency != "" {
			if err := cm.setValue("menu", "currency", menu.Currency); err != nil {
				return err
			}
		}
	}

	if raw, ok := settings["events"]; ok {
		var events EventsSettings
		if err := mapstructure.Decode(raw, &events); err != nil {
			return fmt.Errorf("invalid events settings: %w", err)
		}
		if err := cm.setValue("events", "show_past", cast.ToString(events.ShowPast)); err != nil {
			return err
		}
	}

	return nil
}

// Site returns the current public site settings snapshot.
func (cm *ConfigManager) Site() SiteSettings {
	return SiteSettings{
		Title:        cm.GetString("site", "title"),
		Slogan:       cm.GetString("site", "slogan"),
		ContactEmail: cm.GetString("site", "contact_email"),
		ContactPhone: cm.GetString("site", "contact_phone"),
		Address:      cm.GetString("site", "address"),
		OpeningHours: cm.GetString("site", "opening_hours"),
	}
}

// ConfigMgr returns the configuration manager
func (a *Application) ConfigMgr() *ConfigManager {
	return a.configManager
}
