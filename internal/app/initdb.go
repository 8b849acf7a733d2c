package app

import (
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/pkg/common"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed config_schemas.json
var configSchemasData []byte

//go:embed seed_menu.yml
var seedMenuData []byte

// ConfigSchemasJSON mirrors config_schemas.json.
type ConfigSchemasJSON struct {
	Schemas []ConfigSchema `json:"schemas"`
}

type ConfigSchema struct {
	Key         string `json:"key"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

type seedProduct struct {
	Name        string  `yaml:"name"`
	Price       float64 `yaml:"price"`
	Description string  `yaml:"description"`
	Popular     bool    `yaml:"popular"`
	Vegetarian  bool    `yaml:"vegetarian"`
	Vegan       bool    `yaml:"vegan"`
}

type seedCategory struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Products    []seedProduct `yaml:"products"`
}

type seedMenu struct {
	Categories []seedCategory `yaml:"categories"`
}

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "cafeteca"

	hashedPassword, err := common.HashPassword(defaultPassword)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}

	var operator domain.SysOpr
	err = a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
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

func (a *Application) checkSettings() {
	// Load configuration definitions from the embedded JSON file
	var schemasData ConfigSchemasJSON
	if err := json.Unmarshal(configSchemasData, &schemasData); err != nil {
		zap.L().Error("failed to load config schemas from JSON", zap.Error(err))
		return
	}

	// Iterate over all configuration definitions, checking and initializing missing entries
	for sortid, schema := range schemasData.Schemas {
		// Parse key: "category.name" -> category, name
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		// Check whether the configuration already exists
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		// e.g., if the configuration does not exist, create the default configuration
		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     0,
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkMenuSeed installs the embedded default menu on an empty database.
func (a *Application) checkMenuSeed() {
	var count int64
	if err := a.gormDB.Model(&domain.Category{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	var seed seedMenu
	if err := yaml.Unmarshal(seedMenuData, &seed); err != nil {
		zap.L().Error("failed to parse embedded menu seed", zap.Error(err))
		return
	}

	now := time.Now()
	for _, sc := range seed.Categories {
		cat := domain.Category{
			ID:          common.UUIDint64(),
			Name:        sc.Name,
			Description: sc.Description,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := a.gormDB.Create(&cat).Error; err != nil {
			zap.L().Error("failed to seed category", zap.String("name", sc.Name), zap.Error(err))
			continue
		}
		for _, sp := range sc.Products {
			catID := cat.ID
			p := domain.Product{
				ID:           common.UUIDint64(),
				Name:         sp.Name,
				Price:        sp.Price,
				CategoryID:   &catID,
				Description:  sp.Description,
				IsAvailable:  true,
				IsPopular:    sp.Popular,
				IsVegetarian: sp.Vegetarian,
				IsVegan:      sp.Vegan,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to seed product", zap.String("name", sp.Name), zap.Error(err))
			}
		}
		zap.L().Info("seeded menu category",
			zap.String("name", sc.Name),
			zap.Int("products", len(sc.Products)))
	}
}
