package app

import (
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/pkg/common"
	"go.uber.org/zap"
)

// Event bus topics. Subscribers must not block: handlers run on the
// publisher goroutine unless subscribed async.
const (
	TopicAdminLogin   = "admin.login"
	TopicAdminLogout  = "admin.logout"
	TopicEntityChange = "admin.entity.change"
)

// registerAuditSubscriber persists an audit row for every admin action
// published on the bus.
func (a *Application) registerAuditSubscriber() {
	writeLog := func(oprName, oprIP, action, desc string) {
		row := domain.SysOprLog{
			ID:        common.UUIDint64(),
			OprName:   oprName,
			OprIp:     oprIP,
			OptAction: action,
			OptDesc:   desc,
			OptTime:   time.Now(),
		}
		if err := a.gormDB.Create(&row).Error; err != nil {
			zap.L().Warn("failed to write audit log", zap.Error(err))
		}
	}

	err := a.bus.SubscribeAsync(TopicAdminLogin, func(username, ip, result string) {
		writeLog(username, ip, "login", result)
	}, false)
	if err != nil {
		zap.L().Error("audit subscribe failed", zap.Error(err))
	}

	err = a.bus.SubscribeAsync(TopicAdminLogout, func(username, ip string) {
		writeLog(username, ip, "logout", "")
	}, false)
	if err != nil {
		zap.L().Error("audit subscribe failed", zap.Error(err))
	}

	err = a.bus.SubscribeAsync(TopicEntityChange, func(username, ip, action, desc string) {
		writeLog(username, ip, action, desc)
	}, false)
	if err != nil {
		zap.L().Error("audit subscribe failed", zap.Error(err))
	}
}
