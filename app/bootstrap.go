// app/bootstrap.go
package app

import (
	"context"

	"toolify/db"
	"toolify/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PromoteConfiguredAdmins 启动时把 ADMIN_EMAILS 里的账号提成管理员。
// 这是唯一的提权入口；注册、登录等任何请求路径都不会改角色。
func PromoteConfiguredAdmins(ctx context.Context, cfg Config, repo *db.Repo, log *zap.Logger) {
	for _, email := range cfg.AdminEmails {
		u, err := repo.FindUserByEmail(ctx, email)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// 账号还没注册；等对方注册后下次重启再提
				log.Info("configured admin not registered yet", zap.String("email", email))
				continue
			}
			log.Warn("admin bootstrap lookup failed", zap.String("email", email), zap.Error(err))
			continue
		}
		if u.Role == models.RoleAdmin {
			continue
		}
		if err := repo.SetUserRole(ctx, u.ID, models.RoleAdmin); err != nil {
			log.Warn("admin bootstrap promote failed", zap.String("email", email), zap.Error(err))
			continue
		}
		log.Info("promoted configured admin", zap.String("email", email))
	}
}
