package main

import (
	"context"
	"os"

	"toolify/app"
	"toolify/config"
	"toolify/db"
	"toolify/routes"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	// 把 ADMIN_EMAILS 里的账号提成管理员（唯一提权入口）
	app.PromoteConfiguredAdmins(context.Background(), application.Config,
		db.NewRepo(application.DB), application.Log)

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	application.Log.Info("listening", zap.String("port", port))
	_ = r.Run(":" + port)
}
