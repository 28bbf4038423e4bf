package routes

import (
	"time"

	"toolify/app"
	"toolify/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	toolCtl := controllers.NewToolController(s)
	cioCtl := controllers.NewCheckInOutController(s)
	histCtl := controllers.NewHistoryController(s)
	notifCtl := controllers.NewNotificationController(s)
	siteCtl := controllers.NewJobSiteController(s)
	userCtl := controllers.NewUserController(s)
	liveCtl := controllers.NewLiveController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 认证（公开+受保护）
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.GET("/whoami", authCtl.Whoami)
		authed.POST("/logout", authCtl.Logout)
	}

	// ------------------------------
	// 扫码 + 借还（登录即可）
	// ------------------------------
	scan := r.Group("/api/scan", authMW, seenMW)
	{
		scan.POST("", cioCtl.ResolveScan)
		scan.POST("/reset", cioCtl.ResetScan)
	}

	tools := r.Group("/api/tools", authMW, seenMW)
	{
		tools.GET("", toolCtl.ListTools)
		tools.GET("/:id", toolCtl.GetTool)
		tools.POST("/:id/checkout", cioCtl.CheckOut)
		tools.POST("/:id/checkin", cioCtl.CheckIn)
	}

	// ------------------------------
	// 工具管理（仅管理员）
	// ------------------------------
	toolsAdmin := r.Group("/api/tools", authMW, adminMW)
	{
		toolsAdmin.POST("", toolCtl.CreateTool)
		toolsAdmin.PATCH("/:id", toolCtl.UpdateTool)
		toolsAdmin.POST("/:id/barcode", toolCtl.AssignBarcode)
		toolsAdmin.DELETE("/:id", toolCtl.RemoveTool)
		toolsAdmin.GET("/removed/list", toolCtl.ListRemovedTools)
		toolsAdmin.POST("/removed/:id/restore", toolCtl.RestoreTool)
	}

	// ------------------------------
	// 工地
	// ------------------------------
	sites := r.Group("/api/jobsites", authMW, seenMW)
	{
		sites.GET("", siteCtl.List)
	}
	sitesAdmin := r.Group("/api/jobsites", authMW, adminMW)
	{
		sitesAdmin.POST("", siteCtl.Create)
		sitesAdmin.PATCH("/:id", siteCtl.Update)
		sitesAdmin.DELETE("/:id", siteCtl.Delete)
	}

	// ------------------------------
	// 流水 + 通知 + 实时推送（仅管理员）
	// ------------------------------
	hist := r.Group("/api/history", authMW, adminMW)
	{
		hist.GET("/checkouts", histCtl.ListCheckOuts)
		hist.GET("/checkins", histCtl.ListCheckIns)
	}

	notif := r.Group("/api/notifications", authMW, adminMW)
	{
		notif.GET("", notifCtl.List)
		notif.PATCH("/:id/read", notifCtl.MarkRead)
		notif.POST("/read-all", notifCtl.MarkAllRead)
	}

	r.GET("/api/live", authMW, adminMW, liveCtl.Subscribe)

	// ------------------------------
	// 用户管理 + 救火开关（仅管理员）
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.GET("", userCtl.ListUsers)
		users.GET("/:id", userCtl.GetUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	admin := r.Group("/api/admin", authMW, adminMW)
	{
		admin.POST("/tools/reset-availability", toolCtl.ResetAvailability)
		admin.POST("/history/reset", histCtl.ResetHistory)
	}
}
