package routes

import (
	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/middlewares"
	"github.com/btmxh/dersflix/internal/services"
	"github.com/gin-gonic/gin"
)

var settingsTmpl = getTemplate("settings", "templates/settings.tmpl")

func SettingsRouter(g *gin.RouterGroup) {
	g.Use(middlewares.MustAuthMiddleware())
	g.GET("", func(c *gin.Context) {
		html.Render(settingsTmpl, c, "layout", gin.H{"Settings": html.GetSiteSettings()})
	})
	g.POST("", updateSettings)
}

func updateSettings(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to save settings")
	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	settings, hasErr := services.UpdateSiteSettings(tx, c.PostForm("site-name"), c.PostForm("theme-color"))
	if hasErr || tx.Commit() {
		return
	}

	html.SetSiteSettings(settings)
	HxRefresh(c)
	html.Toast(c, html.ToastInfo, "Settings saved", html.StringAsHTML("Site name and theme color updated."))
}
