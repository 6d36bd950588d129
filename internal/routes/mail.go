package routes

import (
	"net/http"

	"github.com/btmxh/dersflix/internal/mailer"
	"github.com/gin-gonic/gin"
)

func MailRouter(g *gin.RouterGroup) {
	mail, ok := mailer.DefaultMailer.(*mailer.MemoryMailer)
	if !ok {
		return
	}

	g.GET("/", func(c *gin.Context) {
		lastMail, hasMail := mail.LastMail(c.Query("email"))
		if !hasMail {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Header("Subject", lastMail.Subject)
		c.String(http.StatusOK, string(lastMail.Body))
	})
}
