package routes

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/middlewares"
	"github.com/btmxh/dersflix/internal/services"
	"github.com/gin-gonic/gin"
)

func getAuthTemplate(name string) *template.Template {
	return getTemplate(name, fmt.Sprintf("templates/auth/%s.tmpl", name), "templates/auth/common.tmpl")
}

func redirectIfLoggedIn(c *gin.Context) bool {
	if auth.IsLoggedIn(c) {
		if c.Request.Method == "POST" {
			c.Header("Hx-Redirect", "/")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, "/")
		}

		return true
	}

	return false
}

func authRender(tmpl *template.Template, c *gin.Context, block string, arg gin.H) {
	if !redirectIfLoggedIn(c) {
		html.Render(tmpl, c, block, arg)
	}
}

func authSSRRoute(tmpl *template.Template, block string, arg gin.H) gin.HandlerFunc {
	return func(c *gin.Context) {
		authRender(tmpl, c, block, arg)
	}
}

var confirmMailTmpl = getAuthTemplate("confirmmail")
var registerTmpl = getAuthTemplate("register")
var loginTmpl = getAuthTemplate("login")
var recoverTmpl = getAuthTemplate("recover")
var recoverDoneTmpl = getAuthTemplate("recoverdone")
var newPasswordTmpl = getAuthTemplate("resetpassword")
var newPasswordInvalidTmpl = getAuthTemplate("resetpassword_invalid")

func AuthRouter(r *gin.RouterGroup) {
	r.POST("/register/submit", register)
	r.GET("/register/form", authSSRRoute(registerTmpl, "form", gin.H{}))
	r.GET("/register", authSSRRoute(registerTmpl, "layout", gin.H{}))

	r.POST("/login/submit", login)
	r.GET("/login/form", authSSRRoute(loginTmpl, "form", gin.H{}))
	r.GET("/login", authSSRRoute(loginTmpl, "layout", gin.H{}))

	r.POST("/recover/submit", recoverFunc)
	r.GET("/recover/form", authSSRRoute(recoverTmpl, "form", gin.H{}))
	r.GET("/recover", authSSRRoute(recoverTmpl, "layout", gin.H{}))

	r.POST("/confirmmail/submit", confirmMail)
	r.GET("/confirmmail/form", authSSRRoute(confirmMailTmpl, "form", gin.H{}))
	r.GET("/confirmmail", authSSRRoute(confirmMailTmpl, "layout", gin.H{}))

	r.GET("/recoverdone/form", authSSRRoute(recoverDoneTmpl, "form", gin.H{}))
	r.GET("/recoverdone", authSSRRoute(recoverDoneTmpl, "layout", gin.H{}))

	r.POST("/logout", logout)

	r.GET("/resetpassword", resetPassword)
	r.POST("/resetpassword/submit", resetPasswordSubmit)
}

func register(c *gin.Context) {
	if redirectIfLoggedIn(c) {
		return
	}

	handler := errs.NewGinErrorHandler(c, "Registration failed")
	username := strings.TrimSpace(c.PostForm("username"))
	if err := services.ValidateUsername(username); err != nil {
		handler.PublicError(http.StatusUnprocessableEntity, err)
		return
	}

	password := c.PostForm("password")
	if err := services.ValidatePassword(password, c.PostForm("password-confirm")); err != nil {
		handler.PublicError(http.StatusUnprocessableEntity, err)
		return
	}

	email, err := services.ParseEmail(c.PostForm("email"))
	if err != nil {
		handler.PublicError(http.StatusUnprocessableEntity, err)
		return
	}

	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	if services.Register(tx, email, username, password) || tx.Commit() {
		return
	}

	HxPushURL(c, "/auth/confirmmail?username="+url.QueryEscape(username))
	html.Render(confirmMailTmpl, c, "form", gin.H{"FormUsername": username})
}

func login(c *gin.Context) {
	if redirectIfLoggedIn(c) {
		return
	}

	handler := errs.NewGinErrorHandler(c, "Login failed")
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if len(username) == 0 {
		handler.PublicError(http.StatusUnprocessableEntity, services.EmptyUsernameError)
		return
	}
	if len(password) == 0 {
		handler.PublicError(http.StatusUnprocessableEntity, services.EmptyPasswordError)
		return
	}

	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	signedToken, timeout, hasErr := services.LogIn(tx, username, password)
	if hasErr || tx.Commit() {
		return
	}

	middlewares.SetAuthCookie(c, signedToken, timeout)
	HxRedirect(c, "/")
}

func recoverFunc(c *gin.Context) {
	if redirectIfLoggedIn(c) {
		return
	}

	handler := errs.NewGinErrorHandler(c, "Account recovery failed")
	email, err := services.ParseEmail(c.PostForm("email"))
	if err != nil {
		handler.PublicError(http.StatusUnprocessableEntity, err)
		return
	}

	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	if services.SendRecoveryEmail(tx, email) || tx.Commit() {
		return
	}

	html.Render(recoverDoneTmpl, c, "form", gin.H{})
}

func resetPassword(c *gin.Context) {
	email := c.Query("email")
	identifier := c.Query("code")

	handler := errs.NewCapturingErrorHandler()
	tx := db.BeginTx(handler)
	if tx == nil {
		errs.NewGinErrorHandler(c, "Password reset failed").PublicError(http.StatusInternalServerError, db.GenericError)
		return
	}
	defer tx.Rollback()

	if services.ResetPasswordRequestValid(tx, identifier, email) || tx.Commit() {
		html.Render(newPasswordInvalidTmpl, c, "layout", gin.H{})
		return
	}

	html.Render(newPasswordTmpl, c, "layout", gin.H{"Identifier": identifier, "Email": email})
}

func resetPasswordSubmit(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Password reset failed")
	email := c.PostForm("email")
	identifier := c.PostForm("code")
	password := c.PostForm("password")

	if err := services.ValidatePassword(password, c.PostForm("password-confirm")); err != nil {
		handler.PublicError(http.StatusUnprocessableEntity, err)
		return
	}

	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	if services.ResetPassword(tx, identifier, email, password) || tx.Commit() {
		return
	}

	var msg template.HTML = "Password reset successfully.<br>Please log in with your new password."
	HxPushURL(c, "/auth/login")
	html.Render(loginTmpl, c, "form", gin.H{"MessageString": &msg})
}

func confirmMail(c *gin.Context) {
	if redirectIfLoggedIn(c) {
		return
	}

	handler := errs.NewGinErrorHandler(c, "Email confirmation failed")
	code := strings.TrimSpace(c.PostForm("code"))
	username := c.PostForm("username")

	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	if services.ConfirmMail(tx, code, username) || tx.Commit() {
		return
	}

	var msg template.HTML = "Email confirmed successfully.<br>Please log in with your credentials."
	HxPushURL(c, "/auth/login")
	html.Render(loginTmpl, c, "form", gin.H{"MessageString": &msg})
}

func logout(c *gin.Context) {
	middlewares.Logout(c)
	HxRedirect(c, "/")
}
