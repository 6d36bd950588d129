package html

import (
	"html/template"
	"io"

	"github.com/gin-gonic/gin"
)

var toastTemplate = LazyTemplate(func() *template.Template {
	return template.Must(template.ParseFiles("templates/notifications/toast.tmpl"))
})

type ToastKind string

const (
	ToastError ToastKind = "error"
	ToastInfo  ToastKind = "info"
)

func RenderToast(w io.Writer, kind ToastKind, title template.HTML, description template.HTML) error {
	return toastTemplate().ExecuteTemplate(w, "content", gin.H{
		"Title":       title,
		"Description": description,
		"Kind":        kind,
	})
}

func Toast(c *gin.Context, kind ToastKind, title template.HTML, description template.HTML) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Hx-Reswap", "afterbegin")
	c.Header("Hx-Retarget", ".toast-notification-box")
	if err := RenderToast(c.Writer, kind, title, description); err != nil {
		c.Error(err).SetType(gin.ErrorTypeRender)
	}
}
