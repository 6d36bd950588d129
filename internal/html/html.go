package html

import (
	"fmt"
	"html/template"
	"maps"
	"sync"
	"time"

	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/media"
	"github.com/gin-gonic/gin"
)

func StringAsHTML(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}

func CombineArgs(args ...gin.H) gin.H {
	all := gin.H{}
	for _, arg := range args {
		maps.Copy(all, arg)
	}
	return all
}

func Render(tmpl *template.Template, c *gin.Context, block string, arg gin.H) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Writer, block, CombineArgs(gin.H{"Context": c, "Site": GetSiteSettings()}, arg)); err != nil {
		c.Error(err).SetType(gin.ErrorTypeRender)
		return
	}
}

func RenderFunc(tmpl *template.Template, block string, arg gin.H) gin.HandlerFunc {
	return func(c *gin.Context) {
		Render(tmpl, c, block, arg)
	}
}

func FormatDuration(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	seconds := int((d % time.Minute) / time.Second)

	if hours == 0 {
		return fmt.Sprintf("%02d:%02d", minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"HasUsername": func(c *gin.Context) bool {
			return auth.IsLoggedIn(c)
		},
		"GetUsername": func(c *gin.Context) string {
			return auth.GetUsername(c)
		},
		"FormatTimestampUTC": func(t time.Time) template.HTML {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
			defaultFormat := t.UTC().Format("02/01/2006, 15:04:05 UTC")
			return template.HTML("<span class=\"timestamp\" data-value=\"" + t.Local().UTC().Format(time.RFC3339) + "\">" + defaultFormat + "</span>")
		},
		"FormatDuration": FormatDuration,
		"Thumbnail": func(platform media.Platform, videoId string) string {
			return media.Thumbnail(platform, videoId)
		},
		"Platforms": func() []media.Platform {
			return media.Platforms
		},
		"Get": func(c *gin.Context, name string) string {
			if c.Request.Method == "POST" {
				return c.PostForm(name)
			} else {
				return c.Query(name)
			}
		},
	}
}

func GetTemplate(name string, paths ...string) *template.Template {
	// the layout goes first so that pages can override its blocks
	paths = append([]string{"templates/layout.tmpl"}, paths...)
	return template.Must(template.New(name).Funcs(DefaultFuncMap()).ParseFiles(paths...))
}

// LazyTemplate defers parsing until first use, for packages that are
// imported by tests running outside the repository root.
func LazyTemplate(parse func() *template.Template) func() *template.Template {
	return sync.OnceValue(parse)
}
