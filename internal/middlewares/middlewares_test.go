package middlewares

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/gin-gonic/gin"
)

type capturedError struct {
	title, desc template.HTML
}

func newTestRouter(captured *[]capturedError) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware(func(c *gin.Context, title, desc template.HTML) {
		*captured = append(*captured, capturedError{title, desc})
	}))
	r.Use(AuthMiddleware())
	return r
}

func TestMustAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if err := auth.InitJWT(); err != nil {
		t.Fatalf("Unable to init JWT: %v", err)
	}

	var captured []capturedError
	r := newTestRouter(&captured)
	r.GET("/private", MustAuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, auth.GetUsername(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Anonymous request status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if len(captured) != 1 || captured[0].desc != template.HTML(unauthorizedError.Error()) {
		t.Errorf("Unexpected captured errors %+v", captured)
	}

	token, err := auth.Authorize("alice", time.Hour)
	if err != nil {
		t.Fatalf("Unable to sign token: %v", err)
	}

	captured = nil
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: AUTH_COOKIE_NAME, Value: token})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "alice" {
		t.Errorf("Authorized request = %d %q", w.Code, w.Body.String())
	}
	if len(captured) != 0 {
		t.Errorf("Unexpected captured errors %+v", captured)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: AUTH_COOKIE_NAME, Value: token + "x"})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Tampered token status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestErrorMiddlewareEscapesPublicErrors(t *testing.T) {
	var captured []capturedError
	r := newTestRouter(&captured)
	r.GET("/fail", func(c *gin.Context) {
		handler := errs.NewGinErrorHandler(c, "Unable to add video")
		handler.PrivateError(http.ErrHandlerTimeout)
		handler.PublicError(http.StatusUnprocessableEntity, errPlain("<b>bad</b> link"))
		handler.PublicError(http.StatusUnprocessableEntity, errPlain("second"))
	})
	r.GET("/private-only", func(c *gin.Context) {
		errs.NewGinErrorHandler(c, "Oops").PrivateError(http.ErrHandlerTimeout)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/private-only", nil))

	want := []capturedError{
		{"Unable to add video", "&lt;b&gt;bad&lt;/b&gt; link<br>second"},
		{"Oops", "Internal server error"},
	}
	if len(captured) != len(want) {
		t.Fatalf("Captured %d errors, want %d: %+v", len(captured), len(want), captured)
	}
	for i := range want {
		if captured[i] != want[i] {
			t.Errorf("captured[%d] = %+v, want %+v", i, captured[i], want[i])
		}
	}
}

func TestVideoIdMiddlewareRejectsMalformedIds(t *testing.T) {
	var captured []capturedError
	r := newTestRouter(&captured)
	r.GET("/videos/:id/", VideoIdMiddleware(), func(c *gin.Context) {
		t.Error("Handler reached with malformed id")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/42/", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if len(captured) != 1 || captured[0].desc != template.HTML(InvalidVideoIdError.Error()) {
		t.Errorf("Unexpected captured errors %+v", captured)
	}
}

type errPlain string

func (e errPlain) Error() string { return string(e) }
