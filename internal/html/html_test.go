package html

import (
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{42 * time.Second, "00:42"},
		{3*time.Minute + 20*time.Second, "03:20"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestStringAsHTML(t *testing.T) {
	if got := StringAsHTML(`<iframe src="x">`); got != "&lt;iframe src=&#34;x&#34;&gt;" {
		t.Errorf("StringAsHTML() = %q", got)
	}
}

func TestCombineArgs(t *testing.T) {
	got := CombineArgs(gin.H{"a": 1, "b": 2}, gin.H{"b": 3})
	if got["a"] != 1 || got["b"] != 3 {
		t.Errorf("CombineArgs() = %v", got)
	}
}

func TestSiteSettings(t *testing.T) {
	if got := GetSiteSettings(); got != DefaultSiteSettings {
		t.Errorf("GetSiteSettings() before SetSiteSettings = %+v", got)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetSiteSettings(SiteSettings{SiteName: "Ders", ThemeColor: "#123456"})
			_ = GetSiteSettings()
		}()
	}
	wg.Wait()

	if got := GetSiteSettings(); got.SiteName != "Ders" || got.ThemeColor != "#123456" {
		t.Errorf("GetSiteSettings() = %+v", got)
	}
}
