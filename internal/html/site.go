package html

import "sync/atomic"

type SiteSettings struct {
	SiteName   string
	ThemeColor string
}

var DefaultSiteSettings = SiteSettings{SiteName: "dersflix", ThemeColor: "#e50914"}

var siteSettings atomic.Pointer[SiteSettings]

// SetSiteSettings replaces the settings rendered into every page.
func SetSiteSettings(settings SiteSettings) {
	siteSettings.Store(&settings)
}

func GetSiteSettings() SiteSettings {
	if settings := siteSettings.Load(); settings != nil {
		return *settings
	}

	return DefaultSiteSettings
}
