package services

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/html"
)

const MaxSiteNameLength = 50

var ErrInvalidSiteName = errors.New("Site name must be between 1 and 50 characters long.")
var ErrInvalidThemeColor = errors.New("Theme color must be a hex color such as #e50914.")

var themeColorRegex = regexp.MustCompile("^#[0-9a-fA-F]{6}$")

func ValidateSiteSettings(name, color string) (html.SiteSettings, error) {
	settings := html.SiteSettings{SiteName: strings.TrimSpace(name), ThemeColor: strings.ToLower(strings.TrimSpace(color))}
	if length := utf8.RuneCountInString(settings.SiteName); length == 0 || length > MaxSiteNameLength {
		return settings, ErrInvalidSiteName
	}
	if !themeColorRegex.MatchString(settings.ThemeColor) {
		return settings, ErrInvalidThemeColor
	}
	return settings, nil
}

func GetSiteSettings(tx *db.Tx) (settings html.SiteSettings, hasErr bool) {
	var hasRow bool
	if tx.QueryRow("SELECT site_name, theme_color FROM site_settings WHERE id = 1").Scan(&hasRow, &settings.SiteName, &settings.ThemeColor) {
		return settings, true
	}

	if !hasRow {
		return html.DefaultSiteSettings, false
	}

	return settings, false
}

// UpdateSiteSettings persists the settings. Callers publish them with
// html.SetSiteSettings once the transaction commits.
func UpdateSiteSettings(tx *db.Tx, name, color string) (settings html.SiteSettings, hasErr bool) {
	settings, err := ValidateSiteSettings(name, color)
	if err != nil {
		tx.PublicError(http.StatusUnprocessableEntity, err)
		return settings, true
	}

	hasErr = tx.Exec(nil, `INSERT INTO site_settings (id, site_name, theme_color) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET site_name = EXCLUDED.site_name, theme_color = EXCLUDED.theme_color`,
		settings.SiteName, settings.ThemeColor)
	return settings, hasErr
}
