package media

import (
	"fmt"
	"strings"
)

const DefaultThumbnail = "/assets/video-thumbnail-default.svg"

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// Thumbnail only substitutes templates, the returned URL may not exist.
func Thumbnail(platform Platform, videoId string) string {
	switch platform {
	case PlatformYoutube:
		return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoId)
	case PlatformVimeo:
		return fmt.Sprintf("https://vumbnail.com/%s.jpg", videoId)
	case PlatformDailymotion:
		return fmt.Sprintf("https://www.dailymotion.com/thumbnail/video/%s", videoId)
	case PlatformEmbed:
		if isImageURL(videoId) {
			return videoId
		}
	}

	return DefaultThumbnail
}

func (ref VideoReference) Thumbnail() string {
	return Thumbnail(ref.Platform, ref.VideoId)
}

func isImageURL(s string) bool {
	s = strings.ToLower(s)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}

	return false
}
