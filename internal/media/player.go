package media

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

type PlayerKind string

const (
	PlayerNone   PlayerKind = "none"
	PlayerIframe PlayerKind = "iframe"
	PlayerVideo  PlayerKind = "video"
)

type PlayerSource struct {
	Kind PlayerKind
	Src  string
}

var directVideoExtensions = []string{".mp4", ".webm", ".m4v", ".mov"}

// Player picks how a reference is played back. Stored embed snippets are
// never rendered as-is: only the src of their first iframe is kept.
func Player(ref VideoReference) PlayerSource {
	var src string
	switch ref.Platform {
	case PlatformYoutube:
		src = fmt.Sprintf("https://www.youtube.com/embed/%s", url.PathEscape(ref.VideoId))
	case PlatformVimeo:
		src = fmt.Sprintf("https://player.vimeo.com/video/%s", url.PathEscape(ref.VideoId))
	case PlatformDailymotion:
		src = fmt.Sprintf("https://www.dailymotion.com/embed/video/%s", url.PathEscape(ref.VideoId))
	case PlatformEmbed:
		src = ref.VideoId
		if strings.Contains(src, "<iframe") {
			src = iframeSrc(src)
		}
	default:
		return PlayerSource{Kind: PlayerNone}
	}

	u, err := url.Parse(strings.TrimSpace(src))
	if err == nil && u.Scheme == "" && u.Host != "" {
		u.Scheme = "https"
	}
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return PlayerSource{Kind: PlayerNone}
	}

	if ref.Platform == PlatformEmbed && isDirectVideoURL(u) {
		return PlayerSource{Kind: PlayerVideo, Src: u.String()}
	}

	return PlayerSource{Kind: PlayerIframe, Src: u.String()}
}

func iframeSrc(snippet string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(snippet))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed snippet, either way there is no iframe
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "iframe" {
				continue
			}

			for _, attr := range token.Attr {
				if attr.Key == "src" {
					return attr.Val
				}
			}
			return ""
		}
	}
}

func isDirectVideoURL(u *url.URL) bool {
	path := strings.ToLower(u.Path)
	for _, ext := range directVideoExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}
