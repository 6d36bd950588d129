package media

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/wader/goutubedl"
)

var watchUrlPatterns = map[Platform]string{
	PlatformYoutube:     "https://www.youtube.com/watch?v=%s",
	PlatformVimeo:       "https://vimeo.com/%s",
	PlatformDailymotion: "https://www.dailymotion.com/video/%s",
}

// WatchURL returns the canonical page of a hosted video. Embeds have no
// canonical page.
func WatchURL(ref VideoReference) (*url.URL, bool) {
	pattern, ok := watchUrlPatterns[ref.Platform]
	if !ok {
		return nil, false
	}

	u, err := url.Parse(fmt.Sprintf(pattern, url.QueryEscape(ref.VideoId)))
	if err != nil {
		return nil, false
	}

	return u, true
}

// YoutubeDL resolves hosted videos through yt-dlp, which must be
// available in PATH.
type YoutubeDL struct{}

func NewYoutubeDL() *YoutubeDL {
	return &YoutubeDL{}
}

func (yt *YoutubeDL) ResolveMetadata(ctx context.Context, ref VideoReference) (*Metadata, error) {
	u, ok := WatchURL(ref)
	if !ok {
		return nil, ErrUnsupportedPlatform
	}

	result, err := goutubedl.New(ctx, u.String(), goutubedl.Options{
		Type: goutubedl.TypeSingle,
	})
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Title:    firstNonEmpty(result.Info.Title, UnknownTitle),
		Channel:  firstNonEmpty(result.Info.Channel, result.Info.Uploader, UnknownChannel),
		Duration: time.Duration(result.Info.Duration * float64(time.Second)),
	}, nil
}
