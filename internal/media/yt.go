package media

import (
	"context"
	"errors"
	"time"

	"github.com/senseyeio/duration"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var ErrInvalidYTId = errors.New("Invalid YouTube video ID")

func checkId(s string) bool {
	for _, r := range s {
		suitable := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
		if !suitable {
			return false
		}
	}
	return true
}

func checkVideoId(id string) bool {
	return len(id) == 11 && checkId(id)
}

func isoDurationToGoDuration(d duration.Duration) time.Duration {
	return time.Duration(d.Y)*time.Hour*24*365 +
		time.Duration(d.M)*time.Hour*24*30 +
		time.Duration(d.W)*time.Hour*24*7 +
		time.Duration(d.D)*time.Hour*24 +
		time.Duration(d.TH)*time.Hour +
		time.Duration(d.TM)*time.Minute +
		time.Duration(d.TS)*time.Second
}

// YoutubeAPI resolves YouTube references with the Data API v3. Requests
// are throttled to stay inside the daily quota.
type YoutubeAPI struct {
	apiKey  string
	limiter *rate.Limiter
}

func NewYoutubeAPI(apiKey string) *YoutubeAPI {
	return &YoutubeAPI{
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

func (yt *YoutubeAPI) newClient(ctx context.Context) (*youtube.Service, error) {
	return youtube.NewService(ctx, option.WithAPIKey(yt.apiKey))
}

func (yt *YoutubeAPI) ResolveMetadata(ctx context.Context, ref VideoReference) (*Metadata, error) {
	if ref.Platform != PlatformYoutube {
		return nil, ErrUnsupportedPlatform
	}

	if !checkVideoId(ref.VideoId) {
		return nil, ErrInvalidYTId
	}

	if err := yt.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	client, err := yt.newClient(ctx)
	if err != nil {
		return nil, err
	}

	response, err := client.Videos.List([]string{"snippet", "contentDetails"}).Id(ref.VideoId).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if len(response.Items) < 1 {
		return nil, ErrMediaNotFound
	}

	video := response.Items[0]
	videoLength, err := duration.ParseISO8601(video.ContentDetails.Duration)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Title:    firstNonEmpty(video.Snippet.Title, UnknownTitle),
		Channel:  firstNonEmpty(video.Snippet.ChannelTitle, UnknownChannel),
		Duration: isoDurationToGoDuration(videoLength),
	}, nil
}
