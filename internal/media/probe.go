package media

import (
	"context"
	"log/slog"
	"net/url"

	ffprobe "gopkg.in/vansante/go-ffprobe.v2"
)

// Probe reads container tags of embeds that point straight at a video
// file. ffprobe must be available in PATH.
type Probe struct{}

func NewProbe() *Probe {
	return &Probe{}
}

func (p *Probe) ResolveMetadata(ctx context.Context, ref VideoReference) (*Metadata, error) {
	if ref.Platform != PlatformEmbed {
		return nil, ErrUnsupportedPlatform
	}

	u, err := url.Parse(ref.VideoId)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || !isDirectVideoURL(u) {
		return nil, ErrUnsupportedPlatform
	}

	slog.Debug("Probing direct video URL", "url", u)
	info, err := ffprobe.ProbeURL(ctx, u.String())
	if err != nil {
		return nil, err
	}

	title, err := info.Format.TagList.GetString("title")
	if err != nil {
		title = UnknownTitle
	}

	artist, err := info.Format.TagList.GetString("artist")
	if err != nil {
		artist = UnknownChannel
	}

	return &Metadata{
		Title:    title,
		Channel:  artist,
		Duration: info.Format.Duration(),
	}, nil
}
