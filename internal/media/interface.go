package media

import (
	"context"
	"errors"
	"time"
)

const (
	UnknownTitle   = "Unknown title"
	UnknownChannel = "Unknown channel"
)

var ErrUnsupportedPlatform = errors.New("Unsupported platform")
var ErrMediaNotFound = errors.New("Media not found")

type Metadata struct {
	Title    string        `json:"title"`
	Channel  string        `json:"channel"`
	Duration time.Duration `json:"duration"`
}

// MetadataResolver returns ErrUnsupportedPlatform for references it does
// not know how to resolve, so that the next resolver can be tried.
type MetadataResolver interface {
	ResolveMetadata(ctx context.Context, ref VideoReference) (*Metadata, error)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
