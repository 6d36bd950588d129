package media

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"
)

const (
	DefaultMetadataCacheTTL     = 24 * time.Hour
	DefaultMetadataCacheEntries = 1000
	metadataCacheSweepInterval  = 10 * time.Minute
)

// ResolverChain tries each resolver in order until one supports the
// reference. The first supporting resolver's result is final.
type ResolverChain []MetadataResolver

func (chain ResolverChain) ResolveMetadata(ctx context.Context, ref VideoReference) (*Metadata, error) {
	for _, resolver := range chain {
		metadata, err := resolver.ResolveMetadata(ctx, ref)
		if errors.Is(err, ErrUnsupportedPlatform) {
			continue
		}
		return metadata, err
	}

	return nil, ErrUnsupportedPlatform
}

var metadataResolver = NewCachedResolver(ResolverChain{}, "", DefaultMetadataCacheTTL)

func InitMetadataResolvers(ctx context.Context) {
	var chain ResolverChain
	if ytApiKey := os.Getenv("YOUTUBE_API_KEY"); ytApiKey != "" {
		chain = append(chain, NewYoutubeAPI(ytApiKey))
	}
	chain = append(chain, NewYoutubeDL(), NewProbe())

	ttl := DefaultMetadataCacheTTL
	if ttlStr, ok := os.LookupEnv("METADATA_CACHE_TTL"); ok {
		parsed, err := time.ParseDuration(ttlStr)
		if err != nil {
			slog.Warn("Invalid value for METADATA_CACHE_TTL environment variable", "err", err)
		} else {
			ttl = parsed
		}
	}

	metadataResolver = NewCachedResolver(chain, os.Getenv("REDIS_URL"), ttl)
	go metadataResolver.SweepEvery(ctx, metadataCacheSweepInterval)
	slog.Info("Metadata resolvers initialized", slog.Int("resolvers", len(chain)), slog.Duration("ttl", ttl))
}

func ResolveMetadata(ctx context.Context, ref VideoReference) (*Metadata, error) {
	return metadataResolver.ResolveMetadata(ctx, ref)
}

func RefreshMetadata(ctx context.Context, ref VideoReference) (*Metadata, error) {
	metadataResolver.Forget(ctx, ref)
	return metadataResolver.ResolveMetadata(ctx, ref)
}
