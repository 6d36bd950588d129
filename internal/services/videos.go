package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/media"
	"github.com/google/uuid"
)

const MaxVideoTitleLength = 200
const MaxVideoTagLength = 50

var ErrUnsupportedVideoLink = errors.New("Unsupported video link. Paste a YouTube, Vimeo or Dailymotion link, an iframe embed code or a direct .mp4 link.")
var ErrEmptyVideoLink = errors.New("Video link must not be empty.")
var ErrVideoTitleTooLong = errors.New("Video title must be at most 200 characters long.")
var ErrVideoTagTooLong = errors.New("Class and subject must be at most 50 characters long.")
var ErrVideoNotFound = errors.New("Video not found.")
var ErrInvalidWatchedFilter = errors.New("Invalid watched filter.")

type Video struct {
	Id               uuid.UUID
	OwnerUsername    string
	Title            string
	VideoUrl         string
	Platform         media.Platform
	VideoId          string
	Class            string
	Subject          string
	Channel          string
	Duration         time.Duration
	Watched          bool
	Favorite         bool
	CreatedTimestamp time.Time
	Notes            []Note
}

func (v Video) Reference() media.VideoReference {
	return media.VideoReference{Platform: v.Platform, VideoId: v.VideoId}
}

func (v Video) Thumbnail() string {
	return media.Thumbnail(v.Platform, v.VideoId)
}

func (v Video) Player() media.PlayerSource {
	return media.Player(v.Reference())
}

func (v Video) CompletedNotes() (count int) {
	for _, note := range v.Notes {
		if note.Completed {
			count++
		}
	}
	return count
}

type NewVideo struct {
	Title    string
	VideoUrl string
	Class    string
	Subject  string
}

// ValidateNewVideo trims the form fields and classifies the link.
func ValidateNewVideo(input NewVideo) (NewVideo, media.VideoReference, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.VideoUrl = strings.TrimSpace(input.VideoUrl)
	input.Class = strings.TrimSpace(input.Class)
	input.Subject = strings.TrimSpace(input.Subject)

	if input.VideoUrl == "" {
		return input, media.VideoReference{}, ErrEmptyVideoLink
	}
	if utf8.RuneCountInString(input.Title) > MaxVideoTitleLength {
		return input, media.VideoReference{}, ErrVideoTitleTooLong
	}
	if utf8.RuneCountInString(input.Class) > MaxVideoTagLength || utf8.RuneCountInString(input.Subject) > MaxVideoTagLength {
		return input, media.VideoReference{}, ErrVideoTagTooLong
	}

	ref, ok := ClassifyVideoLink(input.VideoUrl)
	if !ok {
		return input, media.VideoReference{}, ErrUnsupportedVideoLink
	}

	return input, ref, nil
}

// ClassifyVideoLink classifies a link as typed into the add form.
func ClassifyVideoLink(link string) (media.VideoReference, bool) {
	return media.Classify(strings.TrimSpace(link))
}

// ResolveVideoMetadata never fails: missing metadata is logged and
// reported as nil.
func ResolveVideoMetadata(ctx context.Context, ref media.VideoReference, refresh bool) *media.Metadata {
	resolve := media.ResolveMetadata
	if refresh {
		resolve = media.RefreshMetadata
	}

	metadata, err := resolve(ctx, ref)
	if err != nil {
		if !errors.Is(err, media.ErrUnsupportedPlatform) {
			slog.Warn("Unable to resolve video metadata", "err", err, slog.String("platform", ref.Platform.String()), slog.String("id", ref.VideoId))
		}
		return nil
	}

	return metadata
}

func videoTitle(input NewVideo, metadata *media.Metadata) string {
	if input.Title != "" {
		return input.Title
	}
	if metadata != nil && metadata.Title != "" {
		return metadata.Title
	}
	return media.UnknownTitle
}

func AddVideo(tx *db.Tx, owner string, input NewVideo, ref media.VideoReference, metadata *media.Metadata) (id uuid.UUID, hasErr bool) {
	var channel string
	var duration time.Duration
	if metadata != nil {
		channel = metadata.Channel
		duration = metadata.Duration
	}

	id = uuid.New()
	hasErr = tx.Exec(nil, `INSERT INTO videos (id, owner_username, title, video_url, platform, video_id, class, subject, channel, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, owner, videoTitle(input, metadata), input.VideoUrl, string(ref.Platform), ref.VideoId,
		input.Class, input.Subject, channel, int64(duration/time.Second))
	if !hasErr {
		slog.Info("Video added", slog.String("owner", owner), slog.String("id", id.String()), slog.String("platform", ref.Platform.String()))
	}
	return id, hasErr
}

const videoColumns = "id, owner_username, title, video_url, platform, video_id, class, subject, channel, duration, watched, favorite, created_timestamp"

func scanVideo(scan func(dest ...any) error, video *Video) error {
	var platform string
	var duration int64
	if err := scan(&video.Id, &video.OwnerUsername, &video.Title, &video.VideoUrl, &platform, &video.VideoId,
		&video.Class, &video.Subject, &video.Channel, &duration, &video.Watched, &video.Favorite, &video.CreatedTimestamp); err != nil {
		return err
	}

	video.Platform = media.Platform(platform)
	video.Duration = time.Duration(duration) * time.Second
	return nil
}

func GetVideo(tx *db.Tx, id uuid.UUID) (video Video, hasErr bool) {
	var hasRow bool
	row := tx.QueryRow("SELECT "+videoColumns+" FROM videos WHERE id = $1", id)
	var platform string
	var duration int64
	if row.Scan(&hasRow, &video.Id, &video.OwnerUsername, &video.Title, &video.VideoUrl, &platform, &video.VideoId,
		&video.Class, &video.Subject, &video.Channel, &duration, &video.Watched, &video.Favorite, &video.CreatedTimestamp) {
		return video, true
	}

	if !hasRow {
		tx.PublicError(http.StatusNotFound, ErrVideoNotFound)
		return video, true
	}

	video.Platform = media.Platform(platform)
	video.Duration = time.Duration(duration) * time.Second
	video.Notes, hasErr = ListNotes(tx, id)
	return video, hasErr
}

type WatchedFilter string

const (
	FilterAllVideos       WatchedFilter = ""
	FilterWatched      WatchedFilter = "watched"
	FilterUnwatched WatchedFilter = "unwatched"
)

func ParseWatchedFilter(s string) (WatchedFilter, error) {
	switch WatchedFilter(s) {
	case FilterAllVideos, FilterWatched, FilterUnwatched:
		return WatchedFilter(s), nil
	case "all":
		return FilterAllVideos, nil
	}

	return FilterAllVideos, ErrInvalidWatchedFilter
}

type VideoFilter struct {
	Query         string
	Class         string
	Subject       string
	Watched       WatchedFilter
	OnlyFavorites bool
}

func ListVideos(tx *db.Tx, owner string, filter VideoFilter, offset int) (videos Pagination[Video], hasErr bool) {
	var rows *sql.Rows
	if tx.Query(&rows, "SELECT "+videoColumns+` FROM videos
		WHERE owner_username = $1
			AND ($2 = '' OR POSITION($2 IN LOWER(title)) > 0)
			AND ($3 = '' OR class = $3)
			AND ($4 = '' OR subject = $4)
			AND ($5 = '' OR watched = ($5 = 'watched'))
			AND (NOT $6 OR favorite)
		ORDER BY created_timestamp DESC, id
		LIMIT $7 OFFSET $8`,
		owner, strings.ToLower(strings.TrimSpace(filter.Query)), filter.Class, filter.Subject,
		string(filter.Watched), filter.OnlyFavorites, VideosPerPage+1, offset) {
		return videos, true
	}

	var items []Video
	if tx.ScanRows(rows, func(rows *sql.Rows) error {
		var video Video
		if err := scanVideo(rows.Scan, &video); err != nil {
			return err
		}
		items = append(items, video)
		return nil
	}) {
		return videos, true
	}

	return NewPagination(offset, items), false
}

func listDistinct(tx *db.Tx, column, owner string) (values []string, hasErr bool) {
	var rows *sql.Rows
	if tx.Query(&rows, "SELECT DISTINCT "+column+" FROM videos WHERE owner_username = $1 AND "+column+" <> '' ORDER BY "+column, owner) {
		return nil, true
	}

	hasErr = tx.ScanRows(rows, func(rows *sql.Rows) error {
		var value string
		if err := rows.Scan(&value); err != nil {
			return err
		}
		values = append(values, value)
		return nil
	})
	return values, hasErr
}

func ListClasses(tx *db.Tx, owner string) ([]string, bool) {
	return listDistinct(tx, "class", owner)
}

func ListSubjects(tx *db.Tx, owner string) ([]string, bool) {
	return listDistinct(tx, "subject", owner)
}

func toggleVideoFlag(tx *db.Tx, column string, id uuid.UUID) (value bool, hasErr bool) {
	var hasRow bool
	if tx.QueryRow("UPDATE videos SET "+column+" = NOT "+column+" WHERE id = $1 RETURNING "+column, id).Scan(&hasRow, &value) {
		return value, true
	}

	if !hasRow {
		tx.PublicError(http.StatusNotFound, ErrVideoNotFound)
		return value, true
	}

	return value, false
}

func ToggleVideoWatched(tx *db.Tx, id uuid.UUID) (watched bool, hasErr bool) {
	return toggleVideoFlag(tx, "watched", id)
}

func ToggleVideoFavorite(tx *db.Tx, id uuid.UUID) (favorite bool, hasErr bool) {
	return toggleVideoFlag(tx, "favorite", id)
}

// UpdateVideoMetadata stores freshly resolved channel and duration. The
// title is only replaced while it is still the placeholder.
func UpdateVideoMetadata(tx *db.Tx, id uuid.UUID, metadata *media.Metadata) (hasErr bool) {
	return tx.ExecAffected(ErrVideoNotFound, `UPDATE videos SET
			title = CASE WHEN title = $2 AND $3 <> '' THEN $3 ELSE title END,
			channel = $4,
			duration = $5
		WHERE id = $1`,
		id, media.UnknownTitle, metadata.Title, metadata.Channel, int64(metadata.Duration/time.Second))
}

func DeleteVideo(tx *db.Tx, id uuid.UUID) (hasErr bool) {
	return tx.ExecAffected(ErrVideoNotFound, "DELETE FROM videos WHERE id = $1", id)
}

func IsVideoOwner(tx *db.Tx, username string, id uuid.UUID) (isOwner bool, hasErr bool) {
	var dummy int
	hasErr = tx.QueryRow("SELECT 1 FROM videos WHERE id = $1 AND owner_username = $2", id, username).Scan(&isOwner, &dummy)
	return isOwner, hasErr
}
