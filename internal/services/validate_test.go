package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/media"
	"github.com/google/go-cmp/cmp"
)

func TestValidateNewVideo(t *testing.T) {
	tests := []struct {
		name    string
		input   NewVideo
		want    NewVideo
		wantRef media.VideoReference
		wantErr error
	}{
		{
			name:    "youtube with tags",
			input:   NewVideo{Title: "  Lecture 1 ", VideoUrl: " https://youtu.be/ABC123 ", Class: " 10A ", Subject: "Math "},
			want:    NewVideo{Title: "Lecture 1", VideoUrl: "https://youtu.be/ABC123", Class: "10A", Subject: "Math"},
			wantRef: media.VideoReference{Platform: media.PlatformYoutube, VideoId: "ABC123"},
		},
		{
			name:    "embed",
			input:   NewVideo{VideoUrl: "https://example.com/clip.mp4"},
			want:    NewVideo{VideoUrl: "https://example.com/clip.mp4"},
			wantRef: media.VideoReference{Platform: media.PlatformEmbed, VideoId: "https://example.com/clip.mp4"},
		},
		{
			name:    "empty link",
			input:   NewVideo{Title: "x", VideoUrl: "   "},
			want:    NewVideo{Title: "x"},
			wantErr: ErrEmptyVideoLink,
		},
		{
			name:    "unsupported link",
			input:   NewVideo{VideoUrl: "not a url at all"},
			want:    NewVideo{VideoUrl: "not a url at all"},
			wantErr: ErrUnsupportedVideoLink,
		},
		{
			name:    "title too long",
			input:   NewVideo{Title: strings.Repeat("a", MaxVideoTitleLength+1), VideoUrl: "https://vimeo.com/1"},
			want:    NewVideo{Title: strings.Repeat("a", MaxVideoTitleLength+1), VideoUrl: "https://vimeo.com/1"},
			wantErr: ErrVideoTitleTooLong,
		},
		{
			name:    "class too long",
			input:   NewVideo{VideoUrl: "https://vimeo.com/1", Class: strings.Repeat("c", MaxVideoTagLength+1)},
			want:    NewVideo{VideoUrl: "https://vimeo.com/1", Class: strings.Repeat("c", MaxVideoTagLength+1)},
			wantErr: ErrVideoTagTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ref, err := ValidateNewVideo(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateNewVideo error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ValidateNewVideo input mismatch (-want +got):\n%s", diff)
			}
			if ref != tt.wantRef {
				t.Errorf("ValidateNewVideo reference = %+v, want %+v", ref, tt.wantRef)
			}
		})
	}
}

func TestVideoTitle(t *testing.T) {
	tests := []struct {
		title    string
		metadata *media.Metadata
		want     string
	}{
		{"Mine", &media.Metadata{Title: "Theirs"}, "Mine"},
		{"", &media.Metadata{Title: "Theirs"}, "Theirs"},
		{"", &media.Metadata{}, media.UnknownTitle},
		{"", nil, media.UnknownTitle},
	}

	for _, tt := range tests {
		if got := videoTitle(NewVideo{Title: tt.title}, tt.metadata); got != tt.want {
			t.Errorf("videoTitle(%q, %+v) = %q, want %q", tt.title, tt.metadata, got, tt.want)
		}
	}
}

func TestClassifyVideoLink(t *testing.T) {
	links := []string{
		"https://youtu.be/ABC123",
		"  https://youtu.be/ABC123\n",
		"\thttps://www.youtube.com/watch?v=ABC123 ",
	}

	for _, link := range links {
		ref, ok := ClassifyVideoLink(link)
		if !ok || ref != (media.VideoReference{Platform: media.PlatformYoutube, VideoId: "ABC123"}) {
			t.Errorf("ClassifyVideoLink(%q) = %+v, %v", link, ref, ok)
		}
	}

	if ref, ok := ClassifyVideoLink(" \n "); ok {
		t.Errorf("ClassifyVideoLink of blank input = %+v, want failure", ref)
	}
}

func TestVideoAccessors(t *testing.T) {
	video := Video{
		Platform: media.PlatformVimeo,
		VideoId:  "12345678",
		Duration: 90 * time.Second,
		Notes:    []Note{{Completed: true}, {}, {Completed: true}},
	}

	if got, want := video.Thumbnail(), "https://vumbnail.com/12345678.jpg"; got != want {
		t.Errorf("Thumbnail() = %q, want %q", got, want)
	}
	if got, want := video.Player(), (media.PlayerSource{Kind: media.PlayerIframe, Src: "https://player.vimeo.com/video/12345678"}); got != want {
		t.Errorf("Player() = %+v, want %+v", got, want)
	}
	if got := video.CompletedNotes(); got != 2 {
		t.Errorf("CompletedNotes() = %d, want 2", got)
	}
}

func TestParseWatchedFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    WatchedFilter
		wantErr bool
	}{
		{"", FilterAllVideos, false},
		{"all", FilterAllVideos, false},
		{"watched", FilterWatched, false},
		{"unwatched", FilterUnwatched, false},
		{"maybe", FilterAllVideos, true},
	}

	for _, tt := range tests {
		got, err := ParseWatchedFilter(tt.input)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParseWatchedFilter(%q) = %q, %v", tt.input, got, err)
		}
	}
}

func TestValidateNoteText(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{"  review chapter 2  ", "review chapter 2", nil},
		{"   ", "", ErrEmptyNote},
		{strings.Repeat("ă", MaxNoteLength), strings.Repeat("ă", MaxNoteLength), nil},
		{strings.Repeat("a", MaxNoteLength+1), strings.Repeat("a", MaxNoteLength+1), ErrNoteTooLong},
	}

	for _, tt := range tests {
		got, err := ValidateNoteText(tt.input)
		if got != tt.want || !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateNoteText(%q) = %q, %v; want %q, %v", tt.input, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestValidateSiteSettings(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		want    html.SiteSettings
		wantErr error
	}{
		{" My Class ", "#E50914", html.SiteSettings{SiteName: "My Class", ThemeColor: "#e50914"}, nil},
		{"", "#e50914", html.SiteSettings{ThemeColor: "#e50914"}, ErrInvalidSiteName},
		{strings.Repeat("n", MaxSiteNameLength+1), "#e50914", html.SiteSettings{SiteName: strings.Repeat("n", MaxSiteNameLength+1), ThemeColor: "#e50914"}, ErrInvalidSiteName},
		{"ok", "red", html.SiteSettings{SiteName: "ok", ThemeColor: "red"}, ErrInvalidThemeColor},
		{"ok", "#fff", html.SiteSettings{SiteName: "ok", ThemeColor: "#fff"}, ErrInvalidThemeColor},
	}

	for _, tt := range tests {
		got, err := ValidateSiteSettings(tt.name, tt.color)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateSiteSettings(%q, %q) error = %v, want %v", tt.name, tt.color, err, tt.wantErr)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ValidateSiteSettings(%q, %q) mismatch (-want +got):\n%s", tt.name, tt.color, diff)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	usernames := []struct {
		username string
		want     error
	}{
		{"alice", nil},
		{"a_b-c", nil},
		{"", EmptyUsernameError},
		{"ab", InvalidUsernameError},
		{"alice smith", InvalidUsernameError},
	}
	for _, tt := range usernames {
		if err := ValidateUsername(tt.username); !errors.Is(err, tt.want) {
			t.Errorf("ValidateUsername(%q) = %v, want %v", tt.username, err, tt.want)
		}
	}

	passwords := []struct {
		password, confirm string
		want              error
	}{
		{"correct-horse", "correct-horse", nil},
		{"", "", EmptyPasswordError},
		{"short", "short", InvalidPasswordError},
		{"correct-horse", "correct-horsf", PasswordNotMatchError},
	}
	for _, tt := range passwords {
		if err := ValidatePassword(tt.password, tt.confirm); !errors.Is(err, tt.want) {
			t.Errorf("ValidatePassword(%q, %q) = %v, want %v", tt.password, tt.confirm, err, tt.want)
		}
	}

	if _, err := ParseEmail("alice@example.com"); err != nil {
		t.Errorf("ParseEmail rejected a valid address: %v", err)
	}
	if _, err := ParseEmail("not an email"); !errors.Is(err, InvalidEmailError) {
		t.Errorf("ParseEmail accepted an invalid address: %v", err)
	}
}
