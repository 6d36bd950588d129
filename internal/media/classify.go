package media

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var iframeSrcRegex = regexp.MustCompile(`src=["'](.*?)["']`)

var errNotAbsoluteURL = errors.New("Not an absolute URL")

// Classify interprets a pasted link or embed snippet. The second return
// value is false when the input could not be classified.
//
// Hosts are matched by substring, so "notyoutube.com.example" counts as
// YouTube. Embed references keep the whole original input as their id.
func Classify(raw string) (VideoReference, bool) {
	target := raw
	if strings.Contains(raw, "iframe") || strings.Contains(raw, "embed") {
		if match := iframeSrcRegex.FindStringSubmatch(raw); match != nil {
			target = match[1]
		}
	}

	u, err := normalizeURL(target)
	if err != nil {
		return classifyEmbed(raw)
	}

	ref, hostMatched := classifyHost(u)
	if ref.VideoId != "" {
		return ref, true
	}

	// a known host without an id is not retried as a generic embed
	if hostMatched {
		return VideoReference{}, false
	}

	return classifyEmbed(raw)
}

func classifyEmbed(raw string) (VideoReference, bool) {
	if strings.Contains(raw, "iframe") || strings.Contains(raw, "embed") || strings.HasSuffix(raw, ".mp4") {
		return VideoReference{Platform: PlatformEmbed, VideoId: raw}, true
	}

	return VideoReference{}, false
}

func parseAbsoluteURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}

	if u.Scheme == "" {
		return nil, errNotAbsoluteURL
	}

	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return nil, errNotAbsoluteURL
	}

	return u, nil
}

func normalizeURL(s string) (*url.URL, error) {
	u, err := parseAbsoluteURL(s)
	if err != nil {
		// protocol-relative srcs ("//host/path") keep their host
		return parseAbsoluteURL("https://" + strings.TrimLeft(s, "/"))
	}

	return u, nil
}

// classifyHost runs the platform checks in order. hostMatched reports
// whether any platform host matched, even if no id could be extracted.
func classifyHost(u *url.URL) (ref VideoReference, hostMatched bool) {
	host := strings.ToLower(u.Hostname())
	path := u.EscapedPath()

	if strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be") {
		hostMatched = true
		var id string
		if strings.Contains(host, "youtu.be") {
			id = strings.TrimPrefix(path, "/")
		} else if strings.Contains(path, "embed") {
			id = lastSegment(path)
		} else {
			id = u.Query().Get("v")
		}

		if id != "" {
			return VideoReference{Platform: PlatformYoutube, VideoId: id}, true
		}
	}

	if strings.Contains(host, "vimeo.com") {
		hostMatched = true
		if id := lastNonEmptySegment(path); id != "" {
			return VideoReference{Platform: PlatformVimeo, VideoId: id}, true
		}
	}

	if strings.Contains(host, "dailymotion.com") {
		hostMatched = true
		var id string
		if parts := strings.Split(path, "/video/"); len(parts) > 1 {
			id = parts[1]
		} else {
			id = lastSegment(path)
		}

		id, _, _ = strings.Cut(id, "?")
		if id != "" {
			return VideoReference{Platform: PlatformDailymotion, VideoId: id}, true
		}
	}

	return VideoReference{}, hostMatched
}

func lastSegment(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

func lastNonEmptySegment(path string) string {
	return lastSegment(strings.TrimRight(path, "/"))
}
