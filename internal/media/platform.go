package media

type Platform string

const (
	PlatformYoutube     Platform = "youtube"
	PlatformVimeo       Platform = "vimeo"
	PlatformDailymotion Platform = "dailymotion"
	PlatformEmbed       Platform = "embed"
)

var Platforms = []Platform{PlatformYoutube, PlatformVimeo, PlatformDailymotion, PlatformEmbed}

func ParsePlatform(s string) (Platform, bool) {
	switch p := Platform(s); p {
	case PlatformYoutube, PlatformVimeo, PlatformDailymotion, PlatformEmbed:
		return p, true
	default:
		return "", false
	}
}

func (p Platform) Valid() bool {
	_, ok := ParsePlatform(string(p))
	return ok
}

func (p Platform) String() string {
	return string(p)
}

// VideoReference is the result of classifying a user supplied link.
// VideoId is never empty for references returned by Classify.
type VideoReference struct {
	Platform Platform
	VideoId  string
}
