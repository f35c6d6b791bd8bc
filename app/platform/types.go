package platform

import (
	"regexp"
)

const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
	PlatformTwitter   = "twitter"
)

// Post is a normalized social post. Posts are ephemeral: they exist only
// during a scan, and only matches are persisted as reviews.
type Post struct {
	ID       string
	URL      string
	Caption  string
	Hashtags []string
}

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// ExtractHashtags returns all hashtags found in a caption or description,
// including the leading '#'
func ExtractHashtags(text string) []string {
	return hashtagPattern.FindAllString(text, -1)
}
