package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pulsecrew/creator-pulse/app/database"
)

var _ Fetcher = (*YouTubeFetcher)(nil)

// YouTubeFetcher retrieves a channel's recent uploads from the public
// uploads Atom feed. The feed needs no API quota; the connection supplies
// the channel ID.
type YouTubeFetcher struct {
	httpClient *http.Client
	settings   Settings
	userAgent  string
	parser     *gofeed.Parser
}

func NewYouTubeFetcher(httpClient *http.Client, settings Settings, userAgent string) *YouTubeFetcher {
	return &YouTubeFetcher{
		httpClient: httpClient,
		settings:   settings,
		userAgent:  userAgent,
		parser:     gofeed.NewParser(),
	}
}

func (f *YouTubeFetcher) Platform() string {
	return PlatformYouTube
}

func (f *YouTubeFetcher) FetchRecentPosts(ctx context.Context, conn database.Connection) ([]Post, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(f.settings.Timeout)*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", f.settings.BaseURL, url.QueryEscape(conn.PlatformUserID))

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uploads feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	feed, err := f.parser.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse uploads feed: %w", err)
	}

	posts := make([]Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(posts) >= f.settings.MaxPosts {
			break
		}

		// Atom entry IDs look like "yt:video:VIDEO_ID"
		videoID := item.GUID
		if idx := strings.LastIndex(videoID, ":"); idx >= 0 {
			videoID = videoID[idx+1:]
		}

		description := item.Description
		if description == "" {
			description = mediaDescription(item)
		}

		caption := item.Title
		if description != "" {
			caption = item.Title + "\n" + description
		}

		posts = append(posts, Post{
			ID:       videoID,
			URL:      item.Link,
			Caption:  caption,
			Hashtags: ExtractHashtags(caption),
		})
	}

	return posts, nil
}

// mediaDescription pulls the video description out of the feed's
// media:group extension, where YouTube puts it
func mediaDescription(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	groups, ok := media["group"]
	if !ok || len(groups) == 0 {
		return ""
	}
	descriptions, ok := groups[0].Children["description"]
	if !ok || len(descriptions) == 0 {
		return ""
	}
	return descriptions[0].Value
}
