package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pulsecrew/creator-pulse/app/database"
)

var _ Fetcher = (*TwitterFetcher)(nil)

// TwitterFetcher retrieves a creator's recent tweets through the Twitter
// API v2 user timeline using the connection's bearer token
type TwitterFetcher struct {
	httpClient *http.Client
	settings   Settings
	userAgent  string
}

func NewTwitterFetcher(httpClient *http.Client, settings Settings, userAgent string) *TwitterFetcher {
	return &TwitterFetcher{
		httpClient: httpClient,
		settings:   settings,
		userAgent:  userAgent,
	}
}

func (f *TwitterFetcher) Platform() string {
	return PlatformTwitter
}

type tweet struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Entities struct {
		Hashtags []struct {
			Tag string `json:"tag"`
		} `json:"hashtags"`
	} `json:"entities"`
}

type tweetTimelineResponse struct {
	Data []tweet `json:"data"`
}

func (f *TwitterFetcher) FetchRecentPosts(ctx context.Context, conn database.Connection) ([]Post, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(f.settings.Timeout)*time.Second)
	defer cancel()

	// Twitter requires max_results between 5 and 100
	maxResults := f.settings.MaxPosts
	if maxResults < 5 {
		maxResults = 5
	}
	if maxResults > 100 {
		maxResults = 100
	}

	query := url.Values{}
	query.Set("max_results", strconv.Itoa(maxResults))
	query.Set("tweet.fields", "entities")

	endpoint := fmt.Sprintf("%s/2/users/%s/tweets?%s", f.settings.BaseURL, url.PathEscape(conn.PlatformUserID), query.Encode())

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Authorization", "Bearer "+conn.AccessToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tweets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var timelineResp tweetTimelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&timelineResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	posts := make([]Post, 0, len(timelineResp.Data))
	for _, tw := range timelineResp.Data {
		hashtags := make([]string, 0, len(tw.Entities.Hashtags))
		for _, ht := range tw.Entities.Hashtags {
			hashtags = append(hashtags, "#"+ht.Tag)
		}
		if len(hashtags) == 0 {
			hashtags = ExtractHashtags(tw.Text)
		}

		posts = append(posts, Post{
			ID:       tw.ID,
			URL:      fmt.Sprintf("https://twitter.com/i/web/status/%s", tw.ID),
			Caption:  tw.Text,
			Hashtags: hashtags,
		})
	}

	return posts, nil
}
