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

var _ Fetcher = (*InstagramFetcher)(nil)

// InstagramFetcher retrieves a creator's recent media through the Instagram
// Graph API using the connection's access token
type InstagramFetcher struct {
	httpClient *http.Client
	settings   Settings
	userAgent  string
}

func NewInstagramFetcher(httpClient *http.Client, settings Settings, userAgent string) *InstagramFetcher {
	return &InstagramFetcher{
		httpClient: httpClient,
		settings:   settings,
		userAgent:  userAgent,
	}
}

func (f *InstagramFetcher) Platform() string {
	return PlatformInstagram
}

type instagramMedia struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	Permalink string `json:"permalink"`
}

type instagramMediaResponse struct {
	Data []instagramMedia `json:"data"`
}

func (f *InstagramFetcher) FetchRecentPosts(ctx context.Context, conn database.Connection) ([]Post, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(f.settings.Timeout)*time.Second)
	defer cancel()

	query := url.Values{}
	query.Set("fields", "id,caption,permalink")
	query.Set("limit", strconv.Itoa(f.settings.MaxPosts))
	query.Set("access_token", conn.AccessToken)

	endpoint := fmt.Sprintf("%s/%s/media?%s", f.settings.BaseURL, url.PathEscape(conn.PlatformUserID), query.Encode())

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var mediaResp instagramMediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&mediaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	posts := make([]Post, 0, len(mediaResp.Data))
	for _, media := range mediaResp.Data {
		posts = append(posts, Post{
			ID:       media.ID,
			URL:      media.Permalink,
			Caption:  media.Caption,
			Hashtags: ExtractHashtags(media.Caption),
		})
	}

	return posts, nil
}
