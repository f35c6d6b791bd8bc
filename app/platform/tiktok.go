package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pulsecrew/creator-pulse/app/database"
)

var _ Fetcher = (*TikTokFetcher)(nil)

// TikTokFetcher retrieves a creator's recent videos through the TikTok
// display API using the connection's bearer token
type TikTokFetcher struct {
	httpClient *http.Client
	settings   Settings
	userAgent  string
}

func NewTikTokFetcher(httpClient *http.Client, settings Settings, userAgent string) *TikTokFetcher {
	return &TikTokFetcher{
		httpClient: httpClient,
		settings:   settings,
		userAgent:  userAgent,
	}
}

func (f *TikTokFetcher) Platform() string {
	return PlatformTikTok
}

type tiktokVideo struct {
	ID               string `json:"id"`
	VideoDescription string `json:"video_description"`
	ShareURL         string `json:"share_url"`
}

type tiktokVideoListResponse struct {
	Data struct {
		Videos []tiktokVideo `json:"videos"`
	} `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *TikTokFetcher) FetchRecentPosts(ctx context.Context, conn database.Connection) ([]Post, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(f.settings.Timeout)*time.Second)
	defer cancel()

	body, err := json.Marshal(map[string]interface{}{
		"max_count": f.settings.MaxPosts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	endpoint := f.settings.BaseURL + "/v2/video/list/?fields=id,video_description,share_url"

	req, err := http.NewRequestWithContext(timeoutCtx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Authorization", "Bearer "+conn.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var listResp tiktokVideoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// TikTok reports API-level errors with code "ok" on success
	if listResp.Error.Code != "" && listResp.Error.Code != "ok" {
		return nil, fmt.Errorf("API error: %s: %s", listResp.Error.Code, listResp.Error.Message)
	}

	posts := make([]Post, 0, len(listResp.Data.Videos))
	for _, video := range listResp.Data.Videos {
		posts = append(posts, Post{
			ID:       video.ID,
			URL:      video.ShareURL,
			Caption:  video.VideoDescription,
			Hashtags: ExtractHashtags(video.VideoDescription),
		})
	}

	return posts, nil
}
