package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pulsecrew/creator-pulse/app/database"
	"github.com/pulsecrew/creator-pulse/app/platform"
)

// MockCampaignRepository implements a simple mock for testing
type MockCampaignRepository struct {
	campaigns []database.Campaign
	err       error
}

func (m *MockCampaignRepository) GetActiveCampaigns() ([]database.Campaign, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.campaigns, nil
}

func (m *MockCampaignRepository) GetCampaignCount() (int, error) {
	return len(m.campaigns), nil
}

// MockProfileRepository implements a simple mock for testing
type MockProfileRepository struct {
	profiles []database.ConnectedProfile
	err      error
}

func (m *MockProfileRepository) GetConnectedProfiles() ([]database.ConnectedProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profiles, nil
}

func (m *MockProfileRepository) GetProfileCount() (int, error) {
	return len(m.profiles), nil
}

// MockReviewRepository records reviews in memory, deduplicated by post ID
// like the real unique constraint
type MockReviewRepository struct {
	mu      sync.Mutex
	reviews map[string]database.NewReview
	err     error
}

func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{reviews: make(map[string]database.NewReview)}
}

func (m *MockReviewRepository) CreateReview(review database.NewReview) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return false, m.err
	}
	if _, exists := m.reviews[review.PostID]; exists {
		return false, nil
	}
	m.reviews[review.PostID] = review
	return true, nil
}

func (m *MockReviewRepository) GetReviews(status string, limit int) ([]database.ContentReview, error) {
	return nil, nil
}

func (m *MockReviewRepository) GetReviewStats() (int, int, int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reviews), len(m.reviews), 0, 0, nil
}

func (m *MockReviewRepository) UpdateReviewStatus(reviewID string, status string) error {
	return nil
}

func (m *MockReviewRepository) Review(postID string) (database.NewReview, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.reviews[postID]
	return review, ok
}

// MockFetcher returns canned posts, or an error
type MockFetcher struct {
	platform string
	posts    []platform.Post
	err      error

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Platform() string {
	return m.platform
}

func (m *MockFetcher) FetchRecentPosts(ctx context.Context, conn database.Connection) ([]platform.Post, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return m.posts, nil
}

func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func connectedProfile(id string, platforms ...string) database.ConnectedProfile {
	connections := make(map[string]database.Connection, len(platforms))
	for _, p := range platforms {
		connections[p] = database.Connection{
			ProfileID:      id,
			Platform:       p,
			PlatformUserID: "user-" + p,
			AccessToken:    "token-" + p,
		}
	}
	return database.ConnectedProfile{ID: id, Connections: connections}
}

func TestScanner_ScanCycleScenario(t *testing.T) {
	campaignRepo := &MockCampaignRepository{
		campaigns: []database.Campaign{
			{ID: "camp-1", Title: "Artist Campaign", OriginalHashtag: "#ArtistNameAd"},
		},
	}
	profileRepo := &MockProfileRepository{
		profiles: []database.ConnectedProfile{connectedProfile("prof-1", "tiktok")},
	}
	reviewRepo := NewMockReviewRepository()
	fetcher := &MockFetcher{
		platform: "tiktok",
		posts:    []platform.Post{{ID: "p1", Hashtags: []string{"#artistnamead"}}},
	}

	scanner := NewScanner(campaignRepo, profileRepo, reviewRepo, []platform.Fetcher{fetcher}, 2)

	result, err := scanner.Run(context.Background())
	if err != nil {
		t.Fatalf("Unexpected scan error: %v", err)
	}

	if result.ReviewsCreated != 1 {
		t.Errorf("Expected 1 review created, got %d", result.ReviewsCreated)
	}

	review, ok := reviewRepo.Review("p1")
	if !ok {
		t.Fatal("Expected a review for post p1")
	}
	if review.CampaignID != "camp-1" {
		t.Errorf("Expected campaign camp-1, got %s", review.CampaignID)
	}
	if review.CreatorID != "prof-1" {
		t.Errorf("Expected creator prof-1, got %s", review.CreatorID)
	}
	if review.Platform != "tiktok" {
		t.Errorf("Expected platform tiktok, got %s", review.Platform)
	}
}

func TestScanner_Idempotence(t *testing.T) {
	campaignRepo := &MockCampaignRepository{
		campaigns: []database.Campaign{{ID: "camp-1", OriginalHashtag: "#brandad"}},
	}
	profileRepo := &MockProfileRepository{
		profiles: []database.ConnectedProfile{connectedProfile("prof-1", "instagram")},
	}
	reviewRepo := NewMockReviewRepository()
	fetcher := &MockFetcher{
		platform: "instagram",
		posts:    []platform.Post{{ID: "p1", Hashtags: []string{"#brandad"}}},
	}

	scanner := NewScanner(campaignRepo, profileRepo, reviewRepo, []platform.Fetcher{fetcher}, 1)

	first, err := scanner.Run(context.Background())
	if err != nil {
		t.Fatalf("Unexpected scan error: %v", err)
	}
	if first.ReviewsCreated != 1 {
		t.Errorf("Expected 1 review on first scan, got %d", first.ReviewsCreated)
	}

	// Rediscovering the same post must be a no-op
	second, err := scanner.Run(context.Background())
	if err != nil {
		t.Fatalf("Unexpected scan error: %v", err)
	}
	if second.ReviewsCreated != 0 {
		t.Errorf("Expected 0 reviews on second scan, got %d", second.ReviewsCreated)
	}
	if second.Matches != 1 {
		t.Errorf("Expected the post to still match on second scan, got %d matches", second.Matches)
	}

	if total, _, _, _, _ := reviewRepo.GetReviewStats(); total != 1 {
		t.Errorf("Expected exactly 1 stored review, got %d", total)
	}
}

func TestScanner_FetchFailureIsolation(t *testing.T) {
	campaignRepo := &MockCampaignRepository{
		campaigns: []database.Campaign{{ID: "camp-1", OriginalHashtag: "#brandad"}},
	}
	profileRepo := &MockProfileRepository{
		profiles: []database.ConnectedProfile{
			connectedProfile("prof-1", "twitter", "instagram"),
			connectedProfile("prof-2", "twitter"),
		},
	}
	reviewRepo := NewMockReviewRepository()

	twitterFetcher := &MockFetcher{platform: "twitter", err: errors.New("rate limited")}
	instagramFetcher := &MockFetcher{
		platform: "instagram",
		posts:    []platform.Post{{ID: "ig-1", Hashtags: []string{"#brandad"}}},
	}

	scanner := NewScanner(campaignRepo, profileRepo, reviewRepo,
		[]platform.Fetcher{twitterFetcher, instagramFetcher}, 2)

	result, err := scanner.Run(context.Background())
	if err != nil {
		t.Fatalf("Fetch failures must not abort the scan: %v", err)
	}

	if result.FetchErrors != 2 {
		t.Errorf("Expected 2 fetch errors (both twitter units), got %d", result.FetchErrors)
	}
	if twitterFetcher.Calls() != 2 {
		t.Errorf("Expected twitter fetcher called for both profiles, got %d", twitterFetcher.Calls())
	}
	if instagramFetcher.Calls() != 1 {
		t.Errorf("Expected instagram fetcher still called once, got %d", instagramFetcher.Calls())
	}
	if result.ReviewsCreated != 1 {
		t.Errorf("Expected 1 review from the healthy platform, got %d", result.ReviewsCreated)
	}
}

func TestScanner_CampaignFetchFailureAbortsCycle(t *testing.T) {
	campaignRepo := &MockCampaignRepository{err: errors.New("database unreachable")}
	profileRepo := &MockProfileRepository{
		profiles: []database.ConnectedProfile{connectedProfile("prof-1", "tiktok")},
	}
	reviewRepo := NewMockReviewRepository()
	fetcher := &MockFetcher{platform: "tiktok"}

	scanner := NewScanner(campaignRepo, profileRepo, reviewRepo, []platform.Fetcher{fetcher}, 1)

	_, err := scanner.Run(context.Background())
	if err == nil {
		t.Fatal("Expected scan to fail when the campaign fetch fails")
	}
	if fetcher.Calls() != 0 {
		t.Errorf("Expected no fetches after registry failure, got %d", fetcher.Calls())
	}
}

func TestScanner_NoActiveCampaigns(t *testing.T) {
	campaignRepo := &MockCampaignRepository{}
	profileRepo := &MockProfileRepository{
		profiles: []database.ConnectedProfile{connectedProfile("prof-1", "tiktok")},
	}
	reviewRepo := NewMockReviewRepository()
	fetcher := &MockFetcher{platform: "tiktok"}

	scanner := NewScanner(campaignRepo, profileRepo, reviewRepo, []platform.Fetcher{fetcher}, 1)

	result, err := scanner.Run(context.Background())
	if err != nil {
		t.Fatalf("Unexpected scan error: %v", err)
	}
	if result.Units != 0 {
		t.Errorf("Expected no fetch units without active campaigns, got %d", result.Units)
	}
	if fetcher.Calls() != 0 {
		t.Errorf("Expected no fetches without active campaigns, got %d", fetcher.Calls())
	}
}

func TestScanner_MissingConnectionSkipped(t *testing.T) {
	campaignRepo := &MockCampaignRepository{
		campaigns: []database.Campaign{{ID: "camp-1", OriginalHashtag: "#brandad"}},
	}
	profileRepo := &MockProfileRepository{
		profiles: []database.ConnectedProfile{connectedProfile("prof-1", "youtube")},
	}
	reviewRepo := NewMockReviewRepository()

	youtubeFetcher := &MockFetcher{platform: "youtube"}
	twitterFetcher := &MockFetcher{platform: "twitter"}

	scanner := NewScanner(campaignRepo, profileRepo, reviewRepo,
		[]platform.Fetcher{youtubeFetcher, twitterFetcher}, 1)

	result, err := scanner.Run(context.Background())
	if err != nil {
		t.Fatalf("Unexpected scan error: %v", err)
	}

	if result.Units != 1 {
		t.Errorf("Expected 1 fetch unit, got %d", result.Units)
	}
	if youtubeFetcher.Calls() != 1 {
		t.Errorf("Expected youtube fetcher called once, got %d", youtubeFetcher.Calls())
	}
	if twitterFetcher.Calls() != 0 {
		t.Errorf("Expected twitter fetcher skipped without a connection, got %d calls", twitterFetcher.Calls())
	}
}

func TestScanner_ReviewWriteFailureDoesNotAbort(t *testing.T) {
	campaignRepo := &MockCampaignRepository{
		campaigns: []database.Campaign{{ID: "camp-1", OriginalHashtag: "#brandad"}},
	}
	profileRepo := &MockProfileRepository{
		profiles: []database.ConnectedProfile{connectedProfile("prof-1", "tiktok")},
	}
	reviewRepo := NewMockReviewRepository()
	reviewRepo.err = errors.New("insert failed")

	fetcher := &MockFetcher{
		platform: "tiktok",
		posts: []platform.Post{
			{ID: "p1", Hashtags: []string{"#brandad"}},
			{ID: "p2", Hashtags: []string{"#brandad"}},
		},
	}

	scanner := NewScanner(campaignRepo, profileRepo, reviewRepo, []platform.Fetcher{fetcher}, 1)

	result, err := scanner.Run(context.Background())
	if err != nil {
		t.Fatalf("Review write failures must not abort the scan: %v", err)
	}
	if result.Matches != 2 {
		t.Errorf("Expected both posts to match, got %d", result.Matches)
	}
	if result.ReviewsCreated != 0 {
		t.Errorf("Expected no reviews created on write failure, got %d", result.ReviewsCreated)
	}
}
