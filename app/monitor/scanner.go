package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pulsecrew/creator-pulse/app/database"
	"github.com/pulsecrew/creator-pulse/app/platform"
)

var _ ScanRunner = (*Scanner)(nil)

// Scanner runs one full scan cycle: active campaigns and connected profiles
// are loaded up front, then each (profile, platform) pair is fetched,
// matched, and recorded independently.
type Scanner struct {
	campaignRepo database.CampaignRepository
	profileRepo  database.ProfileRepository
	reviewRepo   database.ReviewRepository
	fetchers     []platform.Fetcher
	matcher      *Matcher
	workerCount  int
}

// ScanResult summarizes one scan cycle
type ScanResult struct {
	Campaigns      int
	Profiles       int
	Units          int
	Posts          int
	Matches        int
	ReviewsCreated int
	FetchErrors    int
}

// fetchUnit is one independent (profile, platform) piece of work
type fetchUnit struct {
	profile database.ConnectedProfile
	fetcher platform.Fetcher
	conn    database.Connection
}

func NewScanner(campaignRepo database.CampaignRepository, profileRepo database.ProfileRepository,
	reviewRepo database.ReviewRepository, fetchers []platform.Fetcher, workerCount int) *Scanner {
	if workerCount < 1 {
		workerCount = 1
	}

	return &Scanner{
		campaignRepo: campaignRepo,
		profileRepo:  profileRepo,
		reviewRepo:   reviewRepo,
		fetchers:     fetchers,
		matcher:      NewMatcher(),
		workerCount:  workerCount,
	}
}

// Run executes one scan cycle. A registry or enumeration failure aborts the
// whole cycle; a failure within one (profile, platform) unit is logged and
// does not affect the rest.
func (s *Scanner) Run(ctx context.Context) (ScanResult, error) {
	var result ScanResult

	campaigns, err := s.campaignRepo.GetActiveCampaigns()
	if err != nil {
		return result, fmt.Errorf("failed to get active campaigns: %w", err)
	}
	result.Campaigns = len(campaigns)

	if len(campaigns) == 0 {
		slog.Debug("No active campaigns, skipping scan")
		return result, nil
	}

	profiles, err := s.profileRepo.GetConnectedProfiles()
	if err != nil {
		return result, fmt.Errorf("failed to get connected profiles: %w", err)
	}
	result.Profiles = len(profiles)

	var units []fetchUnit
	for _, profile := range profiles {
		for _, fetcher := range s.fetchers {
			conn, ok := profile.Connections[fetcher.Platform()]
			if !ok {
				continue
			}
			units = append(units, fetchUnit{profile: profile, fetcher: fetcher, conn: conn})
		}
	}
	result.Units = len(units)

	if len(units) == 0 {
		slog.Debug("No connected accounts to scan")
		return result, nil
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	unitChan := make(chan fetchUnit)

	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range unitChan {
				unitResult := s.scanUnit(ctx, unit, campaigns)

				mu.Lock()
				result.Posts += unitResult.Posts
				result.Matches += unitResult.Matches
				result.ReviewsCreated += unitResult.ReviewsCreated
				result.FetchErrors += unitResult.FetchErrors
				mu.Unlock()
			}
		}()
	}

	for _, unit := range units {
		unitChan <- unit
	}
	close(unitChan)

	wg.Wait()

	return result, nil
}

// scanUnit fetches and matches posts for one (profile, platform) pair
func (s *Scanner) scanUnit(ctx context.Context, unit fetchUnit, campaigns []database.Campaign) ScanResult {
	var result ScanResult

	posts, err := unit.fetcher.FetchRecentPosts(ctx, unit.conn)
	if err != nil {
		slog.Warn("Platform fetch failed",
			"platform", unit.fetcher.Platform(),
			"profile", unit.profile.ID,
			"error", err)
		result.FetchErrors++
		return result
	}
	result.Posts = len(posts)

	for _, post := range posts {
		campaign := s.matcher.Run(post.Hashtags, campaigns)
		if campaign == nil {
			continue
		}
		result.Matches++

		created, err := s.reviewRepo.CreateReview(database.NewReview{
			PostID:     post.ID,
			CampaignID: campaign.ID,
			CreatorID:  unit.profile.ID,
			Platform:   unit.fetcher.Platform(),
			PostURL:    post.URL,
		})
		if err != nil {
			// The post will be rediscovered next cycle
			slog.Error("Failed to create review",
				"platform", unit.fetcher.Platform(),
				"post", post.ID,
				"campaign", campaign.ID,
				"error", err)
			continue
		}

		if created {
			result.ReviewsCreated++
			slog.Info("Campaign content discovered",
				"platform", unit.fetcher.Platform(),
				"post", post.ID,
				"campaign", campaign.ID,
				"creator", unit.profile.ID)
		}
	}

	return result
}
