package database

import (
	"time"
)

// Campaign is a brand-sponsored content initiative. The monitor only reads
// campaigns; brand-facing flows own their lifecycle.
type Campaign struct {
	ID                string // Database UUID
	BrandID           string
	Title             string
	Status            string // active, inactive
	OriginalHashtag   string // Empty string when the campaign has no original-content hashtag
	RepurposedHashtag string // Empty string when the campaign has no repurposed-content hashtag
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Connection links a profile to an external social account
type Connection struct {
	ID             string
	ProfileID      string
	Platform       string // instagram, tiktok, youtube, twitter
	PlatformUserID string
	Username       string
	AccessToken    string
	CreatedAt      time.Time
}

// ConnectedProfile is a profile with at least one platform connection,
// keyed by platform name
type ConnectedProfile struct {
	ID          string
	DisplayName string
	Role        string
	Connections map[string]Connection
}

// ContentReview marks a discovered social post as a pending candidate for
// moderation. At most one review exists per post ID.
type ContentReview struct {
	ID         string
	PostID     string
	CampaignID string
	CreatorID  string
	Platform   string
	PostURL    string
	Status     string // pending, approved, rejected
	Priority   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
