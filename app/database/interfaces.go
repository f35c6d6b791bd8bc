package database

// NewReview carries the fields of a review to be recorded for a
// freshly discovered post
type NewReview struct {
	PostID     string
	CampaignID string
	CreatorID  string
	Platform   string
	PostURL    string
}

type CampaignRepository interface {
	GetActiveCampaigns() ([]Campaign, error)
	GetCampaignCount() (int, error)
}

type ProfileRepository interface {
	GetConnectedProfiles() ([]ConnectedProfile, error)
	GetProfileCount() (int, error)
}

type ReviewRepository interface {
	// CreateReview records a review for a post. Reports false when a review
	// for the same post ID already exists.
	CreateReview(review NewReview) (bool, error)

	GetReviews(status string, limit int) ([]ContentReview, error)
	GetReviewStats() (total, pending, approved, rejected int, err error)
	UpdateReviewStatus(reviewID string, status string) error
}
