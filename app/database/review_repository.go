package database

import (
	"fmt"
)

var _ ReviewRepository = (*ReviewRepositoryImpl)(nil)

// ReviewRepositoryImpl handles database operations for content reviews
type ReviewRepositoryImpl struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepositoryImpl {
	return &ReviewRepositoryImpl{db: db}
}

// CreateReview inserts a pending review for a discovered post. The insert is
// atomic against concurrent scans: the unique constraint on post_id makes a
// rediscovered post a no-op, reported as created=false.
func (r *ReviewRepositoryImpl) CreateReview(review NewReview) (bool, error) {
	result, err := r.db.Exec(`
		INSERT INTO content_reviews (post_id, campaign_id, creator_id, platform, post_url, status, priority)
		VALUES ($1, $2, $3, $4, $5, 'pending', 'normal')
		ON CONFLICT (post_id) DO NOTHING
	`, review.PostID, review.CampaignID, review.CreatorID, review.Platform, review.PostURL)

	if err != nil {
		return false, fmt.Errorf("failed to create review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// GetReviews returns reviews filtered by status, newest first. An empty
// status returns reviews in any state.
func (r *ReviewRepositoryImpl) GetReviews(status string, limit int) ([]ContentReview, error) {
	rows, err := r.db.Query(`
		SELECT id, post_id, campaign_id, creator_id, platform, COALESCE(post_url, ''),
		       status, priority, created_at, updated_at
		FROM content_reviews
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	defer rows.Close()

	var reviews []ContentReview
	for rows.Next() {
		var review ContentReview
		err := rows.Scan(
			&review.ID, &review.PostID, &review.CampaignID, &review.CreatorID,
			&review.Platform, &review.PostURL, &review.Status, &review.Priority,
			&review.CreatedAt, &review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, nil
}

// GetReviewStats returns review counts broken down by status
func (r *ReviewRepositoryImpl) GetReviewStats() (total, pending, approved, rejected int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected
		FROM content_reviews
	`).Scan(&total, &pending, &approved, &rejected)

	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get review stats: %w", err)
	}

	return total, pending, approved, rejected, nil
}

// UpdateReviewStatus updates the moderation status of a review
func (r *ReviewRepositoryImpl) UpdateReviewStatus(reviewID string, status string) error {
	result, err := r.db.Exec(`
		UPDATE content_reviews
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, reviewID, status)

	if err != nil {
		return fmt.Errorf("failed to update review status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review not found: %s", reviewID)
	}

	return nil
}
