package database

import (
	"fmt"
)

var _ CampaignRepository = (*CampaignRepositoryImpl)(nil)

// CampaignRepositoryImpl handles database operations for campaigns
type CampaignRepositoryImpl struct {
	db *DB
}

func NewCampaignRepository(db *DB) *CampaignRepositoryImpl {
	return &CampaignRepositoryImpl{db: db}
}

// GetActiveCampaigns returns all active campaigns with their hashtag
// requirements, ordered by creation time
func (r *CampaignRepositoryImpl) GetActiveCampaigns() ([]Campaign, error) {
	rows, err := r.db.Query(`
		SELECT id, brand_id, title, status,
		       COALESCE(original_hashtag, ''), COALESCE(repurposed_hashtag, ''),
		       created_at, updated_at
		FROM campaigns
		WHERE status = 'active'
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get active campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []Campaign
	for rows.Next() {
		var campaign Campaign
		err := rows.Scan(
			&campaign.ID, &campaign.BrandID, &campaign.Title, &campaign.Status,
			&campaign.OriginalHashtag, &campaign.RepurposedHashtag,
			&campaign.CreatedAt, &campaign.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}

	return campaigns, nil
}

// GetCampaignCount returns the total number of campaigns
func (r *CampaignRepositoryImpl) GetCampaignCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM campaigns").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get campaign count: %w", err)
	}
	return count, nil
}
