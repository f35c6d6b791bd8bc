package database

import (
	"fmt"
)

var _ ProfileRepository = (*ProfileRepositoryImpl)(nil)

// ProfileRepositoryImpl handles database operations for profiles and their
// platform connections
type ProfileRepositoryImpl struct {
	db *DB
}

func NewProfileRepository(db *DB) *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{db: db}
}

// GetConnectedProfiles returns every profile that has at least one platform
// connection. Profiles without connections are not included.
func (r *ProfileRepositoryImpl) GetConnectedProfiles() ([]ConnectedProfile, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.display_name, p.role,
		       c.id, c.platform, c.platform_user_id, COALESCE(c.username, ''),
		       c.access_token, c.created_at
		FROM profiles p
		JOIN platform_connections c ON c.profile_id = p.id
		ORDER BY p.created_at, c.platform
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get connected profiles: %w", err)
	}
	defer rows.Close()

	profilesByID := make(map[string]*ConnectedProfile)
	var order []string

	for rows.Next() {
		var profileID, displayName, role string
		var conn Connection

		err := rows.Scan(
			&profileID, &displayName, &role,
			&conn.ID, &conn.Platform, &conn.PlatformUserID, &conn.Username,
			&conn.AccessToken, &conn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		conn.ProfileID = profileID

		profile, ok := profilesByID[profileID]
		if !ok {
			profile = &ConnectedProfile{
				ID:          profileID,
				DisplayName: displayName,
				Role:        role,
				Connections: make(map[string]Connection),
			}
			profilesByID[profileID] = profile
			order = append(order, profileID)
		}
		profile.Connections[conn.Platform] = conn
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	profiles := make([]ConnectedProfile, 0, len(order))
	for _, id := range order {
		profiles = append(profiles, *profilesByID[id])
	}

	return profiles, nil
}

// GetProfileCount returns the total number of profiles
func (r *ProfileRepositoryImpl) GetProfileCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get profile count: %w", err)
	}
	return count, nil
}
