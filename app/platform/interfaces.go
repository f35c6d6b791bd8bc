package platform

import (
	"context"

	"github.com/pulsecrew/creator-pulse/app/database"
)

// Fetcher retrieves a creator's recent posts from one external platform.
// Implementations normalize the platform response into Post values; matching
// and persistence happen elsewhere.
type Fetcher interface {
	Platform() string
	FetchRecentPosts(ctx context.Context, conn database.Connection) ([]Post, error)
}
