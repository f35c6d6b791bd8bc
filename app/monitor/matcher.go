package monitor

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pulsecrew/creator-pulse/app/database"
)

// Matcher decides whether a post qualifies as campaign content based on its
// hashtags
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Run returns the first campaign, in registry order, whose hashtag
// requirements the post satisfies. A campaign matches when the post carries
// any of its non-empty hashtag values, compared case-insensitively. Returns
// nil when no campaign matches.
func (m *Matcher) Run(hashtags []string, campaigns []database.Campaign) *database.Campaign {
	if len(hashtags) == 0 || len(campaigns) == 0 {
		return nil
	}

	postTags := make(map[string]struct{}, len(hashtags))
	for _, tag := range hashtags {
		postTags[normalizeHashtag(tag)] = struct{}{}
	}

	for i, campaign := range campaigns {
		for _, required := range []string{campaign.OriginalHashtag, campaign.RepurposedHashtag} {
			if required == "" {
				continue
			}
			if _, ok := postTags[normalizeHashtag(required)]; ok {
				return &campaigns[i]
			}
		}
	}

	return nil
}

// normalizeHashtag strips the leading '#' and applies Unicode case folding
// so comparison is case-insensitive beyond ASCII
func normalizeHashtag(tag string) string {
	return cases.Fold().String(strings.TrimPrefix(tag, "#"))
}
