package ports

import (
	"context"
	"time"
)

// MatchRepository tracks which unordered user pairs have already had their
// mutual-reveal match announced.
type MatchRepository interface {
	// MarkAnnounced records the pair (in canonical order) and reports
	// whether this call was the first ever for the pair. Exactly one caller
	// observes true, even under concurrent invocations.
	MarkAnnounced(ctx context.Context, userA, userB string, at time.Time) (bool, error)
}
