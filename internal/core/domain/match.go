package domain

import "time"

// Match records that the mutual-reveal announcement for an unordered user
// pair has been made. One record per pair, ever; its existence is the
// at-most-once guard for the match notification.
type Match struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserA       string    `json:"user_a" bson:"user_a"`
	UserB       string    `json:"user_b" bson:"user_b"`
	AnnouncedAt time.Time `json:"announced_at" bson:"announced_at"`
}

// PairKey returns the two user IDs in canonical (sorted) order so that
// (a, b) and (b, a) address the same match record.
func PairKey(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
