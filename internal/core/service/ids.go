package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

// newID returns a unique entity identifier in the format PF-XXXXXXXXXXXXXXXX.
func newID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("PF-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("PF-%016X", b)
}
